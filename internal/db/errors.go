package db

import "fmt"

// PersistenceError wraps a single-record write failure. Persister and
// synthesizer loops log it and continue with the next item rather than
// aborting the batch.
type PersistenceError struct {
	Collection string
	Key        string // natural or composite key of the failed record
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s %q: %v", e.Collection, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
