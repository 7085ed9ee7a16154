package generator

import "fmt"

// ProviderError wraps any failure at the content-provider boundary: the call
// erroring, timing out, or the response not matching the expected shape.
// Stages catch it, keep whatever was generated before the failure, and let
// the orchestrator continue with later independent stages.
type ProviderError struct {
	Entity     string   // entity kind being generated
	Categories []string // categories in the failed batch
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error generating %s batch %v: %v", e.Entity, e.Categories, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
