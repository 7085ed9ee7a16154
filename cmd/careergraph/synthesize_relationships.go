package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var synthesizeRelationshipsCmd = &cobra.Command{
	Use:   "synthesize-relationships",
	Short: "Synthesize the relationship edges between persisted entities",
	Long:  "Sample role-skill, role-industry, skill-industry and skill-prerequisite edges over the persisted entity sets and upsert them by composite key. No provider calls are made.",
	RunE:  runSynthesizeRelationships,
}

func init() {
	rootCmd.AddCommand(synthesizeRelationshipsCmd)
}

func runSynthesizeRelationships(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	app, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer app.Close()

	runner, _, err := app.runner(ctx, false)
	if err != nil {
		return err
	}

	if err := runner.RunRelationshipStage(ctx, uuid.New()); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Relationship synthesis complete\n")
	return nil
}
