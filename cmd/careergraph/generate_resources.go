package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var generateResourcesCmd = &cobra.Command{
	Use:   "generate-resources",
	Short: "Derive learning resources for persisted skills",
	Long:  "Derive one or two learning resources per persisted skill. Resource ids are deterministic per skill and index, so reruns overwrite instead of duplicating.",
	RunE:  runGenerateResources,
}

func init() {
	rootCmd.AddCommand(generateResourcesCmd)
}

func runGenerateResources(cmd *cobra.Command, _ []string) error {
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

	if err := runner.RunResourceStage(ctx, uuid.New()); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Learning resource generation complete\n")
	return nil
}
