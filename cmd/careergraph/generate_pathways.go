package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var generatePathwaysCmd = &cobra.Command{
	Use:   "generate-pathways",
	Short: "Derive career pathways between persisted roles",
	Long:  "Derive career pathways between distinct persisted roles, including alternative routes, and back-fill each role's careerPath with the observed transitions.",
	RunE:  runGeneratePathways,
}

var pathwayCount int

func init() {
	generatePathwaysCmd.Flags().IntVar(&pathwayCount, "count", 5, "Number of pathways to derive")
	rootCmd.AddCommand(generatePathwaysCmd)
}

func runGeneratePathways(cmd *cobra.Command, _ []string) error {
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

	if err := runner.RunPathwayStage(ctx, uuid.New(), pathwayCount); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Career pathway generation complete\n")
	return nil
}
