package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jmtorres/careergraph/internal/pipeline"
)

var generateIndustriesCmd = &cobra.Command{
	Use:   "generate-industries",
	Short: "Generate and persist industry entities",
	Long:  "Generate industry entities with Gemini for each category, cache the raw payloads, and upsert them into the document store by name. Skipped when the stage already completed.",
	RunE:  runGenerateIndustries,
}

var (
	industryCategories []string
	industryCount      int
)

func init() {
	generateIndustriesCmd.Flags().StringSliceVar(&industryCategories, "categories", defaultIndustryCategories, "Industry categories to generate")
	generateIndustriesCmd.Flags().IntVar(&industryCount, "count", 3, "Entities to request per category")
	rootCmd.AddCommand(generateIndustriesCmd)
}

func runGenerateIndustries(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	app, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer app.Close()

	runner, closeClient, err := app.runner(ctx, true)
	if err != nil {
		return err
	}
	defer closeClient()

	opts := pipeline.Options{IndustryCategories: industryCategories, PerCategory: industryCount}
	if err := runner.RunIndustryStage(ctx, uuid.New(), opts); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Industry generation complete\n")
	return nil
}
