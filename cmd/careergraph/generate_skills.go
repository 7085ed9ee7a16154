package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jmtorres/careergraph/internal/pipeline"
)

var generateSkillsCmd = &cobra.Command{
	Use:   "generate-skills",
	Short: "Generate and persist skill entities",
	Long:  "Generate skill entities with Gemini for each category, cache the raw payloads, and upsert them into the document store by name. Skipped when the stage already completed.",
	RunE:  runGenerateSkills,
}

var (
	skillCategories []string
	skillCount      int
)

func init() {
	generateSkillsCmd.Flags().StringSliceVar(&skillCategories, "categories", defaultSkillCategories, "Skill categories to generate")
	generateSkillsCmd.Flags().IntVar(&skillCount, "count", 5, "Entities to request per category")
	rootCmd.AddCommand(generateSkillsCmd)
}

func runGenerateSkills(cmd *cobra.Command, _ []string) error {
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

	opts := pipeline.Options{SkillCategories: skillCategories, PerCategory: skillCount}
	if err := runner.RunSkillStage(ctx, uuid.New(), opts); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Skill generation complete\n")
	return nil
}
