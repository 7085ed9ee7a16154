package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmtorres/careergraph/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full knowledge-graph pipeline end-to-end",
	Long: `Orchestrates every stage in dependency order: skills -> roles -> industries -> relationships -> learning resources -> career pathways.

Stages whose collections are already populated are skipped, so the command is safe to invoke repeatedly; an interrupted run resumes from the cache and the completion markers.`,
	RunE: runPipelineCmd,
}

var (
	runSkillCategories    []string
	runRoleCategories     []string
	runIndustryCategories []string
	runPerCategory        int
	runPathwayCount       int
)

func init() {
	runCommand.Flags().StringSliceVar(&runSkillCategories, "skill-categories", defaultSkillCategories, "Skill categories to generate")
	runCommand.Flags().StringSliceVar(&runRoleCategories, "role-categories", defaultRoleCategories, "Role categories to generate")
	runCommand.Flags().StringSliceVar(&runIndustryCategories, "industry-categories", defaultIndustryCategories, "Industry categories to generate")
	runCommand.Flags().IntVar(&runPerCategory, "count", 5, "Entities to request per category")
	runCommand.Flags().IntVar(&runPathwayCount, "pathways", 5, "Number of career pathways to derive")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
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

	opts := pipeline.Options{
		SkillCategories:    runSkillCategories,
		RoleCategories:     runRoleCategories,
		IndustryCategories: runIndustryCategories,
		PerCategory:        runPerCategory,
		PathwayCount:       runPathwayCount,
	}
	if err := runner.Run(ctx, opts); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Pipeline complete\n")
	return nil
}
