package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jmtorres/careergraph/internal/pipeline"
)

var generateRolesCmd = &cobra.Command{
	Use:   "generate-roles",
	Short: "Generate and persist role entities",
	Long:  "Generate role entities with Gemini for each category, cache the raw payloads, and upsert them into the document store by title. Skipped when the stage already completed.",
	RunE:  runGenerateRoles,
}

var (
	roleCategories []string
	roleCount      int
)

func init() {
	generateRolesCmd.Flags().StringSliceVar(&roleCategories, "categories", defaultRoleCategories, "Role categories to generate")
	generateRolesCmd.Flags().IntVar(&roleCount, "count", 5, "Entities to request per category")
	rootCmd.AddCommand(generateRolesCmd)
}

func runGenerateRoles(cmd *cobra.Command, _ []string) error {
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

	opts := pipeline.Options{RoleCategories: roleCategories, PerCategory: roleCount}
	if err := runner.RunRoleStage(ctx, uuid.New(), opts); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Role generation complete\n")
	return nil
}
