package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collection counts and stage completion markers",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	app, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer app.Close()

	collections := []struct {
		name  string
		count func(context.Context) (int, error)
	}{
		{"skills", app.db.CountSkills},
		{"roles", app.db.CountRoles},
		{"industries", app.db.CountIndustries},
		{"role_skills", app.db.CountRoleSkills},
		{"role_industries", app.db.CountRoleIndustries},
		{"skill_industries", app.db.CountSkillIndustries},
		{"skill_prerequisites", app.db.CountSkillPrerequisites},
		{"learning_resources", app.db.CountLearningResources},
		{"career_pathways", app.db.CountCareerPathways},
	}

	fmt.Fprintf(os.Stdout, "Collections:\n")
	for _, c := range collections {
		n, err := c.count(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "  %-20s %d\n", c.name, n)
	}

	statuses, err := app.db.ListStageStatus(ctx)
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		fmt.Fprintf(os.Stdout, "\nNo completed stages\n")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\nCompleted stages:\n")
	for _, s := range statuses {
		fmt.Fprintf(os.Stdout, "  %-26s %5d items  %s  run %s\n",
			s.Stage, s.ItemCount, s.CompletedAt.Format(time.RFC3339), s.RunID)
	}
	return nil
}
