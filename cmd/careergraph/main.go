// Package main provides the entry point for the careergraph CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careergraph",
	Short: "Career knowledge graph generation pipeline",
	Long:  "careergraph generates skill, role and industry entities with Gemini, links them into a knowledge graph, and derives learning resources and career pathways on top of it.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
