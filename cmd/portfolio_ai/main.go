// Package main provides the entry point for the portfolio assistant server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio_ai",
	Short: "Portfolio assistant HTTP API server",
	Long:  "Portfolio assistant answers visitor questions about the profile owner's career, grounded in a static profile document and guarded by topic rules and quotas.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
