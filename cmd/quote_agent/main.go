// Package main provides the entry point for the QuoteShield analysis CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quote_agent",
	Short: "QuoteShield contractor quote analyzer",
	Long:  "QuoteShield scores contractor price quotes for quality and risk, normalizes roofing job quantities, and positions effective unit pricing against regional market benchmarks.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
