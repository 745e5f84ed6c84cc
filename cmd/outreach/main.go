// Package main provides the entry point for the outreach email bot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const envFile = ".env"

// envLoaded records whether a .env file was found and loaded at startup,
// surfaced by the diagnostics command.
var envLoaded bool

var rootCmd = &cobra.Command{
	Use:   "outreach",
	Short: "Personalized outreach email bot",
	Long:  "Outreach generates personalized job-application emails (grounded in scraped company facts when available) and dispatches them over an authenticated SMTP relay with a rate-limited worker pool.",
}

func main() {
	envLoaded = godotenv.Load(envFile) == nil

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
