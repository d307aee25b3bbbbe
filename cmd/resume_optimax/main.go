// Package main provides the entry point for the Resume Optimax relay server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "resume_optimax",
		Short:         "Resume Optimax enhancement relay and client",
		Long:          "Resume Optimax rewrites a resume against a job description with a generative-language provider, served over a small HTTP relay.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")

	rootCmd.AddCommand(
		newServeCmd(&configPath),
		newEnhanceCmd(&configPath),
		newValidateCmd(),
		newSkillsCmd(),
		newJobTitlesCmd(),
		newTipsCmd(),
	)
	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
