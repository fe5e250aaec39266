package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env is fine for the CLI
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gogeomap",
		Short:         "Generate per-group Leaflet maps from CSV or Excel data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newColumnsCmd(),
		newGenerateCmd(),
		newSummaryCmd(),
		newInspectCmd(),
		newSampleCmd(),
	)

	return rootCmd
}
