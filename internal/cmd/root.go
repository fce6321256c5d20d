package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "salesdash",
	Short: "Salesdash - E-commerce Sales Dashboard",
	Long: `Salesdash loads pre-aggregated e-commerce sales tables from CSV files
and serves an interactive dashboard: a date-range filter feeding daily
order and revenue series, category and geographic distributions, review
scores and RFM customer rankings.

The dashboard can run as a server with a web interface, or be used via
CLI commands to validate the data directory and export reports.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
