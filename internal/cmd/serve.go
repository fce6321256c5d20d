package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/config"
	"github.com/salesdash/salesdash/internal/dataset"
	"github.com/salesdash/salesdash/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Salesdash server",
	Long: `Start the Salesdash server which provides:
- the interactive dashboard page
- REST API for the computed aggregates
- XLSX report and chart image exports`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Salesdash Starting...")

	fmt.Println("📝 Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("📊 Loading dataset from %s...\n", cfg.Data.Dir)
	snap, err := dataset.Load(&cfg.Data)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	fmt.Printf("✅ Loaded %d order items across %d orders (%s → %s)\n",
		len(snap.Records), snap.Orders,
		snap.MinDate.Format("2006-01-02"), snap.MaxDate.Format("2006-01-02"))

	fmt.Println("⚙️  Setting up server...")
	srv := server.NewServer(dataset.NewStore(snap), cfg)

	fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
