package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/analytics"
	"github.com/salesdash/salesdash/internal/config"
	"github.com/salesdash/salesdash/internal/dataset"
	"github.com/salesdash/salesdash/internal/report"
)

var (
	reportStart string
	reportEnd   string
	reportOut   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the dashboard aggregates as an XLSX workbook",
	Long: `Compute every dashboard aggregate for a date range and write them to
an XLSX workbook, one sheet per dashboard section. Omitted dates default
to the full bounds of the loaded data.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportStart, "start", "", "Start date (YYYY-MM-DD, default: dataset minimum)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "End date (YYYY-MM-DD, default: dataset maximum)")
	reportCmd.Flags().StringVar(&reportOut, "out", "sales_report.xlsx", "Output file path")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("📊 Loading dataset from %s...\n", cfg.Data.Dir)
	snap, err := dataset.Load(&cfg.Data)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	r, err := analytics.ParseRange(reportStart, reportEnd, snap)
	if err != nil {
		return fmt.Errorf("invalid date range: %w", err)
	}
	r = r.Clamp(snap)

	engine := analytics.NewEngine(snap, cfg.Dashboard.TopN)
	view := engine.BuildView(snap, r)

	workbook, err := report.Build(view)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := workbook.SaveAs(reportOut); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	fmt.Printf("✅ Report for %s → %s written to %s\n",
		r.Start.Format(analytics.DateLayout), r.End.Format(analytics.DateLayout), reportOut)
	fmt.Printf("   📦 %d orders, revenue %.2f\n", view.Headline.TotalOrders, view.Headline.TotalRevenue)
	return nil
}
