package report

import (
	"fmt"

	"github.com/360EntSecGroup-Skylar/excelize/v2"

	"github.com/salesdash/salesdash/internal/analytics"
)

// Build renders a computed view as an XLSX workbook, one sheet per
// dashboard section.
func Build(view analytics.View) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSummary(f, view); err != nil {
		return nil, err
	}
	if err := writeDaily(f, view.Daily); err != nil {
		return nil, err
	}
	if err := writeCategories(f, view); err != nil {
		return nil, err
	}
	if err := writeGeography(f, view); err != nil {
		return nil, err
	}
	if err := writeReviews(f, view.Reviews); err != nil {
		return nil, err
	}
	if err := writePayments(f, view.Payments); err != nil {
		return nil, err
	}
	if err := writeRFM(f, view.RFM); err != nil {
		return nil, err
	}

	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(f.GetSheetIndex("Summary"))
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	f.NewSheet(sheet)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d of %s: %w", i+1, sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, view analytics.View) error {
	rows := [][]interface{}{
		{"From", view.Range.Start.Format(analytics.DateLayout)},
		{"To", view.Range.End.Format(analytics.DateLayout)},
		{"Total orders", view.Headline.TotalOrders},
		{"Total revenue", view.Headline.TotalRevenue},
		{"Average review score", view.Headline.AvgReviewScore},
		{"Delivered orders", view.Delivery.Delivered},
		{"Average delivery days", view.Delivery.AvgDays},
	}
	return writeRows(f, "Summary", rows)
}

func writeDaily(f *excelize.File, daily []analytics.DailyBucket) error {
	rows := [][]interface{}{{"Date", "Orders", "Revenue"}}
	for _, d := range daily {
		rows = append(rows, []interface{}{d.Date, d.Orders, d.Revenue})
	}
	return writeRows(f, "Daily Orders", rows)
}

func writeCategories(f *excelize.File, view analytics.View) error {
	rows := [][]interface{}{{"Category", "Quantity", "Rank"}}
	for _, c := range view.TopCategories {
		rows = append(rows, []interface{}{c.Category, c.Quantity, "top"})
	}
	for _, c := range view.BottomCategories {
		rows = append(rows, []interface{}{c.Category, c.Quantity, "bottom"})
	}
	return writeRows(f, "Categories", rows)
}

func writeGeography(f *excelize.File, view analytics.View) error {
	rows := [][]interface{}{{"Scope", "Name", "Orders", "Customers"}}
	for _, s := range view.States {
		rows = append(rows, []interface{}{"state", s.Name, s.Orders, s.Customers})
	}
	for _, c := range view.TopCities {
		rows = append(rows, []interface{}{"city", c.Name, c.Orders, c.Customers})
	}
	return writeRows(f, "Geography", rows)
}

func writeReviews(f *excelize.File, reviews []analytics.ReviewBucket) error {
	rows := [][]interface{}{{"Score", "Count"}}
	for _, b := range reviews {
		rows = append(rows, []interface{}{b.Score, b.Count})
	}
	return writeRows(f, "Reviews", rows)
}

func writePayments(f *excelize.File, payments []analytics.PaymentBucket) error {
	rows := [][]interface{}{{"Type", "Orders", "Avg installments"}}
	for _, p := range payments {
		rows = append(rows, []interface{}{p.Type, p.Orders, p.AvgInstallments})
	}
	return writeRows(f, "Payments", rows)
}

func writeRFM(f *excelize.File, rfm analytics.RFMSummary) error {
	rows := [][]interface{}{
		{"Average recency (days)", rfm.AvgRecency},
		{"Average frequency", rfm.AvgFrequency},
		{"Average monetary", rfm.AvgMonetary},
		{},
		{"Metric", "Customer", "Recency", "Frequency", "Monetary"},
	}
	appendRanked := func(metric string, ranked []analytics.RFMRow) {
		for _, r := range ranked {
			rows = append(rows, []interface{}{metric, r.CustomerID, r.Recency, r.Frequency, r.Monetary})
		}
	}
	appendRanked("recency", rfm.ByRecency)
	appendRanked("frequency", rfm.ByFrequency)
	appendRanked("monetary", rfm.ByMonetary)
	return writeRows(f, "RFM", rows)
}
