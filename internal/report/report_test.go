package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdash/salesdash/internal/analytics"
)

func sampleView() analytics.View {
	return analytics.View{
		Range: analytics.Range{
			Start: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		Headline: analytics.Headline{TotalOrders: 2, TotalRevenue: 300, AvgReviewScore: 4.5},
		Daily: []analytics.DailyBucket{
			{Date: "2017-01-01", Orders: 1, Revenue: 100},
			{Date: "2017-06-15", Orders: 1, Revenue: 200},
		},
		TopCategories:    []analytics.CategorySales{{Category: "toys", Quantity: 2}},
		BottomCategories: []analytics.CategorySales{{Category: "toys", Quantity: 2}},
		States:           []analytics.GeoBucket{{Name: "SP", Orders: 2, Customers: 2}},
		Reviews: []analytics.ReviewBucket{
			{Score: 1}, {Score: 2}, {Score: 3}, {Score: 4, Count: 1}, {Score: 5, Count: 1},
		},
		RFM: analytics.RFMSummary{
			AvgRecency: 5, AvgFrequency: 1, AvgMonetary: 150,
			ByMonetary: []analytics.RFMRow{{CustomerID: "X", Recency: 0, Frequency: 1, Monetary: 200}},
		},
		Payments: []analytics.PaymentBucket{{Type: "credit_card", Orders: 2, AvgInstallments: 3}},
	}
}

func TestBuildWorkbookSheets(t *testing.T) {
	f, err := Build(sampleView())
	require.NoError(t, err)

	sheets := map[string]bool{}
	for _, name := range f.GetSheetMap() {
		sheets[name] = true
	}
	for _, want := range []string{"Summary", "Daily Orders", "Categories", "Geography", "Reviews", "Payments", "RFM"} {
		assert.True(t, sheets[want], "missing sheet %q", want)
	}
	assert.False(t, sheets["Sheet1"], "default sheet must be removed")
}

func TestBuildWorkbookContent(t *testing.T) {
	f, err := Build(sampleView())
	require.NoError(t, err)

	from, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "2017-01-01", from)

	orders, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", orders)

	header, err := f.GetCellValue("Daily Orders", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	firstDay, err := f.GetCellValue("Daily Orders", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2017-01-01", firstDay)
}
