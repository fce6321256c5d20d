package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdash/salesdash/internal/analytics"
)

func sampleView() analytics.View {
	return analytics.View{
		Daily: []analytics.DailyBucket{
			{Date: "2017-01-01", Orders: 1, Revenue: 100},
			{Date: "2017-01-02", Orders: 2, Revenue: 250},
		},
		TopCategories: []analytics.CategorySales{{Category: "toys", Quantity: 12}},
		States:        []analytics.GeoBucket{{Name: "SP", Orders: 9}},
		Reviews: []analytics.ReviewBucket{
			{Score: 1}, {Score: 2}, {Score: 3}, {Score: 4, Count: 2}, {Score: 5, Count: 1},
		},
		Payments: []analytics.PaymentBucket{{Type: "credit_card", Orders: 3}},
	}
}

func TestFromViewDailyOrders(t *testing.T) {
	cfg, err := FromView(DailyOrders, sampleView())
	require.NoError(t, err)

	assert.Equal(t, "line", cfg.Type)
	require.Len(t, cfg.Data.DataSets, 2)
	assert.Equal(t, []interface{}{"2017-01-01", "2017-01-02"}, cfg.Data.Labels)
	assert.Equal(t, []interface{}{1, 2}, cfg.Data.DataSets[0].Data)
	assert.Equal(t, []interface{}{100.0, 250.0}, cfg.Data.DataSets[1].Data)
}

func TestFromViewBars(t *testing.T) {
	for _, name := range []string{TopCategories, BottomCategories, States, Reviews, Payments} {
		cfg, err := FromView(name, sampleView())
		require.NoError(t, err, name)
		require.Len(t, cfg.Data.DataSets, 1, name)
		assert.Equal(t, ColorPrimary, cfg.Data.DataSets[0].BackgroundColor, name)
	}
}

func TestFromViewUnknownChart(t *testing.T) {
	_, err := FromView("nope", sampleView())
	require.Error(t, err)
}

func TestImageURL(t *testing.T) {
	cfg, err := FromView(Reviews, sampleView())
	require.NoError(t, err)

	url, err := ImageURL(cfg)
	require.NoError(t, err)
	assert.Contains(t, url, "quickchart.io")
	assert.Contains(t, url, "chart")
}
