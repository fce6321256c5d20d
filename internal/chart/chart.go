package chart

import (
	"encoding/json"
	"fmt"

	quickchartgo "github.com/henomis/quickchart-go"

	"github.com/salesdash/salesdash/internal/analytics"
)

// Chart.js config subset understood by QuickChart.
type Config struct {
	Type string `json:"type"`
	Data Data   `json:"data"`
}

type Data struct {
	Labels   []interface{} `json:"labels"`
	DataSets []Dataset     `json:"datasets"`
}

type Dataset struct {
	Label           string        `json:"label"`
	Data            []interface{} `json:"data"`
	Fill            bool          `json:"fill"`
	LineTension     float32       `json:"lineTension"`
	BackgroundColor string        `json:"backgroundColor,omitempty"`
}

// ColorPrimary is the bar color used across the dashboard's charts.
const ColorPrimary = "#2f4b7c"

// Names of the charts the API can render.
const (
	DailyOrders      = "daily-orders"
	TopCategories    = "top-categories"
	BottomCategories = "bottom-categories"
	States           = "states"
	Reviews          = "reviews"
	Payments         = "payments"
)

// FromView builds the Chart.js config for a named chart out of a
// computed view.
func FromView(name string, view analytics.View) (Config, error) {
	switch name {
	case DailyOrders:
		labels := make([]interface{}, 0, len(view.Daily))
		orders := make([]interface{}, 0, len(view.Daily))
		revenue := make([]interface{}, 0, len(view.Daily))
		for _, d := range view.Daily {
			labels = append(labels, d.Date)
			orders = append(orders, d.Orders)
			revenue = append(revenue, d.Revenue)
		}
		return Config{
			Type: "line",
			Data: Data{
				Labels: labels,
				DataSets: []Dataset{
					{Label: "Orders", Data: orders},
					{Label: "Revenue", Data: revenue},
				},
			},
		}, nil
	case TopCategories:
		labels, values := categoryPoints(view.TopCategories)
		return bar("horizontalBar", "Quantity", labels, values), nil
	case BottomCategories:
		labels, values := categoryPoints(view.BottomCategories)
		return bar("horizontalBar", "Quantity", labels, values), nil
	case States:
		labels := make([]interface{}, 0, len(view.States))
		values := make([]interface{}, 0, len(view.States))
		for _, s := range view.States {
			labels = append(labels, s.Name)
			values = append(values, s.Orders)
		}
		return bar("horizontalBar", "Orders", labels, values), nil
	case Reviews:
		labels := make([]interface{}, 0, 5)
		values := make([]interface{}, 0, 5)
		for _, b := range view.Reviews {
			labels = append(labels, b.Score)
			values = append(values, b.Count)
		}
		return bar("bar", "Reviews", labels, values), nil
	case Payments:
		labels := make([]interface{}, 0, len(view.Payments))
		values := make([]interface{}, 0, len(view.Payments))
		for _, p := range view.Payments {
			labels = append(labels, p.Type)
			values = append(values, p.Orders)
		}
		return bar("bar", "Orders", labels, values), nil
	default:
		return Config{}, fmt.Errorf("unknown chart %q", name)
	}
}

func categoryPoints(sales []analytics.CategorySales) ([]interface{}, []interface{}) {
	labels := make([]interface{}, 0, len(sales))
	values := make([]interface{}, 0, len(sales))
	for _, s := range sales {
		labels = append(labels, s.Category)
		values = append(values, s.Quantity)
	}
	return labels, values
}

func bar(chartType, label string, labels, values []interface{}) Config {
	return Config{
		Type: chartType,
		Data: Data{
			Labels: labels,
			DataSets: []Dataset{
				{Label: label, Data: values, BackgroundColor: ColorPrimary},
			},
		},
	}
}

// ImageURL asks QuickChart for a rendered image URL of the config.
func ImageURL(config Config) (string, error) {
	bytes, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chart config: %w", err)
	}
	qc := quickchartgo.New()
	qc.Config = string(bytes)
	url, err := qc.GetUrl()
	if err != nil {
		return "", fmt.Errorf("failed to get chart url from quickchart: %w", err)
	}
	return url, nil
}
