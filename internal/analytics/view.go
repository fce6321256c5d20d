package analytics

import (
	"sort"

	"github.com/salesdash/salesdash/internal/dataset"
)

// View is the full set of aggregates for one filter range: everything
// the dashboard page, the chart endpoints and the report writer need.
type View struct {
	Range            Range           `json:"range"`
	Headline         Headline        `json:"headline"`
	Daily            []DailyBucket   `json:"daily"`
	TopCategories    []CategorySales `json:"top_categories"`
	BottomCategories []CategorySales `json:"bottom_categories"`
	States           []GeoBucket     `json:"states"`
	TopCities        []GeoBucket     `json:"top_cities"`
	BottomCities     []GeoBucket     `json:"bottom_cities"`
	Reviews          []ReviewBucket  `json:"reviews"`
	RFM              RFMSummary      `json:"rfm"`
	Payments         []PaymentBucket `json:"payments"`
	Delivery         DeliveryStats   `json:"delivery"`
}

// BuildView filters the snapshot to the range and computes every
// aggregate in one pass over the result.
func (e *Engine) BuildView(snap *dataset.Snapshot, r Range) View {
	records := Filter(snap.Records, r)

	cities := e.CityDistribution(records)
	bottom := make([]GeoBucket, len(cities))
	copy(bottom, cities)
	sort.Slice(bottom, func(i, j int) bool {
		if bottom[i].Orders != bottom[j].Orders {
			return bottom[i].Orders < bottom[j].Orders
		}
		return bottom[i].Name < bottom[j].Name
	})

	return View{
		Range:            r,
		Headline:         e.HeadlineMetrics(records),
		Daily:            e.DailyOrders(records),
		TopCategories:    e.TopCategories(records),
		BottomCategories: e.BottomCategories(records),
		States:           e.StateDistribution(records),
		TopCities:        headGeo(cities, e.TopN),
		BottomCities:     headGeo(bottom, e.TopN),
		Reviews:          e.ReviewDistribution(records),
		RFM:              e.RFMSegments(records),
		Payments:         e.PaymentMix(records),
		Delivery:         e.Delivery(records),
	}
}
