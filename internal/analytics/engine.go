package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/salesdash/salesdash/internal/dataset"
)

// Engine computes the dashboard's derived views. Every method is a pure
// function of its input records: no state, no side effects, and an
// empty input always yields empty aggregates rather than an error.
type Engine struct {
	// ReferenceDate anchors RFM recency; it is the max order date of
	// the full dataset, not of the filtered slice.
	ReferenceDate time.Time
	TopN          int
}

// NewEngine builds an engine anchored to the loaded snapshot.
func NewEngine(snap *dataset.Snapshot, topN int) *Engine {
	if topN <= 0 {
		topN = 10
	}
	return &Engine{ReferenceDate: snap.MaxDate, TopN: topN}
}

// DailyBucket is one day of order activity.
type DailyBucket struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// CategorySales is the quantity sold for one product category.
type CategorySales struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// GeoBucket is order activity for one city or state.
type GeoBucket struct {
	Name      string  `json:"name"`
	Orders    int     `json:"orders"`
	Customers int     `json:"customers"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// ReviewBucket is the count of reviewed rows for one score.
type ReviewBucket struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

// RFMRow carries the three raw RFM metrics for one customer.
type RFMRow struct {
	CustomerID string  `json:"customer_id"`
	Recency    int     `json:"recency"`
	Frequency  int     `json:"frequency"`
	Monetary   float64 `json:"monetary"`
}

// RFMSummary holds the per-metric rankings and their averages.
type RFMSummary struct {
	AvgRecency   float64  `json:"avg_recency"`
	AvgFrequency float64  `json:"avg_frequency"`
	AvgMonetary  float64  `json:"avg_monetary"`
	ByRecency    []RFMRow `json:"by_recency"`
	ByFrequency  []RFMRow `json:"by_frequency"`
	ByMonetary   []RFMRow `json:"by_monetary"`
}

// PaymentBucket is the order count and average installments for one
// payment type.
type PaymentBucket struct {
	Type            string  `json:"type"`
	Orders          int     `json:"orders"`
	AvgInstallments float64 `json:"avg_installments"`
}

// DeliveryStats summarizes delivery performance for the filtered range.
type DeliveryStats struct {
	Delivered int     `json:"delivered"`
	AvgDays   float64 `json:"avg_days"`
}

// Headline carries the metrics shown above the charts.
type Headline struct {
	TotalOrders    int     `json:"total_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	AvgReviewScore float64 `json:"avg_review_score"`
}

// Round2 rounds a monetary value to two decimals. Applied at the
// presentation boundary only; accumulation stays on raw values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DailyOrders groups the records by calendar date, ascending, counting
// distinct orders and summing item prices per day.
func (e *Engine) DailyOrders(records []dataset.Record) []DailyBucket {
	type acc struct {
		orders  map[string]struct{}
		revenue float64
	}
	days := make(map[time.Time]*acc)
	for _, rec := range records {
		day := rec.Day()
		a, ok := days[day]
		if !ok {
			a = &acc{orders: make(map[string]struct{})}
			days[day] = a
		}
		a.orders[rec.OrderID] = struct{}{}
		a.revenue += rec.Price
	}

	buckets := make([]DailyBucket, 0, len(days))
	for day, a := range days {
		buckets = append(buckets, DailyBucket{
			Date:    day.Format(DateLayout),
			Orders:  len(a.orders),
			Revenue: Round2(a.revenue),
		})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return buckets
}

// CategoryPerformance returns the quantity sold per category, sorted by
// quantity descending with category name as the tie-break.
func (e *Engine) CategoryPerformance(records []dataset.Record) []CategorySales {
	counts := make(map[string]int)
	for _, rec := range records {
		category := rec.Category
		if category == "" {
			category = "unknown"
		}
		counts[category]++
	}

	sales := make([]CategorySales, 0, len(counts))
	for category, quantity := range counts {
		sales = append(sales, CategorySales{Category: category, Quantity: quantity})
	}
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].Quantity != sales[j].Quantity {
			return sales[i].Quantity > sales[j].Quantity
		}
		return sales[i].Category < sales[j].Category
	})
	return sales
}

// TopCategories returns the n best sellers by quantity.
func (e *Engine) TopCategories(records []dataset.Record) []CategorySales {
	return headOf(e.CategoryPerformance(records), e.TopN)
}

// BottomCategories returns the n worst sellers by quantity, worst first.
func (e *Engine) BottomCategories(records []dataset.Record) []CategorySales {
	sales := e.CategoryPerformance(records)
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].Quantity != sales[j].Quantity {
			return sales[i].Quantity < sales[j].Quantity
		}
		return sales[i].Category < sales[j].Category
	})
	return headOf(sales, e.TopN)
}

// geoDistribution groups records by the given key, counting distinct
// orders and customers and averaging coordinates of geolocated rows.
func geoDistribution(records []dataset.Record, key func(dataset.Record) string) []GeoBucket {
	type acc struct {
		orders    map[string]struct{}
		customers map[string]struct{}
		lat, lng  float64
		geoRows   int
	}
	groups := make(map[string]*acc)
	for _, rec := range records {
		name := key(rec)
		if name == "" {
			continue
		}
		a, ok := groups[name]
		if !ok {
			a = &acc{orders: make(map[string]struct{}), customers: make(map[string]struct{})}
			groups[name] = a
		}
		a.orders[rec.OrderID] = struct{}{}
		a.customers[rec.CustomerID] = struct{}{}
		if rec.HasGeo {
			a.lat += rec.Lat
			a.lng += rec.Lng
			a.geoRows++
		}
	}

	buckets := make([]GeoBucket, 0, len(groups))
	for name, a := range groups {
		b := GeoBucket{Name: name, Orders: len(a.orders), Customers: len(a.customers)}
		if a.geoRows > 0 {
			b.Lat = a.lat / float64(a.geoRows)
			b.Lng = a.lng / float64(a.geoRows)
		}
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Orders != buckets[j].Orders {
			return buckets[i].Orders > buckets[j].Orders
		}
		return buckets[i].Name < buckets[j].Name
	})
	return buckets
}

// StateDistribution returns order activity per customer state, busiest
// state first.
func (e *Engine) StateDistribution(records []dataset.Record) []GeoBucket {
	return geoDistribution(records, func(r dataset.Record) string { return r.State })
}

// CityDistribution returns order activity per customer city, busiest
// city first.
func (e *Engine) CityDistribution(records []dataset.Record) []GeoBucket {
	return geoDistribution(records, func(r dataset.Record) string { return r.City })
}

// ReviewDistribution counts reviewed rows per score. All five buckets
// are always present, zero-filled when a score never occurs.
func (e *Engine) ReviewDistribution(records []dataset.Record) []ReviewBucket {
	buckets := []ReviewBucket{{Score: 1}, {Score: 2}, {Score: 3}, {Score: 4}, {Score: 5}}
	for _, rec := range records {
		if rec.ReviewScore >= 1 && rec.ReviewScore <= 5 {
			buckets[rec.ReviewScore-1].Count++
		}
	}
	return buckets
}

// RFMSegments computes recency, frequency and monetary per customer and
// ranks the top customers by each metric independently. Recency counts
// days between a customer's last order and the dataset's max date.
func (e *Engine) RFMSegments(records []dataset.Record) RFMSummary {
	type acc struct {
		last     time.Time
		orders   map[string]struct{}
		monetary float64
	}
	customers := make(map[string]*acc)
	for _, rec := range records {
		a, ok := customers[rec.CustomerID]
		if !ok {
			a = &acc{orders: make(map[string]struct{})}
			customers[rec.CustomerID] = a
		}
		if day := rec.Day(); day.After(a.last) {
			a.last = day
		}
		a.orders[rec.OrderID] = struct{}{}
		a.monetary += rec.Price
	}

	rows := make([]RFMRow, 0, len(customers))
	var sumR, sumF, sumM float64
	for id, a := range customers {
		row := RFMRow{
			CustomerID: id,
			Recency:    int(e.ReferenceDate.Sub(a.last).Hours() / 24),
			Frequency:  len(a.orders),
			Monetary:   Round2(a.monetary),
		}
		sumR += float64(row.Recency)
		sumF += float64(row.Frequency)
		sumM += row.Monetary
		rows = append(rows, row)
	}

	summary := RFMSummary{
		ByRecency:   rankRFM(rows, e.TopN, func(a, b RFMRow) bool { return a.Recency < b.Recency }),
		ByFrequency: rankRFM(rows, e.TopN, func(a, b RFMRow) bool { return a.Frequency > b.Frequency }),
		ByMonetary:  rankRFM(rows, e.TopN, func(a, b RFMRow) bool { return a.Monetary > b.Monetary }),
	}
	if n := float64(len(rows)); n > 0 {
		summary.AvgRecency = Round2(sumR / n)
		summary.AvgFrequency = Round2(sumF / n)
		summary.AvgMonetary = Round2(sumM / n)
	}
	return summary
}

// PaymentMix counts distinct orders per payment type and averages each
// order's installment count, most used type first.
func (e *Engine) PaymentMix(records []dataset.Record) []PaymentBucket {
	type acc struct {
		orders       map[string]struct{}
		installments int
	}
	types := make(map[string]*acc)
	for _, rec := range records {
		if rec.PaymentType == "" {
			continue
		}
		a, ok := types[rec.PaymentType]
		if !ok {
			a = &acc{orders: make(map[string]struct{})}
			types[rec.PaymentType] = a
		}
		if _, seen := a.orders[rec.OrderID]; !seen {
			a.orders[rec.OrderID] = struct{}{}
			a.installments += rec.Installments
		}
	}

	buckets := make([]PaymentBucket, 0, len(types))
	for payType, a := range types {
		b := PaymentBucket{Type: payType, Orders: len(a.orders)}
		if len(a.orders) > 0 {
			b.AvgInstallments = Round2(float64(a.installments) / float64(len(a.orders)))
		}
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Orders != buckets[j].Orders {
			return buckets[i].Orders > buckets[j].Orders
		}
		return buckets[i].Type < buckets[j].Type
	})
	return buckets
}

// Delivery averages the order-to-delivery time over delivered orders.
func (e *Engine) Delivery(records []dataset.Record) DeliveryStats {
	seen := make(map[string]struct{})
	var days float64
	var delivered int
	for _, rec := range records {
		if rec.DeliveredAt == nil {
			continue
		}
		if _, ok := seen[rec.OrderID]; ok {
			continue
		}
		seen[rec.OrderID] = struct{}{}
		elapsed := rec.DeliveredAt.Sub(rec.OrderDate).Hours() / 24
		if elapsed < 0 {
			// Anomalous rows are kept in the table but excluded here.
			continue
		}
		days += elapsed
		delivered++
	}
	stats := DeliveryStats{Delivered: delivered}
	if delivered > 0 {
		stats.AvgDays = Round2(days / float64(delivered))
	}
	return stats
}

// HeadlineMetrics computes the totals shown above the charts.
func (e *Engine) HeadlineMetrics(records []dataset.Record) Headline {
	orders := make(map[string]struct{})
	var revenue float64
	var reviewSum, reviewed int
	for _, rec := range records {
		orders[rec.OrderID] = struct{}{}
		revenue += rec.Price
		if rec.ReviewScore >= 1 && rec.ReviewScore <= 5 {
			reviewSum += rec.ReviewScore
			reviewed++
		}
	}
	h := Headline{TotalOrders: len(orders), TotalRevenue: Round2(revenue)}
	if reviewed > 0 {
		h.AvgReviewScore = Round2(float64(reviewSum) / float64(reviewed))
	}
	return h
}

func headOf(s []CategorySales, n int) []CategorySales {
	if len(s) > n {
		s = s[:n]
	}
	return s
}

func headGeo(s []GeoBucket, n int) []GeoBucket {
	if len(s) > n {
		s = s[:n]
	}
	return s
}

func rankRFM(rows []RFMRow, n int, less func(a, b RFMRow) bool) []RFMRow {
	ranked := make([]RFMRow, len(rows))
	copy(ranked, rows)
	sort.Slice(ranked, func(i, j int) bool {
		if less(ranked[i], ranked[j]) != less(ranked[j], ranked[i]) {
			return less(ranked[i], ranked[j])
		}
		return ranked[i].CustomerID < ranked[j].CustomerID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
