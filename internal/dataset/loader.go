package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/salesdash/salesdash/internal/config"
)

// ErrBadSchema marks a file whose header is missing an expected column.
var ErrBadSchema = errors.New("unexpected schema")

// Timestamp layouts accepted for date-like columns, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Load reads every table named in cfg, coerces column types and joins
// the entities into the denormalized working table. A missing file or a
// header without the expected columns is fatal; the caller cannot
// render without its data.
func Load(cfg *config.DataConfig) (*Snapshot, error) {
	orders, err := loadOrders(filepath.Join(cfg.Dir, cfg.Orders))
	if err != nil {
		return nil, err
	}
	items, err := loadOrderItems(filepath.Join(cfg.Dir, cfg.OrderItems))
	if err != nil {
		return nil, err
	}
	products, err := loadProducts(
		filepath.Join(cfg.Dir, cfg.Products),
		filepath.Join(cfg.Dir, cfg.CategoryTranslation),
	)
	if err != nil {
		return nil, err
	}
	customers, err := loadCustomers(filepath.Join(cfg.Dir, cfg.Customers))
	if err != nil {
		return nil, err
	}
	geo, err := loadGeolocation(filepath.Join(cfg.Dir, cfg.Geolocation))
	if err != nil {
		return nil, err
	}
	reviews, err := loadReviews(filepath.Join(cfg.Dir, cfg.Reviews))
	if err != nil {
		return nil, err
	}
	payments, err := loadPayments(filepath.Join(cfg.Dir, cfg.Payments))
	if err != nil {
		return nil, err
	}

	snap := join(orders, items, products, customers, geo, reviews, payments)

	log.WithFields(log.Fields{
		"records":        len(snap.Records),
		"orders":         snap.Orders,
		"skipped_rows":   snap.SkippedRows,
		"date_anomalies": snap.DateAnomalies,
	}).Info("dataset loaded")

	return snap, nil
}

// join builds the working table: one record per order item, enriched
// with order, product, customer, geolocation, review and payment data.
func join(
	orders map[string]Order,
	items []OrderItem,
	products map[string]Product,
	customers map[string]Customer,
	geo map[string]Geolocation,
	reviews map[string]Review,
	payments map[string]Payment,
) *Snapshot {
	snap := &Snapshot{}
	seenOrders := make(map[string]struct{})

	for _, item := range items {
		order, ok := orders[item.OrderID]
		if !ok || order.ApprovedAt.IsZero() {
			snap.SkippedRows++
			continue
		}
		if order.DeliveredAt != nil && order.DeliveredAt.Before(order.ApprovedAt) {
			snap.DateAnomalies++
		}

		rec := Record{
			OrderID:      item.OrderID,
			ItemID:       item.ItemID,
			CustomerID:   order.CustomerID,
			ProductID:    item.ProductID,
			Status:       order.Status,
			OrderDate:    order.ApprovedAt,
			DeliveredAt:  order.DeliveredAt,
			Price:        item.Price,
			FreightValue: item.FreightValue,
		}
		if p, ok := products[item.ProductID]; ok {
			rec.Category = p.Category
		}
		if c, ok := customers[order.CustomerID]; ok {
			rec.City = c.City
			rec.State = c.State
			if g, ok := geo[c.ZipPrefix]; ok {
				rec.Lat = g.Lat
				rec.Lng = g.Lng
				rec.HasGeo = true
			}
		}
		if rv, ok := reviews[item.OrderID]; ok {
			rec.ReviewScore = rv.Score
		}
		if pay, ok := payments[item.OrderID]; ok {
			rec.PaymentType = pay.Type
			rec.Installments = pay.Installments
			rec.PaymentValue = pay.Value
		}

		day := rec.Day()
		if snap.MinDate.IsZero() || day.Before(snap.MinDate) {
			snap.MinDate = day
		}
		if day.After(snap.MaxDate) {
			snap.MaxDate = day
		}
		if _, ok := seenOrders[rec.OrderID]; !ok {
			seenOrders[rec.OrderID] = struct{}{}
			snap.Orders++
		}
		snap.Records = append(snap.Records, rec)
	}

	return snap
}

// table wraps a csv.Reader with name-based column access.
type table struct {
	path string
	r    *csv.Reader
	f    *os.File
	cols map[string]int
	row  []string
}

// openTable opens a CSV file and validates that every required column
// is present in the header. Column matching is case-insensitive.
func openTable(path string, required ...string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}

	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read header of %s: %w", filepath.Base(path), err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			f.Close()
			return nil, fmt.Errorf("%w: %s is missing column %q", ErrBadSchema, filepath.Base(path), name)
		}
	}

	return &table{path: path, r: r, f: f, cols: cols}, nil
}

// next advances to the next data row. It returns false at EOF.
func (t *table) next() (bool, error) {
	row, err := t.r.Read()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", filepath.Base(t.path), err)
	}
	t.row = row
	return true, nil
}

func (t *table) close() { t.f.Close() }

func (t *table) str(col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(t.row) {
		return ""
	}
	return strings.TrimSpace(t.row[i])
}

func (t *table) float(col string) float64 {
	v, err := strconv.ParseFloat(t.str(col), 64)
	if err != nil {
		return 0
	}
	return v
}

func (t *table) int(col string) int {
	v, err := strconv.Atoi(t.str(col))
	if err != nil {
		return 0
	}
	return v
}

func (t *table) date(col string) (time.Time, bool) {
	s := t.str(col)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

func loadOrders(path string) (map[string]Order, error) {
	t, err := openTable(path, "order_id", "customer_id", "order_status", "order_approved_at")
	if err != nil {
		return nil, err
	}
	defer t.close()

	orders := make(map[string]Order)
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		o := Order{
			ID:         t.str("order_id"),
			CustomerID: t.str("customer_id"),
			Status:     t.str("order_status"),
		}
		if ts, ok := t.date("order_approved_at"); ok {
			o.ApprovedAt = ts
		}
		if ts, ok := t.date("order_delivered_customer_date"); ok {
			o.DeliveredAt = &ts
		}
		orders[o.ID] = o
	}
	return orders, nil
}

func loadOrderItems(path string) ([]OrderItem, error) {
	t, err := openTable(path, "order_id", "order_item_id", "product_id", "price")
	if err != nil {
		return nil, err
	}
	defer t.close()

	var items []OrderItem
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		items = append(items, OrderItem{
			OrderID:      t.str("order_id"),
			ItemID:       t.int("order_item_id"),
			ProductID:    t.str("product_id"),
			Price:        t.float("price"),
			FreightValue: t.float("freight_value"),
		})
	}
	return items, nil
}

// loadProducts reads the products table and the category translation
// table, returning products keyed by id with English category labels.
// Categories without a translation keep their original name.
func loadProducts(productsPath, translationPath string) (map[string]Product, error) {
	tr, err := openTable(translationPath, "product_category_name", "product_category_name_english")
	if err != nil {
		return nil, err
	}
	translations := make(map[string]string)
	for {
		ok, err := tr.next()
		if err != nil {
			tr.close()
			return nil, err
		}
		if !ok {
			break
		}
		translations[tr.str("product_category_name")] = tr.str("product_category_name_english")
	}
	tr.close()

	t, err := openTable(productsPath, "product_id", "product_category_name")
	if err != nil {
		return nil, err
	}
	defer t.close()

	products := make(map[string]Product)
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		category := t.str("product_category_name")
		if english, ok := translations[category]; ok && english != "" {
			category = english
		}
		id := t.str("product_id")
		products[id] = Product{ID: id, Category: category}
	}
	return products, nil
}

func loadCustomers(path string) (map[string]Customer, error) {
	t, err := openTable(path, "customer_id", "customer_zip_code_prefix", "customer_city", "customer_state")
	if err != nil {
		return nil, err
	}
	defer t.close()

	customers := make(map[string]Customer)
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		c := Customer{
			ID:        t.str("customer_id"),
			ZipPrefix: t.str("customer_zip_code_prefix"),
			City:      t.str("customer_city"),
			State:     t.str("customer_state"),
		}
		customers[c.ID] = c
	}
	return customers, nil
}

// loadGeolocation averages coordinates per zip code prefix, since the
// source file carries many points per prefix.
func loadGeolocation(path string) (map[string]Geolocation, error) {
	t, err := openTable(path, "geolocation_zip_code_prefix", "geolocation_lat", "geolocation_lng")
	if err != nil {
		return nil, err
	}
	defer t.close()

	type acc struct {
		lat, lng float64
		n        int
	}
	sums := make(map[string]*acc)
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		prefix := t.str("geolocation_zip_code_prefix")
		a, ok := sums[prefix]
		if !ok {
			a = &acc{}
			sums[prefix] = a
		}
		a.lat += t.float("geolocation_lat")
		a.lng += t.float("geolocation_lng")
		a.n++
	}

	geo := make(map[string]Geolocation, len(sums))
	for prefix, a := range sums {
		geo[prefix] = Geolocation{
			ZipPrefix: prefix,
			Lat:       a.lat / float64(a.n),
			Lng:       a.lng / float64(a.n),
		}
	}
	return geo, nil
}

// loadReviews keeps one review per order; when an order has several,
// the last one in the file wins, matching a most-recent-first export.
func loadReviews(path string) (map[string]Review, error) {
	t, err := openTable(path, "order_id", "review_score")
	if err != nil {
		return nil, err
	}
	defer t.close()

	reviews := make(map[string]Review)
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		score := t.int("review_score")
		if score < 1 || score > 5 {
			continue
		}
		orderID := t.str("order_id")
		reviews[orderID] = Review{OrderID: orderID, Score: score}
	}
	return reviews, nil
}

// loadPayments rolls payment rows up per order: values are summed, the
// payment type with the largest summed value wins, installments keep
// the maximum seen.
func loadPayments(path string) (map[string]Payment, error) {
	t, err := openTable(path, "order_id", "payment_type", "payment_value")
	if err != nil {
		return nil, err
	}
	defer t.close()

	totals := make(map[string]Payment)
	typeTotals := make(map[string]map[string]float64)
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		orderID := t.str("order_id")
		payType := t.str("payment_type")
		value := t.float("payment_value")

		p := totals[orderID]
		p.OrderID = orderID
		p.Value += value
		if inst := t.int("payment_installments"); inst > p.Installments {
			p.Installments = inst
		}

		if typeTotals[orderID] == nil {
			typeTotals[orderID] = make(map[string]float64)
		}
		typeTotals[orderID][payType] += value
		if p.Type == "" || typeTotals[orderID][payType] > typeTotals[orderID][p.Type] {
			p.Type = payType
		}
		totals[orderID] = p
	}
	return totals, nil
}
