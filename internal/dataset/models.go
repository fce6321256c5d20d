package dataset

import (
	"time"
)

// Order represents one row of the orders table
type Order struct {
	ID          string     `json:"order_id"`
	CustomerID  string     `json:"customer_id"`
	Status      string     `json:"order_status"`
	ApprovedAt  time.Time  `json:"order_approved_at"`
	DeliveredAt *time.Time `json:"order_delivered_customer_date"`
}

// OrderItem represents one row of the order items table
type OrderItem struct {
	OrderID      string  `json:"order_id"`
	ItemID       int     `json:"order_item_id"`
	ProductID    string  `json:"product_id"`
	Price        float64 `json:"price"`
	FreightValue float64 `json:"freight_value"`
}

// Product represents one row of the products table, with the category
// already translated to its English label
type Product struct {
	ID       string `json:"product_id"`
	Category string `json:"category"`
}

// Customer represents one row of the customers table
type Customer struct {
	ID        string `json:"customer_id"`
	ZipPrefix string `json:"customer_zip_code_prefix"`
	City      string `json:"customer_city"`
	State     string `json:"customer_state"`
}

// Geolocation holds the averaged coordinates for a zip code prefix
type Geolocation struct {
	ZipPrefix string  `json:"zip_code_prefix"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// Review represents one row of the reviews table
type Review struct {
	OrderID string `json:"order_id"`
	Score   int    `json:"review_score"`
}

// Payment holds the per-order rollup of the payments table: values are
// summed, the type is the one that paid the largest share, installments
// keep the maximum seen for the order.
type Payment struct {
	OrderID      string  `json:"order_id"`
	Type         string  `json:"payment_type"`
	Installments int     `json:"payment_installments"`
	Value        float64 `json:"payment_value"`
}

// Order statuses as they appear in the orders file
const (
	OrderStatusDelivered = "delivered"
	OrderStatusShipped   = "shipped"
	OrderStatusCanceled  = "canceled"
)

// Record is one row of the denormalized working table: an order item
// joined with its order, product, customer, geolocation, review and
// payment data. The working table is read-only after Load.
type Record struct {
	OrderID      string     `json:"order_id"`
	ItemID       int        `json:"order_item_id"`
	CustomerID   string     `json:"customer_id"`
	ProductID    string     `json:"product_id"`
	Status       string     `json:"order_status"`
	OrderDate    time.Time  `json:"order_date"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	Price        float64    `json:"price"`
	FreightValue float64    `json:"freight_value"`
	Category     string     `json:"category"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	Lat          float64    `json:"lat"`
	Lng          float64    `json:"lng"`
	HasGeo       bool       `json:"has_geo"`
	ReviewScore  int        `json:"review_score"` // 0 when the order has no review
	PaymentType  string     `json:"payment_type"`
	Installments int        `json:"payment_installments"`
	PaymentValue float64    `json:"payment_value"`
}

// Day returns the record's order date truncated to a UTC calendar date.
func (r Record) Day() time.Time {
	return DayOf(r.OrderDate)
}

// DayOf truncates a timestamp to its UTC calendar date.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Snapshot is the loaded working table plus the metadata the dashboard
// needs: the inclusive date bounds and load-time counters.
type Snapshot struct {
	Records []Record  `json:"-"`
	MinDate time.Time `json:"min_date"`
	MaxDate time.Time `json:"max_date"`

	Orders        int `json:"orders"`
	SkippedRows   int `json:"skipped_rows"`   // items whose order has no usable date
	DateAnomalies int `json:"date_anomalies"` // delivery date before order date
}
