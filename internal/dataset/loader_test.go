package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdash/salesdash/internal/config"
)

func fixtureConfig(dir string) *config.DataConfig {
	return &config.DataConfig{
		Dir:                 dir,
		Orders:              "orders.csv",
		OrderItems:          "order_items.csv",
		Products:            "products.csv",
		CategoryTranslation: "category_translation.csv",
		Customers:           "customers.csv",
		Geolocation:         "geolocation.csv",
		Reviews:             "reviews.csv",
		Payments:            "payments.csv",
	}
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFixture(t, dir, "orders.csv",
		"order_id,customer_id,order_status,order_approved_at,order_delivered_customer_date\n"+
			"o1,c1,delivered,2017-01-01 10:00:00,2017-01-06 10:00:00\n"+
			"o2,c2,delivered,2017-06-15 09:00:00,\n"+
			"o3,c3,shipped,2018-01-01 08:00:00,2017-12-31 08:00:00\n"+
			"o4,c1,canceled,,\n")
	writeFixture(t, dir, "order_items.csv",
		"order_id,order_item_id,product_id,price,freight_value\n"+
			"o1,1,p1,40.00,5.00\n"+
			"o1,2,p2,60.00,5.00\n"+
			"o2,1,p1,200.00,12.50\n"+
			"o3,1,p2,50.00,8.00\n"+
			"o4,1,p1,99.00,1.00\n")
	writeFixture(t, dir, "products.csv",
		"product_id,product_category_name\n"+
			"p1,brinquedos\n"+
			"p2,esporte_lazer\n")
	writeFixture(t, dir, "category_translation.csv",
		"product_category_name,product_category_name_english\n"+
			"brinquedos,toys\n")
	writeFixture(t, dir, "customers.csv",
		"customer_id,customer_zip_code_prefix,customer_city,customer_state\n"+
			"c1,01000,sao paulo,SP\n"+
			"c2,02000,rio de janeiro,RJ\n"+
			"c3,99999,nowhere,XX\n")
	writeFixture(t, dir, "geolocation.csv",
		"geolocation_zip_code_prefix,geolocation_lat,geolocation_lng\n"+
			"01000,-23.50,-46.60\n"+
			"01000,-23.70,-46.80\n"+
			"02000,-22.91,-43.17\n")
	writeFixture(t, dir, "reviews.csv",
		"order_id,review_score\n"+
			"o1,1\n"+
			"o1,5\n"+
			"o2,3\n"+
			"o3,9\n")
	writeFixture(t, dir, "payments.csv",
		"order_id,payment_type,payment_installments,payment_value\n"+
			"o1,credit_card,4,50.00\n"+
			"o1,voucher,1,10.00\n"+
			"o2,boleto,1,212.50\n")

	return dir
}

func TestLoadJoinsAllTables(t *testing.T) {
	dir := writeFixtures(t)

	snap, err := Load(fixtureConfig(dir))
	require.NoError(t, err)

	// o4 has no usable order date, its single item is skipped.
	require.Len(t, snap.Records, 4)
	assert.Equal(t, 3, snap.Orders)
	assert.Equal(t, 1, snap.SkippedRows)
	assert.Equal(t, 1, snap.DateAnomalies)

	assert.Equal(t, DayOf(snap.Records[0].OrderDate), snap.MinDate)
	assert.Equal(t, "2017-01-01", snap.MinDate.Format("2006-01-02"))
	assert.Equal(t, "2018-01-01", snap.MaxDate.Format("2006-01-02"))

	first := snap.Records[0]
	assert.Equal(t, "o1", first.OrderID)
	assert.Equal(t, "c1", first.CustomerID)
	assert.Equal(t, "toys", first.Category, "category must use the English translation")
	assert.Equal(t, "sao paulo", first.City)
	assert.Equal(t, "SP", first.State)
	require.True(t, first.HasGeo)
	assert.InDelta(t, -23.60, first.Lat, 0.001, "coordinates are averaged per zip prefix")
	assert.InDelta(t, -46.70, first.Lng, 0.001)
	assert.Equal(t, 5, first.ReviewScore, "last review in the file wins")
	assert.Equal(t, "credit_card", first.PaymentType, "largest payment share wins")
	assert.Equal(t, 4, first.Installments)
	assert.InDelta(t, 60.0, first.PaymentValue, 0.001, "payment values are summed per order")

	second := snap.Records[1]
	assert.Equal(t, "o1", second.OrderID)
	assert.Equal(t, "esporte_lazer", second.Category, "untranslated category keeps its name")

	// o3's invalid review score (9) is dropped.
	for _, rec := range snap.Records {
		if rec.OrderID == "o3" {
			assert.Zero(t, rec.ReviewScore)
			assert.False(t, rec.HasGeo, "zip prefix without geolocation rows")
		}
	}
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	dir := writeFixtures(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "reviews.csv")))

	_, err := Load(fixtureConfig(dir))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "reviews.csv")
}

func TestLoadBadSchemaIsFatal(t *testing.T) {
	dir := writeFixtures(t)
	writeFixture(t, dir, "orders.csv",
		"order_id,customer_id,order_approved_at\no1,c1,2017-01-01 10:00:00\n")

	_, err := Load(fixtureConfig(dir))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadSchema))
	assert.Contains(t, err.Error(), "order_status")
}

func TestStoreHealthCheck(t *testing.T) {
	assert.ErrorIs(t, NewStore(&Snapshot{}).HealthCheck(), ErrEmptyDataset)

	dir := writeFixtures(t)
	snap, err := Load(fixtureConfig(dir))
	require.NoError(t, err)
	assert.NoError(t, NewStore(snap).HealthCheck())
}
