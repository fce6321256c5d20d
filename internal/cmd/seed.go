package cmd

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/config"
)

var (
	seedOrders int
	seedValue  int64
	seedDir    string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a synthetic dataset for local runs",
	Long: `Write a small synthetic set of sales tables into the data directory
so the dashboard can be exercised without a real data drop. All tables
join consistently: every order item resolves to an order, a product, a
customer and their geolocation.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedOrders, "orders", 500, "Number of orders to generate")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 42, "Random seed")
	seedCmd.Flags().StringVar(&seedDir, "dir", "", "Target directory (default: configured data dir)")
}

var (
	seedCategories = []string{
		"bed_bath_table", "health_beauty", "sports_leisure", "furniture_decor",
		"computers_accessories", "housewares", "watches_gifts", "telephony",
		"garden_tools", "auto", "toys", "flowers",
	}
	seedCities = []struct {
		city, state string
		lat, lng    float64
	}{
		{"sao paulo", "SP", -23.55, -46.63},
		{"rio de janeiro", "RJ", -22.91, -43.17},
		{"belo horizonte", "MG", -19.92, -43.94},
		{"brasilia", "DF", -15.78, -47.93},
		{"curitiba", "PR", -25.43, -49.27},
		{"porto alegre", "RS", -30.03, -51.23},
		{"salvador", "BA", -12.97, -38.50},
	}
	seedPaymentTypes = []string{"credit_card", "boleto", "voucher", "debit_card"}
)

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dir := seedDir
	if dir == "" {
		dir = cfg.Data.Dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	fmt.Printf("🌱 Seeding %d orders into %s...\n", seedOrders, dir)
	rng := rand.New(rand.NewSource(seedValue))

	var (
		orders       [][]string
		items        [][]string
		products     [][]string
		customers    [][]string
		geolocations [][]string
		reviews      [][]string
		payments     [][]string
		translations [][]string
	)

	for _, cat := range seedCategories {
		translations = append(translations, []string{cat, cat})
	}
	for i, cat := range seedCategories {
		products = append(products, []string{fmt.Sprintf("prod-%03d", i), cat})
	}
	for i, c := range seedCities {
		prefix := fmt.Sprintf("%05d", 10000+i)
		geolocations = append(geolocations, []string{
			prefix,
			fmt.Sprintf("%.4f", c.lat+rng.Float64()*0.05),
			fmt.Sprintf("%.4f", c.lng+rng.Float64()*0.05),
		})
	}

	customerCount := seedOrders/3 + 1
	for i := 0; i < customerCount; i++ {
		cityIdx := rng.Intn(len(seedCities))
		city := seedCities[cityIdx]
		customers = append(customers, []string{
			fmt.Sprintf("cust-%04d", i),
			fmt.Sprintf("%05d", 10000+cityIdx),
			city.city, city.state,
		})
	}

	base := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < seedOrders; i++ {
		orderID := fmt.Sprintf("order-%06d", i)
		customerID := fmt.Sprintf("cust-%04d", rng.Intn(customerCount))
		approved := base.AddDate(0, 0, rng.Intn(540)).Add(time.Duration(rng.Intn(24)) * time.Hour)
		delivered := approved.AddDate(0, 0, 2+rng.Intn(20))

		orders = append(orders, []string{
			orderID, customerID, "delivered",
			approved.Format("2006-01-02 15:04:05"),
			delivered.Format("2006-01-02 15:04:05"),
		})

		itemCount := 1 + rng.Intn(3)
		for item := 1; item <= itemCount; item++ {
			items = append(items, []string{
				orderID, fmt.Sprintf("%d", item),
				fmt.Sprintf("prod-%03d", rng.Intn(len(seedCategories))),
				fmt.Sprintf("%.2f", 10+rng.Float64()*290),
				fmt.Sprintf("%.2f", 5+rng.Float64()*30),
			})
		}
		reviews = append(reviews, []string{orderID, fmt.Sprintf("%d", 1+rng.Intn(5))})
		payments = append(payments, []string{
			orderID,
			seedPaymentTypes[rng.Intn(len(seedPaymentTypes))],
			fmt.Sprintf("%d", 1+rng.Intn(10)),
			fmt.Sprintf("%.2f", 15+rng.Float64()*320),
		})
	}

	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{cfg.Data.Orders, []string{"order_id", "customer_id", "order_status", "order_approved_at", "order_delivered_customer_date"}, orders},
		{cfg.Data.OrderItems, []string{"order_id", "order_item_id", "product_id", "price", "freight_value"}, items},
		{cfg.Data.Products, []string{"product_id", "product_category_name"}, products},
		{cfg.Data.CategoryTranslation, []string{"product_category_name", "product_category_name_english"}, translations},
		{cfg.Data.Customers, []string{"customer_id", "customer_zip_code_prefix", "customer_city", "customer_state"}, customers},
		{cfg.Data.Geolocation, []string{"geolocation_zip_code_prefix", "geolocation_lat", "geolocation_lng"}, geolocations},
		{cfg.Data.Reviews, []string{"order_id", "review_score"}, reviews},
		{cfg.Data.Payments, []string{"order_id", "payment_type", "payment_installments", "payment_value"}, payments},
	}
	for _, file := range files {
		if err := writeCSV(filepath.Join(dir, file.name), file.header, file.rows); err != nil {
			return err
		}
		fmt.Printf("   📄 %s: %d rows\n", file.name, len(file.rows))
	}

	fmt.Println("✅ Seed data written")
	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}
