package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	seedDir := os.Getenv("SEED_DIR")
	if seedDir == "" {
		seedDir = "seed"
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedCatalog(db, filepath.Join(seedDir, "catalog.csv"))
	seedOffers(db, filepath.Join(seedDir, "offers.csv"))
	seedCoupons(db, filepath.Join(seedDir, "coupons.csv"))

	log.Println("Seeding completed successfully!")
}

// readCSV returns the data rows of a CSV file, skipping the header. Rows may
// have trailing empty columns omitted.
func readCSV(path string) [][]string {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}
	if len(records) < 1 {
		log.Fatalf("%s is empty", path)
	}
	return records[1:]
}

func seedCatalog(db *sql.DB, path string) {
	fmt.Println("Seeding Products...")
	for _, row := range readCSV(path) {
		if len(row) < 3 {
			log.Printf("Skipping malformed product row %v", row)
			continue
		}
		name, unit := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			log.Printf("Failed to parse price for %s: %v", name, err)
			continue
		}
		_, err = db.Exec(`
			INSERT INTO products (name, unit, price)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET unit = EXCLUDED.unit, price = EXCLUDED.price;
		`, name, unit, price)
		if err != nil {
			log.Printf("Failed to seed product %s: %v", name, err)
		}
	}
}

// seedOffers loads standing offers and bundle offers. Bundle rows use the
// BUNDLE type with a pipe-separated product list and a percent argument;
// every other row targets a single product.
func seedOffers(db *sql.DB, path string) {
	fmt.Println("Seeding Offers...")
	for _, row := range readCSV(path) {
		if len(row) < 2 {
			log.Printf("Skipping malformed offer row %v", row)
			continue
		}
		offerType := strings.TrimSpace(row[0])
		products := strings.TrimSpace(row[1])
		args := map[string]string{}
		if len(row) > 2 {
			args = parseArgs(row[2])
		}

		if offerType == "BUNDLE" {
			seedBundle(db, products, args)
			continue
		}

		_, err := db.Exec(`
			INSERT INTO special_offers (product_name, offer_type, amount, threshold, item_limit, percent)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (product_name) DO UPDATE SET
				offer_type = EXCLUDED.offer_type,
				amount = EXCLUDED.amount,
				threshold = EXCLUDED.threshold,
				item_limit = EXCLUDED.item_limit,
				percent = EXCLUDED.percent;
		`, products, offerType,
			floatArg(args, "amount"), intArg(args, "threshold"), intArg(args, "limit"), floatArg(args, "percent"))
		if err != nil {
			log.Printf("Failed to seed offer for %s: %v", products, err)
		}
	}
}

func seedBundle(db *sql.DB, products string, args map[string]string) {
	percent := floatArg(args, "percent")
	if percent == nil {
		log.Printf("Skipping bundle %s: missing percent", products)
		return
	}

	var bundleID int64
	if err := db.QueryRow(`
		INSERT INTO bundle_offers (discount_percent) VALUES ($1) RETURNING id;
	`, *percent).Scan(&bundleID); err != nil {
		log.Printf("Failed to seed bundle %s: %v", products, err)
		return
	}

	for _, member := range strings.Split(products, "|") {
		name := member
		quantity := 1.0
		if idx := strings.Index(member, "*"); idx >= 0 {
			name = member[:idx]
			if q, err := strconv.ParseFloat(member[idx+1:], 64); err == nil {
				quantity = q
			}
		}
		name = strings.TrimSpace(name)
		_, err := db.Exec(`
			INSERT INTO bundle_offer_items (bundle_id, product_name, quantity)
			VALUES ($1, $2, $3);
		`, bundleID, name, quantity)
		if err != nil {
			log.Printf("Failed to seed bundle item %s: %v", name, err)
		}
	}
}

func seedCoupons(db *sql.DB, path string) {
	fmt.Println("Seeding Coupons...")
	for _, row := range readCSV(path) {
		if len(row) < 5 {
			log.Printf("Skipping malformed coupon row %v", row)
			continue
		}
		code := strings.TrimSpace(row[0])
		product := strings.TrimSpace(row[1])
		start := strings.TrimSpace(row[2])
		end := strings.TrimSpace(row[3])
		offerType := strings.TrimSpace(row[4])
		args := map[string]string{}
		if len(row) > 5 {
			args = parseArgs(row[5])
		}

		_, err := db.Exec(`
			INSERT INTO coupons (code, product_name, start_date, end_date, offer_type, amount, threshold, item_limit, percent)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (code) DO UPDATE SET
				product_name = EXCLUDED.product_name,
				start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date,
				offer_type = EXCLUDED.offer_type,
				amount = EXCLUDED.amount,
				threshold = EXCLUDED.threshold,
				item_limit = EXCLUDED.item_limit,
				percent = EXCLUDED.percent;
		`, code, product, start, end, offerType,
			floatArg(args, "amount"), intArg(args, "threshold"), intArg(args, "limit"), floatArg(args, "percent"))
		if err != nil {
			log.Printf("Failed to seed coupon %s: %v", code, err)
		}
	}
}

// parseArgs splits "key=value;key=value" into a map.
func parseArgs(raw string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

func floatArg(args map[string]string, key string) *float64 {
	raw, ok := args[key]
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func intArg(args map[string]string, key string) *int {
	raw, ok := args[key]
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
