package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/weihanng/techtrove/config"
	"github.com/weihanng/techtrove/pkg/helpers"
)

type seedProduct struct {
	title       string
	price       string
	description string
	quantity    int
	category    string
	imageURL    string
}

var demoProducts = []seedProduct{
	{"Nebula X2 Smartphone", "1899.00", "6.4\" OLED, 256GB, dual SIM.", 25, "phone", "https://storage.googleapis.com/techtrove-demo/nebula-x2.jpg"},
	{"Voyager 14 Ultrabook", "4299.00", "14\" laptop, 16GB RAM, 1TB SSD.", 12, "laptop", "https://storage.googleapis.com/techtrove-demo/voyager-14.jpg"},
	{"Pulse Station 5", "2399.00", "Next-gen game console, 825GB.", 8, "game console", "https://storage.googleapis.com/techtrove-demo/pulse-station.jpg"},
	{"Titan Tower RTX", "6899.00", "Gaming desktop, RTX 4070, 32GB.", 5, "desktop", "https://storage.googleapis.com/techtrove-demo/titan-tower.jpg"},
	{"ClearView 27 QHD", "1199.00", "27\" 165Hz QHD monitor.", 18, "monitor", "https://storage.googleapis.com/techtrove-demo/clearview-27.jpg"},
	{"AeroBuds Pro", "349.00", "Wireless earbuds with ANC.", 60, "accessories", "https://storage.googleapis.com/techtrove-demo/aerobuds.jpg"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "seller@techtrove.dev"
	password := "password123"
	name := "Demo Seller"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var sellerID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&sellerID)
	if err != nil {
		log.Fatalf("failed to seed seller: %v", err)
	}
	fmt.Printf("seeded seller: id=%s email=%s password=%s\n", sellerID, email, password)

	for _, p := range demoProducts {
		if _, err := db.Exec(`
			INSERT INTO products (title, image_url, price, description, quantity, category, seller_id)
			SELECT $1, $2, $3, $4, $5, $6, $7
			WHERE NOT EXISTS (SELECT 1 FROM products WHERE title = $1 AND seller_id = $7)
		`, p.title, p.imageURL, p.price, p.description, p.quantity, p.category, sellerID); err != nil {
			log.Fatalf("failed to seed product %q: %v", p.title, err)
		}
	}
	fmt.Printf("seeded %d products for %s\n", len(demoProducts), email)
}
