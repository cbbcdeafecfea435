package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/dparedes/techstore/internal/adapter/storage"
)

const createTableStmt = `
CREATE TABLE IF NOT EXISTS products (
	id             BIGINT PRIMARY KEY,
	name           VARCHAR(255) NOT NULL,
	brand          VARCHAR(100) NOT NULL,
	category       VARCHAR(100) NOT NULL,
	price          DOUBLE NOT NULL,
	original_price DOUBLE NOT NULL,
	discount       INT NOT NULL DEFAULT 0,
	rating         DOUBLE NOT NULL DEFAULT 0,
	reviews        INT NOT NULL DEFAULT 0,
	images         JSON,
	description    TEXT,
	features       JSON,
	stock          INT NOT NULL DEFAULT 0,
	in_stock       BOOLEAN NOT NULL DEFAULT FALSE
)`

const upsertStmt = `
INSERT INTO products (id, name, brand, category, price, original_price, discount,
	rating, reviews, images, description, features, stock, in_stock)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
	name = VALUES(name), brand = VALUES(brand), category = VALUES(category),
	price = VALUES(price), original_price = VALUES(original_price),
	discount = VALUES(discount), rating = VALUES(rating), reviews = VALUES(reviews),
	images = VALUES(images), description = VALUES(description),
	features = VALUES(features), stock = VALUES(stock), in_stock = VALUES(in_stock)`

func main() {
	dsn := flag.String("dsn", "root:root@tcp(localhost:3306)/techstore?parseTime=true", "MySQL DSN")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("mysql", *dsn)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}
	log.Println("connected to mysql")

	if _, err := db.ExecContext(ctx, createTableStmt); err != nil {
		log.Fatalf("failed to create products table: %v", err)
	}

	for _, p := range storage.DemoCatalog() {
		images, err := json.Marshal(p.Images)
		if err != nil {
			log.Fatalf("failed to encode images for %d: %v", p.ID, err)
		}
		features, err := json.Marshal(p.Features)
		if err != nil {
			log.Fatalf("failed to encode features for %d: %v", p.ID, err)
		}

		_, err = db.ExecContext(ctx, upsertStmt,
			p.ID, p.Name, p.Brand, p.Category, p.Price, p.OriginalPrice,
			p.Discount, p.Rating, p.Reviews, images, p.Description,
			features, p.Stock, p.InStock,
		)
		if err != nil {
			log.Fatalf("failed to upsert product %d: %v", p.ID, err)
		}
		log.Printf("seeded product %d: %s (stock=%d)", p.ID, p.Name, p.Stock)
	}

	log.Println("catalog seeded")
}
