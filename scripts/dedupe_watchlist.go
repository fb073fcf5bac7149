package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Collapses duplicate (user_id, listing_id) watchlist rows left behind by
// deployments that predate the unique index, keeping the oldest row, then
// adds the index. Run once before upgrading.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database successfully")

	res, err := db.Exec(`
		DELETE FROM watchlists w USING watchlists keep
		WHERE w.user_id = keep.user_id
		  AND w.listing_id = keep.listing_id
		  AND w.id > keep.id`)
	if err != nil {
		log.Fatalf("Failed to remove duplicate watchlist rows: %v", err)
	}

	removed, _ := res.RowsAffected()
	log.Printf("Removed %d duplicate watchlist rows", removed)

	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_watchlist_user_listing
		ON watchlists (user_id, listing_id)`)
	if err != nil {
		log.Fatalf("Failed to create unique index: %v", err)
	}

	log.Println("Watchlist unique index in place")
}
