package main

import (
	"log"

	"github.com/food-hub-app/backend/config"
	"github.com/food-hub-app/backend/internal/database"
	"github.com/food-hub-app/backend/internal/dri"
)

// Seeds the nutrient catalogue and the dietary reference intake
// recommendations. Safe to run repeatedly.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := dri.Populate(db); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}

	log.Println("Reference nutrients and recommendations seeded")
}
