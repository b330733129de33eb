package main

import (
	"log"

	"elevatia-backend/shared/config"
	"elevatia-backend/shared/database"
)

func main() {
	config.LoadConfig()

	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	if err := database.SeedDatabase(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
