package main

import (
	"fmt"
	"log"

	"field-presence-backend/config"
	"field-presence-backend/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("Seeding development data...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables.")
	}

	if err := config.ConnectDB(); err != nil {
		log.Fatal(err)
	}

	if err := database.SeedAll(config.DB); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Seeding done.")
}
