package main

import (
	"fmt"
	"os"

	"fastfast-logistics/database"
	"fastfast-logistics/database/seeders"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate   - Create or update tables, indexes and constraints")
		fmt.Println("  go run tools/migrate.go seed      - Seed the admin account and sample coupons")
		fmt.Println("  go run tools/migrate.go status    - Show which tables exist")
		return
	}

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded, using process environment")
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if _, err := database.InitDB(); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "seed":
		db, err := database.InitDB()
		if err != nil {
			fmt.Printf("❌ Database unavailable: %v\n", err)
			os.Exit(1)
		}
		if err := seeders.Run(db, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
			fmt.Printf("❌ Seeding failed: %v\n", err)
			os.Exit(1)
		}

	case "status":
		db, err := database.Open(database.ConfigFromEnv())
		if err != nil {
			fmt.Printf("❌ Database unavailable: %v\n", err)
			os.Exit(1)
		}
		for _, table := range database.Tables() {
			mark := "❌"
			if db.Migrator().HasTable(table) {
				mark = "✅"
			}
			fmt.Printf("%s %s\n", mark, table)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, seed, status")
	}
}
