//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"nutricalc/internal/config"
	"nutricalc/internal/database"
	"nutricalc/internal/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Checks database connectivity, applies the schema and reports table sizes.
//
// Run with: go run scripts/check_db.go
func main() {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(envOr("DB_PORT", "5432"))
	cfg := config.DatabaseConfig{
		Host:            envOr("DB_HOST", "localhost"),
		Port:            port,
		User:            envOr("DB_USER", "postgres"),
		Password:        envOr("DB_PASSWORD", "postgres"),
		Database:        envOr("DB_NAME", "nutricalc"),
		SSLMode:         envOr("DB_SSLMODE", "disable"),
		MaxConnections:  2,
		MinConnections:  1,
		MaxConnLifetime: 60,
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to apply schema: %v\n", err)
		os.Exit(1)
	}

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	cached, err := repository.NewFoodCacheRepository(pool, logger).Count(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Count failed: %v\n", err)
		os.Exit(1)
	}

	var users, recipes int
	if err := pool.QueryRow(ctx, "SELECT (SELECT COUNT(*) FROM users), (SELECT COUNT(*) FROM recipes)").Scan(&users, &recipes); err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  users:       %d\n", users)
	fmt.Printf("  recipes:     %d\n", recipes)
	fmt.Printf("  cached foods: %d\n", cached)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
