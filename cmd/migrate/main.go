// cmd/migrate/main.go
//
// Explicit migration tooling: schema changes run through goose, never
// through ad hoc scripts against the hosted database.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/sterlingcover/leadgen-backend/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	conn, err := goose.OpenDBWithDriver("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open DB: %v", err)
	}
	defer conn.Close()

	dir := "migrations"
	switch command {
	case "up":
		err = goose.Up(conn, dir)
	case "down":
		err = goose.Down(conn, dir)
	case "status":
		err = goose.Status(conn, dir)
	case "version":
		err = goose.Version(conn, dir)
	default:
		log.Fatalf("unknown command %q (want up, down, status, or version)", command)
	}
	if err != nil {
		log.Fatalf("migration %s failed: %v", command, err)
	}
}
