// Command seed-admin creates the admin account if it does not exist yet.
// Reads ADMIN_EMAIL, ADMIN_PASSWORD, and optional ADMIN_NAME from the
// environment.
package main

import (
	"context"
	"log"
	"os"

	"warehouse-manager/internal/core"
	"warehouse-manager/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Admin"
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	if err := core.NewUserService(pool).EnsureAdmin(ctx, email, password, name); err != nil {
		log.Fatalf("admin seed: %v", err)
	}
	log.Printf("admin account %s is present", email)
}
