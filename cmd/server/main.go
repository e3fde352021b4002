package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "warehouse-manager/internal/adapters/web"
	"warehouse-manager/internal/ai"
	"warehouse-manager/internal/app"
	"warehouse-manager/internal/core"
	"warehouse-manager/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	userService := core.NewUserService(pool)
	warehouseService := core.NewWarehouseService(pool)
	flowService := core.NewFlowService(pool)
	supportService := core.NewSupportService(pool)

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set, AI advice is disabled")
	}
	advisor := ai.NewAdvisor(apiKey)

	svc := app.NewAppService(userService, warehouseService, flowService, supportService, advisor)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			log.Fatal("ADMIN_PASSWORD must be set when ADMIN_EMAIL is set")
		}
		if err := userService.EnsureAdmin(ctx, email, password, "Admin"); err != nil {
			log.Fatalf("admin seed: %v", err)
		}
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
