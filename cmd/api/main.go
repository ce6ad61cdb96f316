package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leadloop/leadloop/internal/models"
	"github.com/leadloop/leadloop/internal/outreach"
	"github.com/leadloop/leadloop/internal/storage/postgres"
	"github.com/leadloop/leadloop/middleware"
)

func main() {
	log.Println("Starting outreach settings API...")

	ctx := context.Background()
	cfg, err := postgres.LoadConfigFromEnv(ctx)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := postgres.ConnectDB(ctx, cfg)
	if err != nil {
		log.Fatal("Connection failed:", err)
	}

	if err := postgres.MigrateModels(db,
		&models.OutreachJob{},
		&models.JobExecutionLog{},
		&models.OutreachPreferences{},
	); err != nil {
		log.Fatal("Migration failed:", err)
	}

	jobRepo := postgres.NewJobRepository(db)
	prefRepo := postgres.NewPreferenceRepository(db)
	logRepo := postgres.NewExecutionLogRepository(db)

	service := outreach.NewService(jobRepo, prefRepo, logRepo, time.Now)
	handler := outreach.NewHandler(service)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.ErrorHandler())
	outreach.RegisterRoutes(r, handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("API listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed:", err)
	}
}
