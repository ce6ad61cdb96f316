package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leadloop/leadloop/internal/ai"
	"github.com/leadloop/leadloop/internal/batch"
	"github.com/leadloop/leadloop/internal/config"
	"github.com/leadloop/leadloop/internal/models"
	"github.com/leadloop/leadloop/internal/notify"
	"github.com/leadloop/leadloop/internal/scheduler"
	"github.com/leadloop/leadloop/internal/storage/postgres"
)

func main() {
	log.Println("Starting outreach scheduler...")

	ctx := context.Background()

	dbCfg, err := postgres.LoadConfigFromEnv(ctx)
	if err != nil {
		log.Fatal("Failed to load DB config:", err)
	}
	schedCfg, err := config.LoadSchedulerConfig(ctx)
	if err != nil {
		log.Fatal("Failed to load scheduler config:", err)
	}

	db, err := postgres.ConnectDB(ctx, dbCfg)
	if err != nil {
		log.Fatal("Connection failed:", err)
	}

	if err := postgres.MigrateModels(db,
		&models.OutreachJob{},
		&models.JobExecutionLog{},
		&models.OutreachPreferences{},
		&models.DailyBatch{},
		&models.BatchItem{},
		&models.Contact{},
		&models.Company{},
		&models.ProductProfile{},
		&models.SenderProfile{},
		&models.CustomerProfile{},
	); err != nil {
		log.Fatal("Migration failed:", err)
	}

	jobRepo := postgres.NewJobRepository(db)
	prefRepo := postgres.NewPreferenceRepository(db)
	logRepo := postgres.NewExecutionLogRepository(db)
	batchRepo := postgres.NewBatchRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	generator := batch.NewGenerator(batchRepo, profileRepo, ai.TemplateGenerator{}, time.Now)

	engine := scheduler.NewEngine(
		*schedCfg,
		jobRepo,
		prefRepo,
		logRepo,
		generator,
		notify.LogNotifier{},
		time.Now,
	)

	if err := engine.Start(); err != nil {
		log.Fatal("Engine start failed:", err)
	}
	log.Println("Scheduler active. Press Ctrl+C to stop.")

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	go expireLoop(janitorCtx, batchRepo)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	stopJanitor()
	engine.Stop()
	log.Println("Shutdown complete.")
}

// expireLoop flips overdue batches to expired once an hour. Token
// lookups check expires_at themselves; this is bookkeeping.
func expireLoop(ctx context.Context, batches *postgres.BatchRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			n, err := batches.ExpireBatches(ctx, now)
			if err != nil {
				log.Printf("[janitor][WARN] expire batches: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[janitor] expired %d batch(es)", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
