// The pipeline binary runs the batch enrichment and announcement
// selection over every stored event, either once (--once) or on the
// configured cron schedule.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/database"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/edgar"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/logger"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/repository"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/services"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/pkg/config"
)

func main() {
	once := flag.Bool("once", false, "run one batch and exit")
	force := flag.Bool("force", false, "re-collect events that already have filings")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		// No .env file is fine in deployed environments.
	}

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", err)
	}

	repos := repository.NewRepositories(db.DB)
	client := edgar.NewClient(cfg)
	defer client.Close()

	enrich := services.NewEnrichmentService(repos, client, cfg, log)
	announce := services.NewAnnouncementService(repos, log)
	pipeline := services.NewPipeline(enrich, announce, repos, log)

	if *once {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		stats, err := pipeline.RunOnce(ctx, *force)
		if err != nil {
			log.Fatal("Pipeline run failed", err)
		}
		log.Info("Pipeline run complete",
			"events", stats.EventsTotal, "succeeded", stats.Succeeded,
			"announcements_set", stats.AnnouncementsSet)
		return
	}

	if err := pipeline.Start(cfg.PipelineSchedule); err != nil {
		log.Fatal("Failed to schedule pipeline", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Stopping pipeline scheduler")
	pipeline.Stop()
}
