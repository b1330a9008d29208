package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/api"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/database"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/edgar"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/logger"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/repository"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/services"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/pkg/config"
)

func main() {
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

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	api.SetupRoutes(r, api.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Repos:    repos,
		Enrich:   enrich,
		Announce: announce,
		Pipeline: pipeline,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", err)
	}
}
