package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_intel/internal/adapters/dataset"
	"review_intel/internal/adapters/observability"
	redisad "review_intel/internal/adapters/redis"
	"review_intel/internal/app"
	"review_intel/internal/shared"
	mysqlrepo "review_intel/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("source", cfg.Source).
		Int("workers", cfg.Workers).
		Int("limit", cfg.ReviewLimit).
		Strs("categories", cfg.Categories).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// local CSV path: one shot, no fan-out
	if cfg.DatasetCSV != "" {
		ing := app.NewIngestionService(nil, repo, cache, cfg.Categories)
		rows, err := dataset.ReadCSV(cfg.DatasetCSV)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DatasetCSV).Msg("read csv failed")
		}
		if err := ing.IngestRows(ctx, cfg.Source, "", rows); err != nil {
			log.Fatal().Err(err).Msg("csv ingest failed")
		}
		log.Info().Int("rows", len(rows)).Msg("csv ingestion completed")
		return
	}

	client, err := dataset.New(cfg.DatasetBase, cfg.DatasetKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize dataset client")
	}
	ing := app.NewIngestionService(client, repo, cache, cfg.Categories)

	// prefer the category list the dataset service advertises; fall back to
	// the configured one when the endpoint is missing
	categories := cfg.Categories
	if remote, err := client.GetCategories(ctx); err == nil && len(remote) > 0 {
		categories = remote
	} else if err != nil {
		log.Warn().Err(err).Msg("categories endpoint unavailable, using configured list")
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, category := range categories {
		category := category

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(cat string) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := ing.IngestCategory(ctx, cfg.Source, cat, cfg.ReviewLimit); err != nil {
				log.Warn().Str("category", cat).Err(err).Msg("ingest failed")
				return
			}
			log.Info().Str("category", cat).Msg("ingest ok")
		}(category)
	}

	wg.Wait()
	log.Info().Msg("ingestion completed")
}
