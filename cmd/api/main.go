package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"custodia/internal/attachment"
	"custodia/internal/config"
	"custodia/internal/database"
	"custodia/internal/expense"
	expenseStore "custodia/internal/expense/store"
	"custodia/internal/family"
	familyStore "custodia/internal/family/store"
	custodiaHttp "custodia/internal/http"
	expenseHandler "custodia/internal/http/expense"
	familyHandler "custodia/internal/http/family"
	importHandler "custodia/internal/http/importcsv"
	reportHandler "custodia/internal/http/report"
	"custodia/internal/importer"
	"custodia/internal/objstore"
	"custodia/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store, err := newObjectStore(cfg)
	if err != nil {
		slog.Error("failed to set up object storage", "error", err)
		os.Exit(1)
	}

	var (
		expenseService = expense.NewService(expenseStore.New(db))
		familyService  = family.NewService(familyStore.New(db))
		importService  = importer.NewService()
		loader         = attachment.NewLoader(store)
		generator      = report.NewGenerator(expenseService, familyService, loader, store, slog.Default())
	)

	var (
		expensesH = expenseHandler.NewHandler(expenseService, store)
		familyH   = familyHandler.NewHandler(familyService)
		importH   = importHandler.NewHandler(importService, expenseService)
		reportsH  = reportHandler.NewHandler(generator, store)
	)

	router := custodiaHttp.New(cfg.Auth.JWTSecret, expensesH, familyH, importH, reportsH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newObjectStore(cfg *config.Config) (objstore.Store, error) {
	switch cfg.Storage.Backend {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("loading aws config: %w", err)
		}

		return objstore.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Storage.Bucket), nil
	case "fs":
		return objstore.NewFSStore(cfg.Storage.LocalDir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
