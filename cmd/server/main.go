package main

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"trip_ledger/internal/auth"
	"trip_ledger/internal/config"
	"trip_ledger/internal/logger"
	"trip_ledger/internal/routes"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to stdout and a rotating file
	logger.Setup(cfg.LogFile, cfg.LogLevel)

	// Connect to the database
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database setup failed")
	}

	if err := auth.SeedAccounts(context.Background(), db, cfg.PINs()); err != nil {
		logrus.WithError(err).Fatal("seeding PIN accounts failed")
	}

	r := routes.SetupRouter(db, cfg)

	addr := "0.0.0.0:" + cfg.Port
	logrus.WithField("addr", addr).Info("🚀 Server running")
	if err := http.ListenAndServe(addr, r); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
