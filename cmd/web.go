/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/flamego/flamego"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/labscan/db"
	"github.com/humaidq/labscan/pathology"
	"github.com/humaidq/labscan/routes"
	"github.com/humaidq/labscan/summary"
)

const shutdownTimeout = 10 * time.Second

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Value:   "8080",
			Sources: cli.EnvVars("PORT"),
			Usage:   "the web server port",
		},
		databaseURLFlag(),
		referenceTableFlag(),
	},
	Action: start,
}

// newServer wires the API routes around the shared extractor and the
// configured collaborators.
func newServer(extractor *pathology.Extractor, store routes.ReportStore, summarizer routes.Summarizer) *flamego.Flame {
	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(routes.RequestLogger)

	f.Map(extractor)
	f.MapTo(store, (*routes.ReportStore)(nil))
	f.MapTo(summarizer, (*routes.Summarizer)(nil))

	f.Group("/api", func() {
		f.Post("/extract", routes.ExtractReport)
		f.Get("/vocabulary", routes.Vocabulary)
		f.Get("/reports", routes.ListReports)
		f.Get("/reports/{id}", routes.GetReport)
		f.Delete("/reports/{id}", routes.DeleteReport)
		f.Get("/reports/{id}/chart", routes.ReportChart)
		f.Get("/reports/{id}/summary", routes.ReportSummary)
	})

	f.NotFound(func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNotFound)
	})

	return f
}

func start(ctx context.Context, cmd *cli.Command) error {
	table, err := loadReferenceTable(cmd.String("reference-table"))
	if err != nil {
		return err
	}

	var store routes.ReportStore = routes.UnavailableStore{}

	if databaseURL := cmd.String("database-url"); databaseURL != "" {
		if err := connectDatabase(ctx, databaseURL, table); err != nil {
			return err
		}
		defer db.Close()

		store = db.Reports{}
	} else {
		appLogger.Warn("No database configured, report storage is disabled")
	}

	var summarizer routes.Summarizer = routes.UnconfiguredSummarizer{}

	if cfg, err := summary.ConfigFromEnv(); err == nil {
		summarizer = summary.NewClient(cfg)
		appLogger.Info("AI summary enabled", "url", cfg.URL, "model", cfg.Model)
	} else {
		appLogger.Info("AI summary disabled", "reason", err)
	}

	port := cmd.String("port")

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", port),
		Handler:           newServer(pathology.NewExtractor(table), store, summarizer),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Summary streams stay open while the backend generates.
		WriteTimeout: 0,
		ErrorLog:     serverStdLogger,
	}

	serveErr := make(chan error, 1)

	go func() {
		appLogger.Info("Starting web server", "port", port)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down web server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}

	return nil
}
