package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codewithwu/ContractAI/internal/analyze"
	"github.com/codewithwu/ContractAI/internal/api"
	"github.com/codewithwu/ContractAI/internal/config"
	"github.com/codewithwu/ContractAI/internal/enrich"
	"github.com/codewithwu/ContractAI/internal/reportstore"
	"github.com/codewithwu/ContractAI/internal/risk"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	rules := risk.DefaultRules()
	if cfg.RulesPath != "" {
		var err error
		rules, err = risk.LoadRules(cfg.RulesPath)
		if err != nil {
			log.Error("invalid risk rules", "path", cfg.RulesPath, "error", err)
			os.Exit(1)
		}
		log.Info("loaded risk rules", "path", cfg.RulesPath, "categories", len(rules.Rules()))
	}

	policy, err := analyze.ParsePolicy(cfg.EnrichPolicy)
	if err != nil {
		log.Error("invalid enrichment policy", "error", err)
		os.Exit(1)
	}

	// Initialize clients. The enricher stays a nil interface when the
	// policy disables LLM calls so the analyzer skips enrichment entirely.
	var enrichClient *enrich.Client
	var enricher analyze.Enricher
	if policy != analyze.PolicyNever {
		enrichClient = enrich.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		enricher = enrichClient
	}

	store, err := reportstore.Open(cfg.ReportsDir, cfg.HistoryDBPath)
	if err != nil {
		log.Error("open report store", "error", err)
		os.Exit(1)
	}

	analyzer := analyze.New(rules, enricher, policy, cfg.EnrichTimeout, log)

	// Initialize HTTP server.
	srv := api.NewServer(analyzer, enrichClient, store, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // synchronous analysis may span several LLM calls
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if enrichClient != nil {
			enrichClient.Close()
		}
		store.Close()
	}()

	log.Info("starting contractai", "port", cfg.Port, "enrich_policy", string(policy))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
