package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/davemont/deskpilot/internal/analysis/sentiment"
	"github.com/davemont/deskpilot/internal/config"
	"github.com/davemont/deskpilot/internal/handler"
	"github.com/davemont/deskpilot/internal/model/customer"
	"github.com/davemont/deskpilot/internal/service/analytics"
	"github.com/davemont/deskpilot/internal/service/escalation"
	"github.com/davemont/deskpilot/internal/service/triage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()

	if err := godotenv.Load(); err != nil {
		logger.WithError(err).Debug("No .env file loaded, using system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		logger.WithField("level", cfg.Log.Level).Warn("Unknown log level, defaulting to info")
	} else {
		logger.SetLevel(level)
	}

	profiles := customer.Seed()
	if cfg.Pipeline.CustomerSeedFile != "" {
		loaded, err := customer.LoadFile(cfg.Pipeline.CustomerSeedFile)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load customer seed file")
		}
		profiles = loaded
		logger.WithField("customers", len(loaded)).Info("Loaded customer directory from file")
	}
	customerStore := customer.NewMemoryStore(profiles)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	analyticsSvc := analytics.New(registry)

	triageSvc := triage.NewService(
		customerStore,
		analyticsSvc,
		logger,
		triage.WithHistoryLimit(cfg.Pipeline.HistoryLimit),
		triage.WithSentimentAnalyzer(&sentiment.Analyzer{
			ShoutRatio:           cfg.Pipeline.ShoutRatio,
			MinLetters:           cfg.Pipeline.MinShoutLetters,
			ExclamationThreshold: cfg.Pipeline.ExclamationThreshold,
		}),
		triage.WithEscalationEvaluator(escalation.NewWithThreshold(cfg.Pipeline.RepeatTicketThreshold)),
	)

	router := handler.NewRouter(handler.Deps{
		Customers:        customerStore,
		Triage:           triageSvc,
		Analytics:        analyticsSvc,
		Registry:         registry,
		Logger:           logger,
		LiveFeedInterval: cfg.Pipeline.LiveFeedInterval,
	})

	startServer(ctx, logger, cfg.Server, router)
}

func startServer(ctx context.Context, logger *logrus.Logger, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.WithField("addr", serverCfg.Addr).Info("Deskpilot triage API listening")
	if err := runServer(ctx, srv); err != nil {
		logger.WithError(err).Fatal("Server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
