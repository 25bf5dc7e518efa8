package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"better-life/config"
	"better-life/internal/advice"
	"better-life/internal/auth"
	"better-life/internal/payment"
	"better-life/internal/server"
	"better-life/internal/store"
	"better-life/internal/tracker"
	"better-life/pkg/logger"
)

func main() {
	l := logger.New()
	l.Info("Starting Better Life service...")

	cfg, err := config.Load()
	if err != nil {
		l.Fatal("Failed to load config", "error", err)
	}

	st, err := openStore(cfg, l)
	if err != nil {
		l.Fatal("Failed to open store", "error", err)
	}
	defer st.Close()

	provider, webhook := buildProvider(cfg, l)
	orchestrator := payment.NewOrchestrator(provider, st, cfg.Server.PublicOrigin, l)

	adviceSvc := advice.NewService(buildGenerator(cfg, l), l)
	authSvc := auth.NewService(st, l)
	trackerSvc := tracker.NewService(st)

	handlers := server.NewHandlers(authSvc, orchestrator, adviceSvc, trackerSvc, st, webhook, l)
	httpServer := server.New(cfg.Server.Port, handlers.Router(), l)

	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	// Wait for termination signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		l.Error("Error during HTTP server shutdown", "error", err)
	}

	l.Info("Service stopped")
}

// openStore connects the configured storage backend, retrying Postgres a few
// times since the database may still be coming up.
func openStore(cfg *config.Config, l *logger.Logger) (store.Store, error) {
	if cfg.Store.Backend != "postgres" {
		l.Info("Using in-memory store (demo mode)")
		return store.NewMemory(), nil
	}

	pgCfg := store.PostgresConfig{
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		DBName:       cfg.DB.DBName,
		SSLMode:      cfg.DB.SSLMode,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		ConnLifetime: cfg.DB.ConnLifetime,
	}

	var db *store.Postgres
	var err error
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		db, err = store.NewPostgres(pgCfg)
		if err == nil {
			return db, nil
		}
		l.Error("Failed to connect to database, retrying...", "error", err)
		time.Sleep(time.Duration(i+1) * time.Second)
	}
	return nil, err
}

func buildProvider(cfg *config.Config, l *logger.Logger) (payment.Provider, server.WebhookVerifier) {
	if cfg.Payment.Provider != "stripe" {
		l.Info("Using payment simulator (demo mode)")
		return payment.NewSimulator(), nil
	}

	if cfg.Stripe.SecretKey == "" {
		l.Fatal("Stripe secret key is not configured")
	}
	stripeProvider := payment.NewStripeProvider(payment.StripeConfig{
		SecretKey:  cfg.Stripe.SecretKey,
		PublicKey:  cfg.Stripe.PublicKey,
		WebhookKey: cfg.Stripe.WebhookKey,
		PriceIDs:   cfg.Stripe.PriceIDs,
	})
	return stripeProvider, stripeProvider
}

func buildGenerator(cfg *config.Config, l *logger.Logger) advice.Generator {
	switch cfg.Advice.Generator {
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			l.Warn("OpenAI API key is not configured; advice will always use the fallback bank")
			return nil
		}
		return advice.NewOpenAIClient(cfg.OpenAI.APIKey).WithModel(cfg.OpenAI.Model)
	default:
		if cfg.HuggingFace.APIKey == "" {
			l.Warn("Hugging Face API key is not configured; advice will always use the fallback bank")
			return nil
		}
		return advice.NewHuggingFaceClient(cfg.HuggingFace.APIKey)
	}
}
