package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadqualify_backend/internal/events"
	"leadqualify_backend/internal/extractor"
	apphttp "leadqualify_backend/internal/http"
	"leadqualify_backend/internal/http/router"
	"leadqualify_backend/internal/leads"
	"leadqualify_backend/internal/leads/convo"
	"leadqualify_backend/internal/notification"
	"leadqualify_backend/internal/webhook"
	"leadqualify_backend/internal/whatsapp"
	"leadqualify_backend/migrations"
	"leadqualify_backend/platform/ai/gemini"
	"leadqualify_backend/platform/config"
	"leadqualify_backend/platform/db"
	"leadqualify_backend/platform/logger"
	"leadqualify_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "strategy", cfg.ConversationStrategy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Outbound WhatsApp gateway. Nil when unconfigured; replies are then
	// logged and dropped, which keeps local development dependency-free.
	messenger := whatsapp.NewClient(cfg, log)
	if messenger == nil {
		log.Warn("WHATSAPP_URL not configured; outbound messages disabled")
	}

	strategy, err := buildStrategy(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize conversation strategy", "error", err)
		panic("failed to initialize conversation strategy: " + err.Error())
	}

	// ========================================================================
	// Domain Modules
	// ========================================================================

	leadsModule := leads.NewModule(pool, messenger, val, log)
	webhookModule := webhook.NewModule(pool, leadsModule.Repository(), strategy, messenger, eventBus, val, log)
	notification.New(cfg, messenger, eventBus, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:    cfg,
		Logger:    log,
		Health:    db.NewPoolAdapter(pool),
		EventBus:  eventBus,
		AdminAuth: webhookModule.AdminAuth(),
		Modules: []apphttp.Module{
			webhookModule,
			leadsModule,
		},
	}

	engine := router.New(app)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		timeout := cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}

// buildStrategy assembles the conversation strategy selected by
// CONVERSATION_STRATEGY. The scripted machine is always constructed; the
// extraction strategy wraps it for the post-interview branches.
func buildStrategy(ctx context.Context, cfg *config.Config, log *logger.Logger) (convo.Strategy, error) {
	script := convo.DefaultScript()
	if cfg.ScriptPath != "" {
		loaded, err := convo.LoadScript(cfg.ScriptPath)
		if err != nil {
			return nil, fmt.Errorf("load script %s: %w", cfg.ScriptPath, err)
		}
		script = loaded
		log.Info("interview script loaded", "path", cfg.ScriptPath)
	}

	machine := convo.NewMachine(script, convo.NewLexiconClassifier(), cfg.SchedulingLink)
	if cfg.ConversationStrategy == config.StrategyScript {
		return machine, nil
	}

	completer, err := gemini.NewClient(ctx, gemini.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})
	if err != nil {
		return nil, err
	}

	return extractor.New(completer, script, machine, cfg.SchedulingLink, log), nil
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
