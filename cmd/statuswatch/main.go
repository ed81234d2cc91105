package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/statuswatch/internal/config"
	"github.com/gyaneshwarpardhi/statuswatch/internal/notify"
	"github.com/gyaneshwarpardhi/statuswatch/internal/poller"
	"github.com/gyaneshwarpardhi/statuswatch/internal/status"
	"github.com/gyaneshwarpardhi/statuswatch/internal/translate"
)

func main() {
	cfgPath := flag.String("config", "configs/statuswatch.yaml", "Path to YAML config")
	once := flag.Bool("once", false, "Run a single poll cycle then exit")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	// ── Collaborators ─────────────────────────────────────────────────────────
	src := status.NewClient(cfg.Status.URL, cfg.Status.Timeout)
	tr := translate.New(cfg.Translate.Endpoint, cfg.Translate.APIKey, cfg.Translate.TargetLang, cfg.Translate.Timeout)
	wh := notify.NewWebhook(cfg.Webhook.URL, cfg.Webhook.Timeout)
	if err := wh.Validate(); err != nil {
		slog.Error("webhook misconfigured", "err", err)
		os.Exit(1)
	}

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	// The loader only commits reloads that pass validation.
	loader.OnChange(func(newCfg *config.Config) {
		slog.Info("config reloaded", "interval", newCfg.Poll.Interval, "translate", newCfg.Translate.Enabled)
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := poller.New(src, tr, wh, loader.Config)

	if *once {
		p.Tick(ctx)
		return
	}

	// ── Ops HTTP server ───────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	srv := &http.Server{
		Addr:         cfg.Ops.Addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("ops server starting", "addr", cfg.Ops.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("ops server error", "err", err)
			os.Exit(1)
		}
	}()

	go p.Run(ctx)
	slog.Info("statuswatch started", "interval", cfg.Poll.Interval, "translate", cfg.Translate.Enabled)

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	cancel() // stop the poll loop
	slog.Info("goodbye")
}
