package config

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables holding the two secrets.
const (
	EnvWebhookURL  = "STATUSWATCH_WEBHOOK_URL"
	EnvDeeplAPIKey = "STATUSWATCH_DEEPL_API_KEY"
)

// Loader reads a YAML config file and watches it for changes.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  *Config
	onChange []func(*Config)
	watcher  *fsnotify.Watcher
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	// Best effort: a missing .env file is fine, the variables may already
	// be exported.
	_ = godotenv.Load()

	l := &Loader{path: path}
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

// Config returns the current (latest) configuration.
func (l *Loader) Config() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the config reloads.
func (l *Loader) OnChange(fn func(*Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that hot-reloads the config on file
// changes. A rewrite that fails to parse or validate is dropped: the previous
// config stays current and no callback fires. Call the returned stop function
// to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", l.path, err)
	}
	l.watcher = w

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					cfg, err := l.load()
					if err != nil {
						slog.Warn("config reload failed, keeping previous config", "err", err)
						continue
					}
					// A config that fails validation never goes live:
					// callers read Config() directly every cycle.
					if err := Validate(cfg); err != nil {
						slog.Warn("config reload rejected, keeping previous config", "err", err)
						continue
					}
					l.mu.Lock()
					l.current = cfg
					callbacks := make([]func(*Config), len(l.onChange))
					copy(callbacks, l.onChange)
					l.mu.Unlock()
					for _, fn := range callbacks {
						fn(cfg)
					}
				}
			case <-w.Errors:
				// Ignore watcher errors.
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

func (l *Loader) load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", l.path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", l.path, err)
	}

	// Secrets come from the environment only.
	cfg.Webhook.URL = os.Getenv(EnvWebhookURL)
	cfg.Translate.APIKey = os.Getenv(EnvDeeplAPIKey)

	// Apply defaults.
	if cfg.Poll.Interval == 0 {
		cfg.Poll.Interval = 30 * time.Second
	}
	if cfg.Status.Timeout == 0 {
		cfg.Status.Timeout = 15 * time.Second
	}
	if cfg.Translate.TargetLang == "" {
		cfg.Translate.TargetLang = "FR"
	}
	if cfg.Translate.Timeout == 0 {
		cfg.Translate.Timeout = 10 * time.Second
	}
	if cfg.Webhook.Timeout == 0 {
		cfg.Webhook.Timeout = 10 * time.Second
	}
	if cfg.Ops.Addr == "" {
		cfg.Ops.Addr = ":9108"
	}
	return &cfg, nil
}
