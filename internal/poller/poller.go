// Package poller drives the fetch → reconcile → notify cycle on a fixed
// interval. Everything inside a tick is strictly sequential; tracked state is
// owned by the poller and only touched between network calls.
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/statuswatch/internal/config"
	"github.com/gyaneshwarpardhi/statuswatch/internal/metrics"
	"github.com/gyaneshwarpardhi/statuswatch/internal/notify"
	"github.com/gyaneshwarpardhi/statuswatch/internal/status"
	"github.com/gyaneshwarpardhi/statuswatch/internal/tracker"
)

// Source fetches the latest event snapshot.
type Source interface {
	Fetch(ctx context.Context) ([]status.Event, error)
}

// Translator localizes event text, falling back to the input on failure.
type Translator interface {
	Translate(ctx context.Context, text string) string
}

// Sender delivers one formatted message.
type Sender interface {
	Send(ctx context.Context, msg notify.Message) error
}

// Poller ties the source, translator, and sender together around the tracked
// state. Config is read through conf on every cycle so hot reloads of the
// interval and the translation toggle apply without a restart.
type Poller struct {
	source     Source
	translator Translator
	sender     Sender
	conf       func() *config.Config
	state      tracker.State
}

// New builds a Poller with empty tracked state. A nil translator disables
// translation regardless of config.
func New(source Source, translator Translator, sender Sender, conf func() *config.Config) *Poller {
	return &Poller{
		source:     source,
		translator: translator,
		sender:     sender,
		conf:       conf,
		state:      tracker.State{},
	}
}

// Run ticks immediately, then at the configured interval until ctx is
// cancelled. A slow tick delays the next one; there is no catch-up.
func (p *Poller) Run(ctx context.Context) {
	for {
		p.Tick(ctx)
		select {
		case <-ctx.Done():
			slog.Info("poller stopping", "reason", ctx.Err())
			return
		case <-time.After(p.conf().Poll.Interval):
		}
	}
}

// Tick runs one full poll cycle. A failed fetch skips the cycle entirely and
// keeps the previous state; only a successful fetch can evict events.
func (p *Poller) Tick(ctx context.Context) {
	log := slog.With("tick_id", uuid.New().String())
	start := time.Now()
	metrics.PollsTotal.Inc()

	snapshot, err := p.source.Fetch(ctx)
	if err != nil {
		metrics.PollFailures.Inc()
		log.Error("status fetch failed, keeping previous state", "err", err)
		return
	}

	toNotify, next := tracker.Reconcile(p.state, snapshot)
	log.Info("snapshot reconciled", "events", len(snapshot), "to_notify", len(toNotify))

	cfg := p.conf()
	for _, e := range toNotify {
		content := e.Content
		if cfg.Translate.Enabled && p.translator != nil {
			content = p.translator.Translate(ctx, content)
		}
		if err := p.sender.Send(ctx, notify.FormatEvent(e, content)); err != nil {
			metrics.WebhookErrors.Inc()
			log.Error("webhook send failed", "event_id", e.ID, "err", err)
			continue
		}
		st := "open"
		if e.Resolved() {
			st = "resolved"
		}
		metrics.EventsNotified.WithLabelValues(st).Inc()
		log.Info("notification sent", "event_id", e.ID, "type", e.Type.Label(), "status", st)
	}

	// The baseline advances with the snapshot even when a send failed.
	p.state = next
	metrics.TrackedEvents.Set(float64(len(next)))
	metrics.PollDuration.Observe(float64(time.Since(start).Milliseconds()))
}
