package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gyaneshwarpardhi/statuswatch/internal/config"
	"github.com/gyaneshwarpardhi/statuswatch/internal/notify"
	"github.com/gyaneshwarpardhi/statuswatch/internal/status"
)

// fakeSource returns whatever snapshot (or error) it is currently loaded with.
type fakeSource struct {
	snapshot []status.Event
	err      error
}

func (f *fakeSource) Fetch(context.Context) ([]status.Event, error) {
	return f.snapshot, f.err
}

type fakeSender struct {
	sent []notify.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg notify.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeTranslator struct {
	calls int
}

func (f *fakeTranslator) Translate(_ context.Context, text string) string {
	f.calls++
	return "[fr] " + text
}

func conf(translate bool, interval time.Duration) func() *config.Config {
	return func() *config.Config {
		return &config.Config{
			Poll:      config.PollConf{Interval: interval},
			Translate: config.TranslateConf{Enabled: translate},
		}
	}
}

func open(id, content string) status.Event {
	return status.Event{ID: id, Content: content, Type: status.TypeServerIssues, OpenedAt: time.Now().Add(-time.Hour)}
}

func resolved(id, content string) status.Event {
	e := open(id, content)
	now := time.Now()
	e.ResolvedAt = &now
	return e
}

func TestTickNotifiesNewEventsInSnapshotOrder(t *testing.T) {
	src := &fakeSource{snapshot: []status.Event{
		open("e3", "troisième"),
		open("e1", "première"),
		open("e2", "deuxième"),
	}}
	sender := &fakeSender{}
	p := New(src, nil, sender, conf(false, time.Second))

	p.Tick(context.Background())

	if len(sender.sent) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(sender.sent))
	}
	want := []string{"troisième", "première", "deuxième"}
	for i, msg := range sender.sent {
		if msg.Embeds[0].Description != want[i] {
			t.Errorf("message %d description = %q, want %q", i, msg.Embeds[0].Description, want[i])
		}
	}
}

func TestTickResolvedLifecycle(t *testing.T) {
	src := &fakeSource{snapshot: []status.Event{open("e1", "panne")}}
	sender := &fakeSender{}
	p := New(src, nil, sender, conf(false, time.Second))
	ctx := context.Background()

	// First observation while open.
	p.Tick(ctx)
	if len(sender.sent) != 1 {
		t.Fatalf("after open tick: %d messages, want 1", len(sender.sent))
	}

	// Transition to resolved.
	src.snapshot = []status.Event{resolved("e1", "panne")}
	p.Tick(ctx)
	if len(sender.sent) != 2 {
		t.Fatalf("after resolve tick: %d messages, want 2", len(sender.sent))
	}
	if sender.sent[1].Embeds[0].Fields[0].Name != "Résolu depuis" {
		t.Errorf("resolved message field = %+v", sender.sent[1].Embeds[0].Fields[0])
	}

	// Resolved replay stays silent.
	p.Tick(ctx)
	p.Tick(ctx)
	if len(sender.sent) != 2 {
		t.Fatalf("after replay ticks: %d messages, want 2", len(sender.sent))
	}
}

func TestTickFetchFailureKeepsState(t *testing.T) {
	src := &fakeSource{snapshot: []status.Event{resolved("e1", "fini")}}
	sender := &fakeSender{}
	p := New(src, nil, sender, conf(false, time.Second))
	ctx := context.Background()

	p.Tick(ctx)
	if len(sender.sent) != 1 {
		t.Fatalf("first tick: %d messages, want 1", len(sender.sent))
	}

	// Outage: the tick is skipped, tracked state survives.
	src.err = errors.New("connection refused")
	p.Tick(ctx)
	if len(sender.sent) != 1 {
		t.Fatalf("failed tick must not notify, got %d messages", len(sender.sent))
	}

	// Recovery with the same snapshot must not re-notify.
	src.err = nil
	p.Tick(ctx)
	if len(sender.sent) != 1 {
		t.Fatalf("recovery tick re-notified: %d messages", len(sender.sent))
	}
}

func TestTickEmptySnapshotEvicts(t *testing.T) {
	src := &fakeSource{snapshot: []status.Event{resolved("e1", "fini")}}
	sender := &fakeSender{}
	p := New(src, nil, sender, conf(false, time.Second))
	ctx := context.Background()

	p.Tick(ctx)

	// Upstream legitimately drops the event, then it reappears: it is new
	// again and notifies again.
	src.snapshot = nil
	p.Tick(ctx)
	src.snapshot = []status.Event{resolved("e1", "fini")}
	p.Tick(ctx)

	if len(sender.sent) != 2 {
		t.Fatalf("expected re-notification after eviction, got %d messages", len(sender.sent))
	}
}

func TestTickSendFailureStillAdvancesState(t *testing.T) {
	src := &fakeSource{snapshot: []status.Event{resolved("e1", "fini")}}
	sender := &fakeSender{err: errors.New("webhook 500")}
	p := New(src, nil, sender, conf(false, time.Second))
	ctx := context.Background()

	p.Tick(ctx)
	if len(sender.sent) != 0 {
		t.Fatalf("send should have failed, got %d messages", len(sender.sent))
	}

	// The failed send is not retried: the event is already terminal in state.
	sender.err = nil
	p.Tick(ctx)
	if len(sender.sent) != 0 {
		t.Fatalf("terminal event re-notified after send failure: %d messages", len(sender.sent))
	}
}

func TestTickTranslation(t *testing.T) {
	src := &fakeSource{snapshot: []status.Event{open("e1", "servers down")}}
	sender := &fakeSender{}
	tr := &fakeTranslator{}
	p := New(src, tr, sender, conf(true, time.Second))

	p.Tick(context.Background())

	if tr.calls != 1 {
		t.Fatalf("translator calls = %d, want 1", tr.calls)
	}
	if got := sender.sent[0].Embeds[0].Description; got != "[fr] servers down" {
		t.Errorf("description = %q", got)
	}
}

func TestTickTranslationDisabled(t *testing.T) {
	src := &fakeSource{snapshot: []status.Event{open("e1", "servers down")}}
	sender := &fakeSender{}
	tr := &fakeTranslator{}
	p := New(src, tr, sender, conf(false, time.Second))

	p.Tick(context.Background())

	if tr.calls != 0 {
		t.Fatalf("translator called %d times while disabled", tr.calls)
	}
	if got := sender.sent[0].Embeds[0].Description; got != "servers down" {
		t.Errorf("description = %q, want the original content", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	src := &fakeSource{}
	p := New(src, nil, &fakeSender{}, conf(false, 5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
