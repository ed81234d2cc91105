// Package tracker decides which polled events are worth a notification and
// maintains the baseline of already-seen events between polls.
package tracker

import "github.com/gyaneshwarpardhi/statuswatch/internal/status"

// State maps event ID to the last representation seen upstream. It is owned
// by a single caller and replaced wholesale on every reconcile; no entry is
// ever mutated in place.
type State map[string]status.Event

// Reconcile compares a fresh snapshot against the previous state and returns
// the events that need a notification, in snapshot order, along with the next
// state.
//
// An event notifies when it is new, or when its stored record is still open:
// re-appearing while unresolved is notify-worthy, which covers both content
// edits and the open→resolved transition. Once the stored record carries a
// resolve time the event is terminal and stays silent. The next state is
// rebuilt from the snapshot alone, so anything the upstream no longer lists
// is evicted immediately.
func Reconcile(prev State, snapshot []status.Event) (toNotify []status.Event, next State) {
	next = make(State, len(snapshot))
	for _, e := range snapshot {
		saved, ok := prev[e.ID]
		if !ok || !saved.Resolved() {
			toNotify = append(toNotify, e)
		}
		next[e.ID] = e
	}
	return toNotify, next
}
