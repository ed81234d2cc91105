package status

import (
	"encoding/json"
	"time"
)

// EventType is the numeric category code reported by the status API.
type EventType int

const (
	TypeUnknown            EventType = 0
	TypeUpdateInstallation EventType = 1
	TypeServerIssues       EventType = 2
)

// UnmarshalJSON maps any unrecognized code to TypeUnknown so that new
// upstream categories never break decoding.
func (t *EventType) UnmarshalJSON(b []byte) error {
	var code int
	if err := json.Unmarshal(b, &code); err != nil {
		return err
	}
	switch EventType(code) {
	case TypeUpdateInstallation, TypeServerIssues:
		*t = EventType(code)
	default:
		*t = TypeUnknown
	}
	return nil
}

// Label returns the display title used in notifications.
func (t EventType) Label() string {
	switch t {
	case TypeUpdateInstallation:
		return "Installation de mise à jour"
	case TypeServerIssues:
		return "Problèmes de serveur"
	default:
		return "Inconnu"
	}
}

// Event is one status incident as reported by the upstream API. The same ID
// reappears across polls for the whole lifecycle of an incident, with
// ResolvedAt populated once it closes.
type Event struct {
	ID         string     `json:"_id"`
	Content    string     `json:"content"`
	Type       EventType  `json:"type"`
	OpenedAt   time.Time  `json:"time"`
	ResolvedAt *time.Time `json:"solveTime"`
}

// Resolved reports whether the event has been closed upstream.
func (e Event) Resolved() bool { return e.ResolvedAt != nil }
