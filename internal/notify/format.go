package notify

import (
	"fmt"
	"time"

	"github.com/gyaneshwarpardhi/statuswatch/internal/status"
)

const (
	username      = "Escape from Tarkov Status"
	thumbnailURL  = "https://www.escapefromtarkov.com/themes/eft/images/logo.png"
	statusPageURL = "https://status.escapefromtarkov.com"

	colorResolved = 65280    // green
	colorOpen     = 16711680 // red
)

// FormatEvent builds the webhook message for one event. content is the
// (possibly translated) event text; everything else comes from the event.
func FormatEvent(e status.Event, content string) Message {
	embed := Embed{
		Title:       e.Type.Label(),
		Description: content,
		URL:         statusPageURL,
		Thumbnail:   &Thumbnail{URL: thumbnailURL},
	}
	if e.Resolved() {
		embed.Color = colorResolved
		embed.Fields = []EmbedField{
			{Name: "Résolu depuis", Value: relativeTimestamp(*e.ResolvedAt), Inline: true},
			{Name: "Status", Value: "Résolu :white_check_mark:"},
		}
	} else {
		embed.Color = colorOpen
		embed.Fields = []EmbedField{
			{Name: "Depuis", Value: relativeTimestamp(e.OpenedAt), Inline: true},
			{Name: "Status", Value: "Hors ligne :negative_squared_cross_mark:"},
		}
	}
	return Message{Username: username, Embeds: []Embed{embed}}
}

// relativeTimestamp renders t in Discord's relative-time markup, which the
// client displays as "il y a X minutes" style text.
func relativeTimestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}
