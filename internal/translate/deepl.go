// Package translate localizes event text through the DeepL API. Translation
// is cosmetic: every failure path returns the input unchanged and nothing
// propagates to the caller.
package translate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gyaneshwarpardhi/statuswatch/internal/metrics"
)

// DefaultEndpoint is the DeepL free-tier translate endpoint.
const DefaultEndpoint = "https://api-free.deepl.com/v2/translate"

// Translator posts text to DeepL and falls back to the original on any error.
type Translator struct {
	endpoint   string
	apiKey     string
	targetLang string
	client     *http.Client
}

// New builds a Translator. An empty apiKey yields a disabled translator whose
// Translate is the identity function.
func New(endpoint, apiKey, targetLang string, timeout time.Duration) *Translator {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if targetLang == "" {
		targetLang = "FR"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Translator{
		endpoint:   endpoint,
		apiKey:     apiKey,
		targetLang: targetLang,
		client:     &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether the translator has credentials to work with.
func (t *Translator) Enabled() bool { return t != nil && t.apiKey != "" }

// Translate returns text translated to the target language, or text itself
// when the translator is disabled or the call fails in any way.
func (t *Translator) Translate(ctx context.Context, text string) string {
	if !t.Enabled() {
		return text
	}
	form := url.Values{
		"text":        {text},
		"target_lang": {t.targetLang},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return text
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		slog.Error("deepl request failed", "err", err)
		metrics.TranslateFallbacks.Inc()
		return text
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		slog.Error("deepl returned non-success status", "status", resp.StatusCode)
		metrics.TranslateFallbacks.Inc()
		return text
	}

	var out struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		slog.Error("decode deepl response", "err", err)
		metrics.TranslateFallbacks.Inc()
		return text
	}
	if len(out.Translations) == 0 {
		metrics.TranslateFallbacks.Inc()
		return text
	}
	return out.Translations[0].Text
}
