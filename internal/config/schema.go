package config

import "time"

// Config is the top-level YAML structure. Secrets never live in the file;
// they are overlaid from the environment on every load.
type Config struct {
	Poll      PollConf      `yaml:"poll"`
	Status    StatusConf    `yaml:"status"`
	Translate TranslateConf `yaml:"translate"`
	Webhook   WebhookConf   `yaml:"webhook"`
	Ops       OpsConf       `yaml:"ops"`
}

// PollConf holds poll loop scheduling.
type PollConf struct {
	Interval time.Duration `yaml:"interval"`
}

// StatusConf points at the upstream status API.
type StatusConf struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// TranslateConf controls the optional DeepL pass. APIKey comes from
// STATUSWATCH_DEEPL_API_KEY.
type TranslateConf struct {
	Enabled    bool          `yaml:"enabled"`
	Endpoint   string        `yaml:"endpoint"`
	TargetLang string        `yaml:"target_lang"`
	Timeout    time.Duration `yaml:"timeout"`
	APIKey     string        `yaml:"-"`
}

// WebhookConf holds delivery settings. URL comes from
// STATUSWATCH_WEBHOOK_URL.
type WebhookConf struct {
	Timeout time.Duration `yaml:"timeout"`
	URL     string        `yaml:"-"`
}

// OpsConf configures the metrics/health listener.
type OpsConf struct {
	Addr string `yaml:"addr"`
}
