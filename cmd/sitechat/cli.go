package main

import "time"

// CLI defines the command-line and environment configuration for Kong.
// Every flag can also be set through its environment variable.
type CLI struct {
	Addr          string `env:"SITECHAT_ADDR" default:":8000" help:"HTTP listen address."`
	DB            string `env:"SITECHAT_DB" default:"sitechat.db" help:"SQLite database path."`
	BaseURL       string `env:"SITECHAT_BASE_URL" default:"http://localhost:8000" help:"Externally visible base URL embedded in widget snippets."`
	SessionSecret string `env:"SITECHAT_SESSION_SECRET" help:"Secret for signing session cookies. Generated at startup if unset."`
	Script        string `env:"SITECHAT_SCRIPT" help:"Override the embedded widget script with a file on disk."`

	GeminiAPIKey string `env:"GEMINI_API_KEY" help:"Google Gemini API key."`
	Model        string `env:"SITECHAT_MODEL" default:"gemini-2.5-flash" help:"Gemini model for chat completions."`

	Fetcher   string `env:"SITECHAT_FETCHER" enum:"http,browser" default:"http" help:"Page fetcher: http (plain GET) or browser (headless Chrome for JS-rendered sites)."`
	Extractor string `env:"SITECHAT_EXTRACTOR" enum:"article,readability,paragraphs" default:"article" help:"Content extraction strategy."`

	FetchTimeout    time.Duration `env:"SITECHAT_FETCH_TIMEOUT" default:"30s" help:"Per-request timeout for the http fetcher."`
	UpstreamTimeout time.Duration `env:"SITECHAT_UPSTREAM_TIMEOUT" default:"30s" help:"Timeout for completion-service calls."`
	OutboundRPS     float64       `env:"SITECHAT_OUTBOUND_RPS" default:"1" help:"Outbound requests per second per target domain."`

	DailyLimit  int `env:"SITECHAT_DAILY_LIMIT" default:"200" help:"Per-client requests per day across all endpoints."`
	HourlyLimit int `env:"SITECHAT_HOURLY_LIMIT" default:"100" help:"Per-client requests per hour across all endpoints."`
	BurstLimit  int `env:"SITECHAT_BURST_LIMIT" default:"5" help:"Per-client requests per minute on ingestion and chat."`
}
