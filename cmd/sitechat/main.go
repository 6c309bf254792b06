// Command sitechat runs the sitechat server: a JSON API that turns web
// pages into scoped chat contexts and relays widget conversations to
// Google Gemini.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/chat"
	"github.com/fwojciec/sitechat/gemini"
	"github.com/fwojciec/sitechat/goquery"
	"github.com/fwojciec/sitechat/htmltomarkdown"
	sitechathttp "github.com/fwojciec/sitechat/http"
	"github.com/fwojciec/sitechat/ingest"
	"github.com/fwojciec/sitechat/mem"
	"github.com/fwojciec/sitechat/readability"
	"github.com/fwojciec/sitechat/rod"
	sitechatslog "github.com/fwojciec/sitechat/slog"
	"github.com/fwojciec/sitechat/sqlite"
	"github.com/fwojciec/sitechat/trafilatura"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the user and key services.
	DB *sqlite.DB

	// Server is the HTTP boundary.
	Server *sitechathttp.Server

	fetcher sitechat.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases resources held by the program.
func (m *Main) Close() error {
	if m.fetcher != nil {
		_ = m.fetcher.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run parses configuration, wires the services together and serves until
// ctx is canceled.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitechat"),
		kong.Description("Chat with any website: turn pages into scoped chat contexts."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if cli.GeminiAPIKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return fmt.Errorf("GEMINI_API_KEY not set")
	}

	logger := slog.New(slog.NewJSONHandler(stderr, nil))

	secret := []byte(cli.SessionSecret)
	if len(secret) == 0 {
		secret = randomSecret()
		logger.Warn("SITECHAT_SESSION_SECRET not set; sessions will not survive restarts")
	}

	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set SITECHAT_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}

	m.fetcher, err = newFetcher(cli)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for the browser fetcher")
		return err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cli.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	contexts := mem.NewContextStore()

	ingestor := &ingest.Ingestor{
		Fetcher:     m.fetcher,
		Extractor:   newExtractor(cli),
		Converter:   htmltomarkdown.NewConverter(),
		Contexts:    contexts,
		Registry:    sqlite.NewKeyRegistry(m.DB),
		RateLimiter: ingest.NewDomainLimiter(cli.OutboundRPS),
		Logf:        func(format string, args ...any) { logger.Info(fmt.Sprintf(format, args...)) },
	}

	dispatcher := chat.NewDispatcher(contexts, gemini.NewCompleter(client, cli.Model))
	dispatcher.Timeout = cli.UpstreamTimeout

	m.Server = sitechathttp.NewServer()
	m.Server.Addr = cli.Addr
	m.Server.BaseURL = cli.BaseURL
	m.Server.ScriptPath = cli.Script
	m.Server.SessionSecret = secret
	m.Server.Users = sqlite.NewUserService(m.DB)
	m.Server.Registry = sqlite.NewKeyRegistry(m.DB)
	m.Server.Contexts = contexts
	m.Server.Ingestor = sitechatslog.NewLoggingIngestor(ingestor, logger)
	m.Server.Responder = sitechatslog.NewLoggingResponder(dispatcher, logger)
	m.Server.Limiter = newLimiter(cli)
	m.Server.Logger = logger

	logger.Info("starting server", "addr", cli.Addr, "base_url", cli.BaseURL, "model", cli.Model)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(m.Server.Open)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return m.Server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newFetcher selects the page fetcher implementation.
func newFetcher(cli *CLI) (sitechat.Fetcher, error) {
	switch cli.Fetcher {
	case "browser":
		fetcher, err := rod.NewFetcher()
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return fetcher, nil
	default:
		return sitechathttp.NewFetcher(sitechathttp.WithTimeout(cli.FetchTimeout)), nil
	}
}

// newExtractor selects the content extraction strategy.
func newExtractor(cli *CLI) sitechat.Extractor {
	switch cli.Extractor {
	case "readability":
		return readability.NewExtractor()
	case "paragraphs":
		return goquery.NewExtractor()
	default:
		return trafilatura.NewExtractor()
	}
}

// newLimiter builds the inbound request limiter from the configured ceilings.
func newLimiter(cli *CLI) sitechat.Limiter {
	burst := sitechat.Quota{Name: "burst", Limit: cli.BurstLimit, Interval: time.Minute}
	return mem.NewLimiter(
		mem.WithGlobalQuotas([]sitechat.Quota{
			{Name: "daily", Limit: cli.DailyLimit, Interval: 24 * time.Hour},
			{Name: "hourly", Limit: cli.HourlyLimit, Interval: time.Hour},
		}),
		mem.WithOperationQuota(sitechat.OpIngest, burst),
		mem.WithOperationQuota(sitechat.OpChat, burst),
	)
}

// randomSecret generates an ephemeral session signing secret.
func randomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return []byte(hex.EncodeToString(b))
}
