// Package main is the symptomatch CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hyperjump/symptomatch/internal/catalog"
	"github.com/hyperjump/symptomatch/internal/cli"
	"github.com/hyperjump/symptomatch/internal/config"
	"github.com/hyperjump/symptomatch/internal/extract"
	"github.com/hyperjump/symptomatch/internal/language"
	"github.com/hyperjump/symptomatch/internal/lexicon"
	"github.com/hyperjump/symptomatch/internal/models"
	"github.com/hyperjump/symptomatch/internal/ranking"
	"github.com/hyperjump/symptomatch/internal/reports"
	"github.com/hyperjump/symptomatch/internal/search"
	"github.com/hyperjump/symptomatch/internal/server"
	"github.com/hyperjump/symptomatch/internal/storage"
	"github.com/hyperjump/symptomatch/internal/watcher"
	"github.com/hyperjump/symptomatch/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/symptomatch/config.yaml"

// loadConfig loads config from path. When path is the default, config.yaml in
// the current directory wins if it exists, so "symptomatch server" from the
// project dir uses the project's config. A missing default config falls back
// to built-in defaults. Returns the config and the path actually loaded ("" for
// built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	// API keys usually live in .env during development.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "match":
		runMatch()
	case "chat":
		runChat()
	case "report":
		runReport()
	case "detect":
		runDetect()
	case "version", "--version", "-v":
		fmt.Printf("symptomatch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg, *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", cfg.Debug || *debug),
	)

	components, err := initializeComponents(cfg, logger, true)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var inbox *watcher.Watcher
	if len(cfg.Intake.InboxDirs) > 0 {
		answerer := watcher.NewAnswerer(components.Processor, components.Storage, cfg.Intake.AnswerLanguage, logger)
		inbox = watcher.NewWatcher(
			cfg.Intake.InboxDirs,
			cfg.Intake.Extensions,
			answerer.Handle,
			watcher.WithLogger(logger),
			watcher.WithDebounce(cfg.Intake.Debounce),
		)
		if err := inbox.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start inbox watcher", zap.Error(err))
		}
		go inbox.SyncExistingFiles(watchCtx)
	}

	srv := server.NewServer(
		components.Engine,
		components.Processor,
		components.Storage,
		&cfg.Server,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	if inbox != nil {
		inbox.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildQuery joins all positional args with spaces so multi-word messages
// work the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after the
// positional arguments to the front so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runMatch() {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	explain := fs.Bool("explain", false, "print the scoring breakdown of the top candidates")
	top := fs.Int("top", 5, "number of candidates shown with --explain")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	query := buildQuery(fs.Args())
	if query == "" {
		fmt.Fprintln(os.Stderr, "Usage: symptomatch match [--explain] <query>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	engine, _, err := buildEngine(cfg, nil, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}

	resp := engine.MatchQuery(query)
	var candidates []ranking.Candidate
	if *explain {
		candidates = engine.Explain(query)
		if *top > 0 && len(candidates) > *top {
			candidates = candidates[:*top]
		}
	}
	if err := cli.WriteMatch(os.Stdout, resp, candidates, cli.ParseFormat(*outputFormat)); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runChat() {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = answer locally)")
	lang := fs.String("lang", "", "preferred answer language: en, hi, gu")
	conversation := fs.String("conversation", "", "conversation ID to continue (server mode)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	req := &models.ChatRequest{
		Message:           buildQuery(fs.Args()),
		PreferredLanguage: *lang,
		ConversationID:    *conversation,
	}
	if err := req.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Usage: symptomatch chat [--lang hi] <message>")
		os.Exit(1)
	}
	format := cli.ParseFormat(*outputFormat)

	if *serverURL != "" {
		var resp models.ChatResponse
		if err := postJSON(*serverURL+"/api/v1/chat", req, &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Chat failed: %v\n", err)
			os.Exit(1)
		}
		_ = cli.WriteChat(os.Stdout, &resp, format)
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, false)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	resp := components.Engine.Answer(context.Background(), req)
	_ = cli.WriteChat(os.Stdout, resp, format)
}

func runReport() {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = process locally)")
	lang := fs.String("lang", "", "preferred answer language: en, hi, gu")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: symptomatch report [--lang gu] <file>")
		os.Exit(1)
	}
	path := fs.Arg(0)
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}
	format := cli.ParseFormat(*outputFormat)

	if *serverURL != "" {
		resp, err := uploadViaHTTP(*serverURL, filepath.Base(path), content, *lang)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Report failed: %v\n", err)
			os.Exit(1)
		}
		_ = cli.WriteReport(os.Stdout, resp, format)
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, false)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	resp, err := components.Processor.Process(context.Background(), reports.Upload{
		Name:              filepath.Base(path),
		Content:           content,
		PreferredLanguage: *lang,
	})
	if errors.Is(err, reports.ErrUnsupportedFile) {
		fmt.Fprintln(os.Stderr, reports.UnsupportedFileMessage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report failed: %v\n", err)
		os.Exit(1)
	}
	_ = cli.WriteReport(os.Stdout, resp, format)
}

func runDetect() {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	text := buildQuery(fs.Args())
	if text == "" {
		fmt.Fprintln(os.Stderr, "Usage: symptomatch detect <text>")
		os.Exit(1)
	}
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	backend, closeBackend := buildBackend(cfg, logger)
	defer closeBackend()
	orch := language.NewOrchestrator(backend, language.WithLogger(logger), language.WithCallTimeout(cfg.Language.CallTimeout))
	fmt.Println(orch.Detect(context.Background(), text))
}

func postJSON(url string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func uploadViaHTTP(serverURL, name string, content []byte, lang string) (*models.ReportResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if lang != "" {
		_ = mw.WriteField("preferred_language", lang)
	}
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := http.Post(serverURL+"/api/v1/reports", mw.FormDataContentType(), &body)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	var out models.ReportResponse
	if err := decodeResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newLogger(cfg *config.Config, debug bool) (*zap.Logger, error) {
	if cfg.Debug || debug {
		return utils.NewLogger(true)
	}
	return utils.NewLoggerLevel(cfg.LogLevel)
}

// Components holds initialized services.
type Components struct {
	Storage   storage.Storage
	Engine    *search.Engine
	Processor *reports.Processor
	closers   []func()
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	for _, fn := range c.closers {
		fn()
	}
}

// buildBackend returns the language backend: the OpenAI-compatible client
// behind a translation cache. Redis is used when configured and reachable,
// otherwise an in-process LRU.
func buildBackend(cfg *config.Config, logger *zap.Logger) (language.Backend, func()) {
	lc := cfg.Language
	key := lc.APIKey()
	if key == "" {
		logger.Warn("no language API key; answers stay in English",
			zap.String("env", lc.APIKeyEnv))
	}
	backend := language.NewOpenAIBackend(language.OpenAIOptions{
		APIKey:          key,
		BaseURL:         lc.BaseURL,
		PrimaryModel:    lc.PrimaryModel,
		CorrectiveModel: lc.CorrectiveModel,
	})

	if lc.Redis.Addr != "" {
		rc := language.NewRedisCache(language.RedisOptions{
			Addr:     lc.Redis.Addr,
			Password: lc.Redis.Password,
			DB:       lc.Redis.DB,
			TTL:      lc.Redis.TTL,
			Prefix:   lc.Redis.Prefix,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rc.Ping(ctx)
		cancel()
		if err == nil {
			logger.Info("translation cache: redis", zap.String("addr", lc.Redis.Addr))
			return language.NewCachedBackend(backend, rc, logger), func() { _ = rc.Close() }
		}
		logger.Warn("redis unavailable, using in-process translation cache", zap.Error(err))
		_ = rc.Close()
	}
	return language.NewCachedBackend(backend, language.NewLRUCache(lc.CacheSize), logger), func() {}
}

// buildEngine loads the catalog and lexicon and returns the matching engine.
// A nil backend disables translation.
func buildEngine(cfg *config.Config, backend language.Backend, logger *zap.Logger) (*search.Engine, *catalog.Catalog, error) {
	var cat *catalog.Catalog
	var err error
	if cfg.Catalog.Path != "" {
		cat, err = catalog.Load(cfg.Catalog.Path)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if cat.Skipped() > 0 {
		logger.Warn("catalog entries without keyword skipped", zap.Int("skipped", cat.Skipped()))
	}

	lex := lexicon.New()
	if cfg.Catalog.LexiconPath != "" {
		lex, err = lexicon.LoadFile(cfg.Catalog.LexiconPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load lexicon: %w", err)
		}
	}

	orch := language.NewOrchestrator(backend,
		language.WithLogger(logger),
		language.WithCallTimeout(cfg.Language.CallTimeout),
	)
	scoring := cfg.Scoring
	engine := search.NewEngine(
		ranking.NewIndex(lex, cat.Entries()),
		ranking.NewRanker(&scoring, lex),
		orch,
		logger,
	)
	logger.Info("catalog loaded",
		zap.String("source", cat.Source()),
		zap.Int("entries", cat.Len()),
	)
	return engine, cat, nil
}

// initializeComponents wires the engine, report processor, and (when
// withStorage is set) the history store.
func initializeComponents(cfg *config.Config, logger *zap.Logger, withStorage bool) (*Components, error) {
	backend, closeBackend := buildBackend(cfg, logger)
	c := &Components{closers: []func(){closeBackend}}

	engine, _, err := buildEngine(cfg, backend, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Engine = engine

	if withStorage {
		store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		c.Storage = store
	}

	extractorOpts := []extract.Option{extract.WithLogger(logger)}
	if ocr, err := extract.NewTesseract(cfg.Intake.TesseractCmd); err == nil {
		extractorOpts = append(extractorOpts, extract.WithOCR(ocr))
	} else {
		logger.Warn("tesseract not found; image reports cannot be read", zap.Error(err))
	}
	c.Processor = reports.NewProcessor(extract.NewExtractor(extractorOpts...), engine, c.Storage, logger)
	return c, nil
}

func printUsage() {
	fmt.Println(`symptomatch - Multilingual medical FAQ matcher

Usage:
  symptomatch server [flags]          Start the HTTP server and inbox watcher
  symptomatch match [flags] <query>   Match a query against the FAQ catalog
  symptomatch chat [flags] <message>  Answer a message in the user's language
  symptomatch report [flags] <file>   Answer an uploaded report (PDF, image, DOCX, ...)
  symptomatch detect <text>           Detect the language of text
  symptomatch version                 Show version
  symptomatch help                    Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/symptomatch/config.yaml)
  --debug            Enable debug logging

Match Flags:
  --explain          Print the scoring breakdown of the top candidates
  --top int          Candidates shown with --explain (default: 5)
  --output string    Output format: text or json (default: text)

Chat / Report Flags:
  --lang string          Preferred answer language: en, hi, gu
  --server string        Server URL; empty answers locally
  --conversation string  Conversation to continue (chat, server mode)
  --output string        Output format: text or json (default: text)

Environment:
  GROQ_API_KEY / OPENAI_API_KEY   Translation backend key (also read from .env)
  TESSERACT_CMD                   Path to the tesseract binary

Examples:
  symptomatch server
  symptomatch match --explain "I have fever and high temperature"
  symptomatch chat --lang hi mujhe bukhar aur khansi hai
  symptomatch report --lang gu lab-report.pdf
  symptomatch chat --server http://localhost:8080 "sneezing and runny nose"`)
}
