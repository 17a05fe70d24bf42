// Package main is the Mitsuke CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/mitsuke/internal/analytics"
	"github.com/hyperjump/mitsuke/internal/config"
	"github.com/hyperjump/mitsuke/internal/corpus"
	"github.com/hyperjump/mitsuke/internal/models"
	"github.com/hyperjump/mitsuke/internal/search"
	"github.com/hyperjump/mitsuke/internal/server"
	"github.com/hyperjump/mitsuke/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/mitsuke/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists it
// is used, so that "mitsuke server" from the project dir uses the project's
// config. Returns the config and the path that was actually loaded.
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
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "suggest":
		runSuggest()
	case "analytics":
		runAnalytics()
	case "version", "--version", "-v":
		fmt.Printf("mitsuke version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// engineOptions maps the search section of the config onto engine options.
func engineOptions(cfg *config.Config, logger *zap.Logger) search.Options {
	opts := search.DefaultOptions()
	if cfg.Search.DebounceMS > 0 {
		opts.Debounce = time.Duration(cfg.Search.DebounceMS) * time.Millisecond
	}
	if cfg.Search.MaxResults > 0 {
		opts.MaxResults = cfg.Search.MaxResults
	}
	if cfg.Search.FuzzyThreshold > 0 {
		opts.FuzzyThreshold = cfg.Search.FuzzyThreshold
	}
	if cfg.Search.CacheSize > 0 {
		opts.CacheSize = cfg.Search.CacheSize
	}
	opts.EnableHighlighting = cfg.Search.HighlightingOrDefault()
	opts.EnableAnalytics = cfg.Analytics.EnabledOrDefault()
	if opts.EnableAnalytics && cfg.Analytics.DatabasePath != "" {
		store, err := analytics.NewSQLiteStore(cfg.Analytics.DatabasePath, logger)
		if err != nil {
			logger.Warn("analytics store unavailable, keeping analytics in memory",
				zap.String("path", cfg.Analytics.DatabasePath), zap.Error(err))
		} else {
			opts.AnalyticsStore = store
		}
	}
	return opts
}

// buildEngine loads the corpus and assembles a ready-to-serve engine.
func buildEngine(cfg *config.Config, logger *zap.Logger) (*search.Engine, error) {
	items, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	engine := search.New(items, engineOptions(cfg, logger), logger)
	logger.Info("corpus loaded",
		zap.String("path", cfg.Corpus.Path),
		zap.Int("items", engine.ItemCount()),
	)
	return engine, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (corpus reloads, query handling, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize engine", zap.Error(err))
	}
	defer engine.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Corpus.Watch {
		watchOpts := []corpus.WatcherOption{}
		if debugMode {
			watchOpts = append(watchOpts, corpus.WithLogger(logger))
		}
		watchSvc := corpus.NewWatcher(cfg.Corpus.Path, func(path string) {
			items, loadErr := corpus.Load(path)
			if loadErr != nil {
				logger.Warn("corpus reload failed", zap.String("path", path), zap.Error(loadErr))
				return
			}
			engine.UpdateCorpus(items)
			logger.Info("corpus reloaded", zap.String("path", path), zap.Int("items", engine.ItemCount()))
		}, watchOpts...)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start corpus watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(engine, &cfg.Server, logger)
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
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage and filter hints.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: mitsuke search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Filters combine with AND: an item must satisfy every filter to appear.
  • --type narrows to one content type (or "all").
  • --tag takes a comma-separated list; every tag must be present.
  • --range accepts day, week, month, or year.

Examples:
  mitsuke search glass skin serum
  mitsuke search "glass skin serum"              # same as above
  mitsuke search --type article korean skincare
  mitsuke search --tag vegan,cruelty-free moisturizer
  mitsuke search --range month --output json new arrivals
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument, so "mitsuke search \"query\"
// -limit 5" would otherwise leave -limit unparsed.
func searchArgsReorder(args []string) []string {
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

// filtersFromFlags assembles engine filters from the search flag values.
func filtersFromFlags(itemType, category, tags, author, dateRange string) models.Filters {
	f := models.Filters{
		Type:     itemType,
		Category: category,
		Author:   author,
		Range:    models.DateRange(dateRange),
	}
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			f.Tags = append(f.Tags, t)
		}
	}
	return f
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = search the corpus directly when server is not running)")
	itemType := fs.String("type", "", "filter by content type (catalog-entry, taxonomy-node, static-page, article, or all)")
	category := fs.String("category", "", "filter by category")
	tags := fs.String("tag", "", "comma-separated tags; every tag must be present")
	author := fs.String("author", "", "filter by author (substring match)")
	dateRange := fs.String("range", "", "filter by creation date: day, week, month, or year")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}
	if *outputFormat != "text" && *outputFormat != "json" {
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	filters := filtersFromFlags(*itemType, *category, *tags, *author, *dateRange)

	var results []models.SearchResult
	if *serverURL != "" {
		// Use the HTTP API when the server is running (shares its analytics
		// state and result cache).
		response, err := searchViaHTTP(*serverURL, queryStr, filters)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		results = response.Results
	} else {
		engine, err := directEngine(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		defer engine.Close()
		results = engine.SearchNow(queryStr, filters)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		writeSearchResults(os.Stdout, queryStr, results)
	}
}

// directEngine builds an engine straight from the configured corpus file,
// without a running server. Debounce is disabled for one-shot queries.
func directEngine(configPath string) (*search.Engine, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	items, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	opts := engineOptions(cfg, logger)
	opts.Debounce = 0
	return search.New(items, opts, logger), nil
}

// writeSearchResults prints one block per hit in ranked order.
func writeSearchResults(w io.Writer, query string, results []models.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintf(w, "No results for %q\n", query)
		return
	}
	fmt.Fprintf(w, "%d result(s) for %q:\n\n", len(results), query)
	for i, res := range results {
		fmt.Fprintf(w, "%d. %s  [%s, %s match, score %.1f]\n",
			i+1, res.Item.Title, res.Item.Type, res.MatchType, res.RelevanceScore)
		if desc := utils.Truncate(res.Item.Description, 120); desc != "" {
			fmt.Fprintf(w, "   %s\n", desc)
		}
		if len(res.Item.Tags) > 0 {
			fmt.Fprintf(w, "   tags: %s\n", strings.Join(res.Item.Tags, ", "))
		}
	}
}

// searchHTTPResponse mirrors the server's search payload.
type searchHTTPResponse struct {
	Query   string                `json:"query"`
	Total   int                   `json:"total"`
	Results []models.SearchResult `json:"results"`
}

func searchViaHTTP(serverURL, query string, filters models.Filters) (*searchHTTPResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	if filters.Type != "" {
		params.Set("type", filters.Type)
	}
	if filters.Category != "" {
		params.Set("category", filters.Category)
	}
	for _, t := range filters.Tags {
		params.Add("tag", t)
	}
	if filters.Author != "" {
		params.Set("author", filters.Author)
	}
	if filters.Range != "" {
		params.Set("range", string(filters.Range))
	}

	resp, err := http.Get(serverURL + "/api/v1/search?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response searchHTTPResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runSuggest() {
	suggestArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use the corpus directly)")
	limit := fs.Int("limit", 10, "maximum number of suggestions")
	_ = fs.Parse(suggestArgs)

	if fs.NArg() < 1 {
		fmt.Println("Usage: mitsuke suggest [flags] <prefix>")
		os.Exit(1)
	}
	prefix := buildSearchQuery(fs.Args())

	var suggestions []string
	if *serverURL != "" {
		params := url.Values{}
		params.Set("q", prefix)
		params.Set("limit", strconv.Itoa(*limit))
		resp, err := http.Get(*serverURL + "/api/v1/suggest?" + params.Encode())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Suggest failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			Suggestions []string `json:"suggestions"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
			os.Exit(1)
		}
		suggestions = out.Suggestions
	} else {
		engine, err := directEngine(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		defer engine.Close()
		suggestions = engine.Suggest(prefix, *limit)
	}

	for _, s := range suggestions {
		fmt.Println(s)
	}
}

func runAnalytics() {
	fs := flag.NewFlagSet("analytics", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = read persisted analytics directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var summary analytics.Summary
	if *serverURL != "" {
		resp, err := http.Get(*serverURL + "/api/v1/analytics")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Analytics failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
			fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		engine, err := directEngine(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		defer engine.Close()
		summary = engine.Analytics()
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("recent queries: %d\n", len(summary.RecentQueries))
		for _, q := range summary.RecentQueries {
			fmt.Printf("  %s  %q  (%d result(s))\n", q.Timestamp.Format(time.RFC3339), q.Query, q.ResultCount)
		}
		fmt.Printf("popular items: %d\n", len(summary.PopularItems))
		for _, p := range summary.PopularItems {
			fmt.Printf("  %s  %d click(s)\n", p.ItemID, p.Clicks)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mitsuke - In-process fuzzy search and relevance ranking

Usage:
  mitsuke server [flags]            Start the HTTP server
  mitsuke search [flags] <query>    Search the corpus
  mitsuke suggest [flags] <prefix>  Autocomplete suggestions for a prefix
  mitsuke analytics [flags]         Show query log and click analytics
  mitsuke version                   Show version
  mitsuke help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/mitsuke/config.yaml)
  --debug            Enable debug logging (corpus reloads, query handling, etc.)

Search Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to search the corpus directly.
  --type string      Filter by content type (catalog-entry, taxonomy-node, static-page, article)
  --category string  Filter by category
  --tag string       Comma-separated tags; every tag must be present
  --author string    Filter by author (substring match)
  --range string     Filter by creation date: day, week, month, or year
  --output string    Output format: text or json (default: text)

Suggest Flags:
  --server string    Server URL (default: http://localhost:8080)
  --limit int        Maximum number of suggestions (default: 10)

Analytics Flags:
  --server string    Server URL (default: http://localhost:8080)
  --output string    Output format: text or json (default: text)

Examples:
  mitsuke server
  mitsuke search "glass skin serum"
  mitsuke search --type article korean skincare
  mitsuke search --output json moisturizer   # structured JSON for other apps
  mitsuke suggest gla
  mitsuke analytics
  mitsuke analytics --output json`)
}
