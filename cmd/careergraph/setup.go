package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jmtorres/careergraph/internal/cache"
	"github.com/jmtorres/careergraph/internal/config"
	"github.com/jmtorres/careergraph/internal/db"
	"github.com/jmtorres/careergraph/internal/derive"
	"github.com/jmtorres/careergraph/internal/generator"
	"github.com/jmtorres/careergraph/internal/llm"
	"github.com/jmtorres/careergraph/internal/persist"
	"github.com/jmtorres/careergraph/internal/pipeline"
	"github.com/jmtorres/careergraph/internal/platform/logger"
	"github.com/jmtorres/careergraph/internal/synth"
)

// Default category seed lists for the generate commands, overridable with
// --categories.
var (
	defaultSkillCategories = []string{
		"Software Development",
		"Data & AI",
		"Cloud & Infrastructure",
		"Cybersecurity",
		"Product & Design",
		"Business & Management",
	}

	defaultRoleCategories = []string{
		"Software Development",
		"Data & AI",
		"Cloud & Infrastructure",
		"Product & Design",
		"Business & Management",
	}

	defaultIndustryCategories = []string{
		"Technology",
		"Healthcare",
		"Finance",
		"Manufacturing",
		"Education",
		"Energy",
	}
)

var (
	flagAPIKey   string
	flagDBURL    string
	flagCacheDir string
	flagSeed     int64
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	pf.StringVar(&flagDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	pf.StringVar(&flagCacheDir, "cache-dir", "", "Directory for generation cache files (defaults to CAREERGRAPH_CACHE_DIR env var or "+config.DefaultCacheDir+")")
	pf.Int64Var(&flagSeed, "seed", 0, "Seed for relationship and artifact sampling (0 seeds from the clock)")
}

// resolveConfig seeds a Config from the flag overrides and lets the config
// package fill the rest from the environment. Required fields are checked in
// newApp, per command.
func resolveConfig() *config.Config {
	cfg := &config.Config{
		APIKey:      flagAPIKey,
		DatabaseURL: flagDBURL,
		CacheDir:    flagCacheDir,
	}
	cfg.Resolve()
	return cfg
}

// app bundles the dependencies shared by every subcommand: configuration,
// logger, document store connection and cache directory.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	db    *db.DB
	cache *cache.Store
	rng   *rand.Rand
}

// newApp connects to the document store, bootstraps the schema, and opens the
// cache directory. needProvider marks commands that call Gemini; running one
// without a key is a startup error.
func newApp(ctx context.Context, needProvider bool) (*app, error) {
	cfg := resolveConfig()
	if needProvider && cfg.APIKey == "" {
		return nil, fmt.Errorf("%s environment variable or --api-key flag is required", config.EnvAPIKey)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%s environment variable or --db-url flag is required", config.EnvDatabaseURL)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	cacheStore, err := cache.NewStore(cfg.CacheDir)
	if err != nil {
		database.Close()
		return nil, err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &app{
		cfg:   cfg,
		log:   log,
		db:    database,
		cache: cacheStore,
		rng:   rand.New(rand.NewSource(seed)),
	}, nil
}

func (a *app) Close() {
	a.db.Close()
	a.log.Sync()
}

// runner builds a pipeline Runner over the app's store and cache. Commands
// that call Gemini get a live client plus a closer; for the rest the
// generator stage is left nil and the closer is a no-op.
func (a *app) runner(ctx context.Context, withProvider bool) (*pipeline.Runner, func(), error) {
	var gen pipeline.Generator
	closeClient := func() {}
	if withProvider {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), a.cfg.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		gen = generator.New(client, a.log)
		closeClient = func() { _ = client.Close() }
	}

	r := pipeline.NewRunner(
		a.db,
		a.cache,
		gen,
		persist.New(a.db, a.log),
		synth.New(a.db, a.rng, a.log),
		derive.New(a.db, a.rng, a.log),
		a.log,
	)
	return r, closeClient, nil
}
