package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tcoelho/intelpost/internal/cache"
	"github.com/tcoelho/intelpost/internal/config"
	"github.com/tcoelho/intelpost/internal/content"
	"github.com/tcoelho/intelpost/internal/llm"
	"github.com/tcoelho/intelpost/internal/research"
	"github.com/tcoelho/intelpost/internal/search"
)

type pipeline struct {
	cfg          *config.Config
	store        *cache.Store
	orchestrator *research.Orchestrator
	generator    *content.Generator
}

// buildPipeline wires the full research and generation stack from config.
// A broken cache store degrades to uncached operation; a missing
// completion key is the one hard failure.
func buildPipeline() (*pipeline, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if flagNoCache {
		disabled := false
		cfg.Cache.Enabled = &disabled
	}

	log := zap.NewNop()
	if flagVerbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			log = dev
		}
	}

	completer, err := llm.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("completion service: %w", err)
	}

	var store *cache.Store
	if cfg.CacheEnabled() {
		store, err = cache.Open(cfg.CachePath(), cfg.TTL(), log)
		if err != nil {
			// Caching is an optimization; run uncached.
			fmt.Printf("warning: cache unavailable: %v\n", err)
			store = nil
		}
	}

	var news search.NewsSearcher
	if cfg.NewsKey() != "" {
		news = search.NewNewsAPIClient(cfg.NewsKey())
	} else {
		news = search.NewGoogleNewsClient()
	}
	web := search.NewSerpClient(cfg.SerpKey())

	p := &pipeline{
		cfg:          cfg,
		store:        store,
		orchestrator: research.New(completer, news, web, store, cfg, log),
		generator:    content.NewGenerator(completer, log),
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
		log.Sync()
	}
	return p, cleanup, nil
}

// openStore opens just the cache store for the cache management commands.
func openStore() (*cache.Store, *config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	store, err := cache.Open(cfg.CachePath(), cfg.TTL(), zap.NewNop())
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, cfg, nil
}
