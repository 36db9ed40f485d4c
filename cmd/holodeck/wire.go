package main

import (
	"io"

	"github.com/jwulff/holodeck/internal/config"
	"github.com/jwulff/holodeck/internal/db"
	"github.com/jwulff/holodeck/internal/narration"
	"github.com/rs/zerolog"
)

// newProvider builds the speech provider named in the config.
func newProvider(cfg config.NarrationConfig, logger zerolog.Logger) narration.Provider {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return narration.NewOpenAIProvider(narration.OpenAIConfig{
			APIKey:   cfg.APIKey,
			Endpoint: cfg.Endpoint,
			Model:    cfg.Model,
			Voice:    cfg.Voice,
			Speed:    cfg.Speed,
			Timeout:  cfg.Timeout,
		}, logger)
	case config.ProviderDaemon:
		return narration.NewDaemonProvider(cfg.SocketPath, cfg.Voice, cfg.Speed, cfg.Timeout, logger)
	}
	return narration.SilentProvider{}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openCache opens the narration cache when enabled. The store is nil when
// caching is off or the cache cannot be opened; narration works without it.
func openCache(cfg config.NarrationConfig, logger zerolog.Logger) (narration.Store, io.Closer) {
	if !cfg.CacheEnabled || cfg.Provider == config.ProviderNone {
		return nil, nopCloser{}
	}
	cache, err := db.OpenCache(cfg.CachePath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.CachePath).Msg("Narration cache unavailable")
		return nil, nopCloser{}
	}
	return cache, cache
}

// newNarrator wires the configured provider and cache into a narration service.
func newNarrator(cfg config.NarrationConfig, logger zerolog.Logger) (*narration.Service, io.Closer) {
	store, closer := openCache(cfg, logger)
	return narration.NewService(newProvider(cfg, logger), store, cfg.Voice, cfg.Speed, logger), closer
}
