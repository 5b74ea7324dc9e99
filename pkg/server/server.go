// Package server provides the public entry point for initializing the
// Roastboard backend.
//
// Usage:
//
//	srv, err := server.New(ctx)
//	http.ListenAndServe(":8080", srv.Handler)
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/roastboard/roastboard/internal/agentapi"
	"github.com/roastboard/roastboard/internal/analyzer"
	"github.com/roastboard/roastboard/internal/api"
	"github.com/roastboard/roastboard/internal/api/handlers"
	"github.com/roastboard/roastboard/internal/config"
	"github.com/roastboard/roastboard/internal/nickname"
	"github.com/roastboard/roastboard/internal/store"
	"github.com/roastboard/roastboard/internal/telemetry"

	"github.com/rs/zerolog/log"
)

// Server holds the initialized Roastboard backend.
type Server struct {
	// Handler is the HTTP handler with all routes and middleware.
	Handler http.Handler

	// Store is the leaderboard store (PostgreSQL or in-memory).
	Store store.Store

	// Config is the loaded configuration.
	Config *config.Config

	// Port is the port the server should listen on.
	Port int

	// ShutdownFunc should be called on graceful shutdown to flush telemetry.
	ShutdownFunc func(context.Context) error
}

// New initializes all backend components and returns a ready Server.
func New(ctx context.Context) (*Server, error) {
	return NewWithConfig(ctx, config.Load())
}

// NewWithConfig initializes the backend with an explicit configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*Server, error) {
	shutdown, err := telemetry.Init(cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	var dataStore store.Store
	if cfg.Database.URL != "" {
		dataStore, err = store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	} else {
		dataStore = store.NewMemoryStore()
		log.Info().Msg("no DATABASE_URL set, using in-memory store")
	}

	agentClient := agentapi.NewClient(cfg.Agent.BaseURL, cfg.Agent.APIKey, cfg.Agent.AuthScheme, cfg.Agent.WaitTimeout)
	nicknames := nickname.NewProvider(cfg.Nickname.BaseURL, cfg.Nickname.APIKey, cfg.Nickname.Model, cfg.Nickname.Temperature)
	pipeline := analyzer.New(agentClient, cfg.Agent.AgentID, dataStore)

	h := handlers.New(pipeline, dataStore, nicknames)
	router := api.NewRouter(cfg, h)

	if cfg.Agent.APIKey == "" {
		log.Warn().Msg("agent API key not configured, analyses will serve degraded results")
	}

	return &Server{
		Handler:      router,
		Store:        dataStore,
		Config:       cfg,
		Port:         cfg.Port,
		ShutdownFunc: shutdown,
	}, nil
}
