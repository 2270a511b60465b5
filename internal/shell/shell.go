// Package shell wires the CourseForge services together and runs the
// interactive chat loop.
package shell

import (
	"fmt"
	"os"

	coursectx "courseforge/internal/context"
	"courseforge/internal/logger"
	"courseforge/internal/services"
	"courseforge/internal/store"
	"courseforge/pkg/coursetypes"
)

// Services holds the wired service instances used by the chat loop.
type Services struct {
	Context       coursetypes.Context
	Store         store.KVStore
	Notifications *services.NotificationService
	Catalog       *services.AgentCatalogService
	Sessions      *services.SessionService
	Settings      *services.SettingsService
	Auth          *services.AuthService
	Orchestrator  *services.OrchestratorService
	Markdown      *services.MarkdownService
}

// InitializeServices creates the global context, opens the store, and
// registers and initializes every service. An empty storePath selects the
// ephemeral in-memory store.
func InitializeServices(testMode bool, storePath string) (*Services, error) {
	ctx := coursectx.New()
	ctx.SetTestMode(testMode)
	coursectx.SetGlobalContext(ctx)

	var kv store.KVStore
	if storePath == "" {
		kv = store.NewMemoryStore()
	} else {
		sqliteStore, err := store.NewSQLiteStore(storePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		kv = sqliteStore
	}

	notifications := services.NewNotificationService(ctx)
	catalog := services.NewAgentCatalogService()
	provider := services.NewGeminiProvider(os.Getenv("GEMINI_API_KEY"))
	sessions := services.NewSessionService(ctx, kv, notifications)
	settings := services.NewSettingsService(ctx, kv)
	auth := services.NewAuthService(ctx, kv, notifications)
	orchestrator := services.NewOrchestratorService(ctx, sessions, catalog, provider, notifications)
	markdown := services.NewMarkdownService()

	// Session restore may queue notifications, so notifications come up first
	if err := notifications.Initialize(); err != nil {
		return nil, err
	}

	registry := services.NewRegistry()
	services.SetGlobalRegistry(registry)
	for _, svc := range []coursetypes.Service{
		notifications, catalog, provider, sessions, settings, auth, orchestrator, markdown,
	} {
		if err := registry.RegisterService(svc); err != nil {
			return nil, err
		}
	}
	if err := registry.InitializeAll(); err != nil {
		return nil, err
	}

	if !provider.IsConfigured() {
		logger.Warn("GEMINI_API_KEY is not set; generation requests will fail")
	}

	return &Services{
		Context:       ctx,
		Store:         kv,
		Notifications: notifications,
		Catalog:       catalog,
		Sessions:      sessions,
		Settings:      settings,
		Auth:          auth,
		Orchestrator:  orchestrator,
		Markdown:      markdown,
	}, nil
}

// Close releases the store.
func (s *Services) Close() error {
	return s.Store.Close()
}
