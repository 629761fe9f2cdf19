// Package di provides dependency injection configuration for the ReadQuest server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/readquest/readquest-server/internal/catalog"
	"github.com/readquest/readquest-server/internal/config"
	"github.com/readquest/readquest-server/internal/curator"
	"github.com/readquest/readquest-server/internal/di/providers"
	"github.com/readquest/readquest-server/internal/logger"
	"github.com/readquest/readquest-server/internal/recommend"
	"github.com/readquest/readquest-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Data layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Metadata layer
	do.Provide(injector, providers.ProvideOpenLibraryClient)
	do.Provide(injector, providers.ProvideGoogleBooksClient)

	// Curation layer
	do.Provide(injector, providers.ProvideCurator)
	do.Provide(injector, providers.ProvideSelector)

	// Business services
	do.Provide(injector, providers.ProvideRecommendationService)
	do.Provide(injector, providers.ProvideCoverService)
	do.Provide(injector, providers.ProvideOverrideService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*catalog.Catalog](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*curator.Client](injector)
	_ = do.MustInvoke[*recommend.Selector](injector)
	_ = do.MustInvoke[*service.RecommendationService](injector)
	_ = do.MustInvoke[*service.CoverService](injector)
	_ = do.MustInvoke[*service.OverrideService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
