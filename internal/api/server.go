// Package api provides the HTTP API server and handlers for the ReadQuest service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/readquest/readquest-server/internal/catalog"
	"github.com/readquest/readquest-server/internal/config"
	"github.com/readquest/readquest-server/internal/search"
	"github.com/readquest/readquest-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	catalog         *catalog.Catalog
	searchIndex     *search.SearchIndex
	recommendations *service.RecommendationService
	covers          *service.CoverService
	overrides       *service.OverrideService
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg *config.Config,
	cat *catalog.Catalog,
	searchIndex *search.SearchIndex,
	recommendations *service.RecommendationService,
	covers *service.CoverService,
	overrides *service.OverrideService,
	logger *slog.Logger,
) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	humaConfig := huma.DefaultConfig("ReadQuest API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		catalog:         cat,
		searchIndex:     searchIndex,
		recommendations: recommendations,
		covers:          covers,
		overrides:       overrides,
		router:          router,
		api:             api,
		logger:          logger,
	}

	s.registerHealthRoutes()
	s.registerRecommendationRoutes()
	s.registerCatalogRoutes()
	s.registerCoverRoutes()
	s.registerOverrideRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
