package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	components["catalog"] = s.checkCatalog()
	components["search"] = s.checkSearchIndex()

	for _, c := range components {
		if c.Status != "healthy" {
			overall = "unhealthy"
		}
	}

	return &HealthOutput{Body: HealthResponse{
		Status:     overall,
		Components: components,
	}}, nil
}

// checkCatalog verifies the catalog loaded with at least one usable book.
func (s *Server) checkCatalog() ComponentHealth {
	if s.catalog == nil || s.catalog.Len() == 0 {
		return ComponentHealth{
			Status:  "unhealthy",
			Message: "catalog is empty",
		}
	}
	return ComponentHealth{
		Status:  "healthy",
		Message: fmt.Sprintf("%d books loaded", s.catalog.Len()),
	}
}

// checkSearchIndex verifies the search index responds to a count query.
func (s *Server) checkSearchIndex() ComponentHealth {
	if s.searchIndex == nil {
		return ComponentHealth{Status: "unhealthy", Message: "search index not initialized"}
	}

	start := time.Now()
	count, err := s.searchIndex.DocumentCount()
	if err != nil {
		return ComponentHealth{Status: "unhealthy", Message: err.Error()}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: time.Since(start).String(),
		Message: fmt.Sprintf("%d documents indexed", count),
	}
}
