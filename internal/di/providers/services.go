package providers

import (
	"github.com/samber/do/v2"

	"github.com/readquest/readquest-server/internal/catalog"
	"github.com/readquest/readquest-server/internal/config"
	"github.com/readquest/readquest-server/internal/curator"
	"github.com/readquest/readquest-server/internal/logger"
	"github.com/readquest/readquest-server/internal/metadata/googlebooks"
	"github.com/readquest/readquest-server/internal/metadata/openlibrary"
	"github.com/readquest/readquest-server/internal/recommend"
	"github.com/readquest/readquest-server/internal/service"
	"github.com/readquest/readquest-server/internal/validation"
)

// ProvideOpenLibraryClient provides the Open Library metadata client.
func ProvideOpenLibraryClient(i do.Injector) (*openlibrary.Client, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return openlibrary.NewClient(log.Logger), nil
}

// ProvideGoogleBooksClient provides the Google Books metadata client.
func ProvideGoogleBooksClient(i do.Injector) (*googlebooks.Client, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return googlebooks.NewClient(log.Logger), nil
}

// ProvideCurator provides the generative curation client.
func ProvideCurator(i do.Injector) (*curator.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Curator.APIKey == "" {
		log.Warn("GEMINI_API_KEY is not set; recommendation requests will fail")
	}

	return curator.NewClient(cfg.Curator.APIKey, cfg.Curator.Model, cfg.Curator.VisionModel, log.Logger), nil
}

// ProvideSelector provides the candidate selector with configured tunables.
func ProvideSelector(i do.Injector) (*recommend.Selector, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	cat := do.MustInvoke[*catalog.Catalog](i)

	return recommend.NewSelector(cat, log.Logger,
		recommend.WithCandidateFloor(cfg.Selection.CandidateFloor),
		recommend.WithDisqualifyThreshold(cfg.Selection.DisqualifyThreshold),
	), nil
}

// ProvideRecommendationService provides the reading-list orchestrator.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	selector := do.MustInvoke[*recommend.Selector](i)
	oracle := do.MustInvoke[*curator.Client](i)

	return service.NewRecommendationService(
		selector,
		storeHandle.Recommendations,
		oracle,
		validation.New(),
		log.Logger,
	), nil
}

// ProvideCoverService provides the cover resolution engine.
func ProvideCoverService(i do.Injector) (*service.CoverService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	openLibrary := do.MustInvoke[*openlibrary.Client](i)
	googleBooks := do.MustInvoke[*googlebooks.Client](i)

	return service.NewCoverService(openLibrary, googleBooks, cfg.Covers, log.Logger), nil
}

// ProvideOverrideService provides the cover override manager.
func ProvideOverrideService(i do.Injector) (*service.OverrideService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	cat := do.MustInvoke[*catalog.Catalog](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	verifier := do.MustInvoke[*curator.Client](i)

	return service.NewOverrideService(cat, storeHandle.CoverOverrides, verifier, log.Logger), nil
}
