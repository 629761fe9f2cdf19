package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/readquest/readquest-server/internal/catalog"
	"github.com/readquest/readquest-server/internal/config"
	"github.com/readquest/readquest-server/internal/logger"
	"github.com/readquest/readquest-server/internal/search"
	"github.com/readquest/readquest-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// ProvideCatalog loads the book dataset. The catalog is loaded exactly once
// per process; the file is never watched or reloaded.
func ProvideCatalog(i do.Injector) (*catalog.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cat, err := catalog.Load(cfg.Catalog.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	return cat, nil
}

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve catalog index, populated from the
// loaded catalog when it is empty or stale.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	cat := do.MustInvoke[*catalog.Catalog](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Data.BasePath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	if docCount != uint64(cat.Len()) {
		log.Info("reindexing catalog",
			"indexed", docCount,
			"catalog", cat.Len(),
		)
		if err := index.Rebuild(); err != nil {
			return nil, err
		}
		if err := index.IndexCatalog(cat); err != nil {
			return nil, err
		}
	}

	log.Info("Search index initialized", "documents", cat.Len())

	return &SearchIndexHandle{SearchIndex: index}, nil
}
