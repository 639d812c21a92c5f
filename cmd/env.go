package cmd

import (
	"fmt"

	"github.com/abhisek/prepsmart/internal/catalog"
	"github.com/abhisek/prepsmart/internal/config"
	"github.com/abhisek/prepsmart/internal/logging"
	"github.com/abhisek/prepsmart/internal/store"
)

// env holds the services shared by every command.
type env struct {
	log     *logging.Logger
	store   *store.Store
	catalog *catalog.Store
}

// openEnv builds the logger, opens the store and loads the catalog.
func openEnv(c *config.Config) (*env, error) {
	log, err := logging.New(logging.Options{
		Level:       c.LogLevel,
		Path:        c.LogFile,
		Development: c.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	cat, err := catalog.LoadEmbedded(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if c.CatalogDir != "" {
		if err := cat.LoadDir(c.CatalogDir); err != nil {
			log.Sync()
			return nil, fmt.Errorf("load catalog dir: %w", err)
		}
	}

	st, err := store.Open(c.DBPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	log.Info("environment ready", "db", c.DBPath, "modules", cat.Len())
	return &env{log: log, store: st, catalog: cat}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store failed", "error", err)
	}
	e.log.Sync()
}
