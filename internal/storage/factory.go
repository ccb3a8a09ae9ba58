package storage

import (
	"fmt"

	"github.com/marinerstudio/chartsync/internal/database"
	"github.com/marinerstudio/chartsync/internal/storage/gormstore"
	"github.com/marinerstudio/chartsync/internal/storage/memory"
)

// Config selects and configures a storage backend.
type Config struct {
	Type        string // "memory", "sqlite", or "postgres"
	SessionName string
	SqlitePath  string
}

// NewBackend creates a storage backend based on configuration. The
// database manager is only consulted for the GORM-backed types.
func NewBackend(cfg Config, dbm *database.Manager) (Backend, error) {
	switch cfg.Type {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		db, err := dbm.GetSqliteDB(cfg.SqlitePath)
		if err != nil {
			return nil, fmt.Errorf("error opening sqlite backend: %w", err)
		}
		return gormstore.New(db, cfg.SessionName), nil
	case "postgres":
		if err := dbm.Connect(); err != nil {
			return nil, fmt.Errorf("error connecting postgres backend: %w", err)
		}
		return gormstore.New(dbm.DB, cfg.SessionName), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
