package surveystore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &SurveyStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// SurveyStoreManager hands out the process-wide survey store.
type SurveyStoreManager struct {
	sync.Mutex
	store contract.SurveyStore
}

var _ contract.StoreManager = &SurveyStoreManager{} // Compile-time check

// GetSurveyStore returns the configured survey store, or nil before InitStore.
func (m *SurveyStoreManager) GetSurveyStore() contract.SurveyStore {
	m.Lock()
	defer m.Unlock()
	return m.store
}

// SetSurveyStore replaces the store. Intended for tests.
func (m *SurveyStoreManager) SetSurveyStore(store contract.SurveyStore) {
	m.Lock()
	defer m.Unlock()
	m.store = store
}

// InitStore initializes the global survey store. Safe to call more than once;
// only the first call takes effect.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		store, err := NewSurveyStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize survey store: %w", err)
			return
		}
		Manager.SetSurveyStore(store)
	})
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		if store := Manager.GetSurveyStore(); store != nil {
			_ = store.Close()
		}
	})
}

// ClearStore removes all stored surveys for the specified backend.
// For SQLite, it deletes the database file. For MySQL/PostgreSQL, it drops
// the survey tables. For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			dbFilePath = contract.GetStoreDBFilePath()
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropSurveyTables("mysql", connStr, backend)

	case schema.PostgreSQLBackend:
		return dropSurveyTables("pgx", connStr, backend)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// dropSurveyTables connects to the SQL database and drops the survey tables.
func dropSurveyTables(driverName, connStr string, backend schema.DatabaseBackend) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, table := range []string{defectsTable, jointsTable, surveysTable} {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
