// Package state persists watch progress in a local sqlite database.
package state

import (
	"database/sql"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // SQLite driver

	dbutil "github.com/llehouerou/vidctl/internal/db"
)

const (
	appName      = "vidctl"
	dbFileName   = "vidctl.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager owns the progress database. Saves are debounced: frequent position
// reports for the same item collapse into one write.
type Manager struct {
	db  *sql.DB
	log logrus.FieldLogger
	now func() time.Time

	saveMu    sync.Mutex
	saveTimer *time.Timer
	debounce  time.Duration
	pending   map[string]Progress
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used to report failed background writes.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Manager) { m.log = log }
}

// Open opens the database under the xdg data directory.
func Open(opts ...Option) (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath, opts...)
}

// OpenPath opens the database at path, creating it and its directory when
// missing.
func OpenPath(path string, opts ...Option) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer at a time; the debounced flush and callers share it.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	m := &Manager{
		db:       db,
		log:      logrus.StandardLogger(),
		now:      time.Now,
		debounce: saveDebounce,
		pending:  make(map[string]Progress),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithField("component", "state")
	return m, nil
}

// Close flushes pending saves and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveMu.Unlock()

	flushErr := m.Flush()
	if err := m.db.Close(); err != nil {
		return err
	}
	return flushErr
}

// DB exposes the underlying handle.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// GetProgress returns the saved progress of key, or nil when none exists.
// Unflushed saves are visible.
func (m *Manager) GetProgress(key string) (*Progress, error) {
	m.saveMu.Lock()
	p, ok := m.pending[key]
	m.saveMu.Unlock()
	if ok {
		return &p, nil
	}
	return getProgress(m.db, key)
}

// ListProgress flushes pending saves and returns up to limit items, most
// recently updated first. A limit <= 0 returns everything.
func (m *Manager) ListProgress(limit int) ([]Progress, error) {
	if err := m.Flush(); err != nil {
		return nil, err
	}
	return listProgress(m.db, limit)
}

// DeleteProgress forgets key, including any unflushed save.
func (m *Manager) DeleteProgress(key string) error {
	m.saveMu.Lock()
	delete(m.pending, key)
	m.saveMu.Unlock()
	return deleteProgress(m.db, key)
}

// SaveProgress schedules p to be written. A later save for the same item
// before the debounce elapses replaces it.
func (m *Manager) SaveProgress(p Progress) {
	if p.MediaKey == "" {
		return
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = m.now()
	}

	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending[p.MediaKey] = p

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.debounce, func() {
		if err := m.Flush(); err != nil {
			m.log.WithError(err).Warn("saving watch progress failed")
		}
	})
}

// Flush writes every pending save in one transaction.
func (m *Manager) Flush() error {
	m.saveMu.Lock()
	if len(m.pending) == 0 {
		m.saveMu.Unlock()
		return nil
	}
	pending := m.pending
	m.pending = make(map[string]Progress)
	m.saveMu.Unlock()

	keys := slices.Sorted(maps.Keys(pending))
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		for _, key := range keys {
			if err := saveProgress(tx, pending[key]); err != nil {
				return err
			}
		}
		return nil
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
