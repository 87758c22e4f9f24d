package db

import (
	"database/sql"
	"time"
)

// WithTx runs fn inside a transaction, committing when it returns nil and
// rolling back otherwise.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// NullStringValue returns the string value or empty string if not valid.
func NullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

// NullFloat64Or returns the float value, or fallback if not valid.
func NullFloat64Or(n sql.NullFloat64, fallback float64) float64 {
	if !n.Valid {
		return fallback
	}
	return n.Float64
}

// Millis converts a duration to its stored integer form.
func Millis(d time.Duration) int64 {
	return d.Milliseconds()
}

// FromMillis converts a stored millisecond count back to a duration.
func FromMillis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
