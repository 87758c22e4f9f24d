package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/vidctl/internal/db"
)

// Progress is the resume point of one media item.
type Progress struct {
	MediaKey  string
	Position  time.Duration
	Duration  time.Duration
	Quality   string  // source label, empty when unknown
	Speed     float64 // 1 when not stored
	Muted     bool
	UpdatedAt time.Time
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgress(row scanner) (Progress, error) {
	var (
		p                    Progress
		positionMS, duration int64
		quality              sql.NullString
		speed                sql.NullFloat64
		muted                int
		updatedAt            int64
	)
	if err := row.Scan(&p.MediaKey, &positionMS, &duration, &quality, &speed, &muted, &updatedAt); err != nil {
		return Progress{}, err
	}
	p.Position = dbutil.FromMillis(positionMS)
	p.Duration = dbutil.FromMillis(duration)
	p.Quality = dbutil.NullStringValue(quality)
	p.Speed = dbutil.NullFloat64Or(speed, 1)
	p.Muted = muted != 0
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return p, nil
}

const progressColumns = `media_key, position_ms, duration_ms, quality, speed, muted, updated_at`

func getProgress(db *sql.DB, key string) (*Progress, error) {
	row := db.QueryRow(`SELECT `+progressColumns+` FROM watch_progress WHERE media_key = ?`, key)
	p, err := scanProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nothing saved yet is not an error
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func listProgress(db *sql.DB, limit int) ([]Progress, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(`
		SELECT `+progressColumns+`
		FROM watch_progress
		ORDER BY updated_at DESC, media_key
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func saveProgress(tx *sql.Tx, p Progress) error {
	var quality sql.NullString
	if p.Quality != "" {
		quality = sql.NullString{String: p.Quality, Valid: true}
	}
	speed := p.Speed
	if speed == 0 {
		speed = 1
	}
	muted := 0
	if p.Muted {
		muted = 1
	}
	_, err := tx.Exec(`
		INSERT INTO watch_progress (media_key, position_ms, duration_ms, quality, speed, muted, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(media_key) DO UPDATE SET
			position_ms = excluded.position_ms,
			duration_ms = excluded.duration_ms,
			quality = excluded.quality,
			speed = excluded.speed,
			muted = excluded.muted,
			updated_at = excluded.updated_at
	`, p.MediaKey, dbutil.Millis(p.Position), dbutil.Millis(p.Duration), quality, speed, muted, p.UpdatedAt.Unix())
	return err
}

func deleteProgress(db *sql.DB, key string) error {
	_, err := db.Exec(`DELETE FROM watch_progress WHERE media_key = ?`, key)
	return err
}
