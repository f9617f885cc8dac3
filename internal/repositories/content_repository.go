package repositories

import (
	"context"
	"database/sql"
	"time"
)

// ContentRepository stores the site blocks as key/value rows.
type ContentRepository struct {
	DB *sql.DB
}

// All returns every stored block and the latest update time.
func (r ContentRepository) All(ctx context.Context) (map[string]string, time.Time, error) {
	rows, err := pick(r.DB).QueryContext(ctx, `SELECT content_key, content_value, updated_at FROM site_content`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	out := map[string]string{}
	var latest time.Time
	for rows.Next() {
		var (
			k, v string
			at   time.Time
		)
		if err := rows.Scan(&k, &v, &at); err != nil {
			return nil, time.Time{}, err
		}
		out[k] = v
		if at.After(latest) {
			latest = at
		}
	}
	return out, latest, rows.Err()
}

// Upsert writes all given blocks in one transaction.
func (r ContentRepository) Upsert(ctx context.Context, values map[string]string, keys []string) error {
	tx, err := pick(r.DB).BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, k := range keys {
		v, ok := values[k]
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO site_content (content_key, content_value) VALUES (?, ?)
			ON DUPLICATE KEY UPDATE content_value = VALUES(content_value)
		`, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}
