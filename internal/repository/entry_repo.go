package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"radiorecon/internal/models"

	"github.com/google/uuid"
)

type EntrySQLite struct {
	db *sql.DB
}

func NewEntrySQLite(db *sql.DB) *EntrySQLite { return &EntrySQLite{db: db} }

const insertEntrySQL = `
		INSERT INTO log_entries (id, stream, ticks, category, payload, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

// Append inserts an entry. Missing ID and RecordedAt are filled in.
func (r *EntrySQLite) Append(ctx context.Context, e models.LogEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, insertEntrySQL,
		e.ID,
		string(e.Stream),
		int64(e.Ticks),
		string(e.Category),
		e.Payload,
		e.RecordedAt.UTC().Format("2006-01-02 15:04:05.000"),
	)
	if err != nil {
		return fmt.Errorf("insert log entry %s: %w", e.Category, err)
	}
	return nil
}

// List returns matching entries in arrival order. With a Limit only the most
// recent entries are returned, still oldest first.
func (r *EntrySQLite) List(ctx context.Context, f EntryFilter) ([]models.LogEntry, error) {
	var (
		conds []string
		args  []any
	)

	if s := strings.TrimSpace(string(f.Stream)); s != "" {
		conds = append(conds, "stream = ?")
		args = append(args, strings.ToLower(s))
	}
	if c := strings.TrimSpace(string(f.Category)); c != "" {
		conds = append(conds, "category = ?")
		args = append(args, strings.ToUpper(c))
	}

	q := `SELECT id, stream, ticks, category, payload, recorded_at FROM log_entries`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY seq DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query log entries: %w", err)
	}
	defer rows.Close()

	out := make([]models.LogEntry, 0, 64)
	for rows.Next() {
		var (
			e        models.LogEntry
			stream   string
			ticks    int64
			category string
		)
		if err := rows.Scan(&e.ID, &stream, &ticks, &category, &e.Payload, &e.RecordedAt); err != nil {
			return nil, err
		}
		e.Stream = models.Stream(stream)
		e.Ticks = uint32(ticks)
		e.Category = models.Category(category)
		e.RecordedAt = e.RecordedAt.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
