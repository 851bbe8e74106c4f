package repository

import (
	"context"
	"database/sql"

	"radiorecon/internal/models"
)

// Authorization stores operator accounts for the API.
type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// LogSink is a backing store for log entries. Append is the only write.
type LogSink interface {
	Append(ctx context.Context, e models.LogEntry) error
}

// EntryFilter narrows List; zero values mean "any". Limit keeps the most recent entries.
type EntryFilter struct {
	Stream   models.Stream
	Category models.Category
	Limit    int
}

// EntryRepo is a queryable sink used by the operator API.
type EntryRepo interface {
	LogSink
	List(ctx context.Context, f EntryFilter) ([]models.LogEntry, error)
}

type Repository struct {
	Entries EntryRepo
	Files   LogSink
	Auth    Authorization
}

func NewRepository(db *sql.DB, files LogSink) *Repository {
	return &Repository{
		Entries: NewEntrySQLite(db),
		Files:   files,
		Auth:    NewOperatorRepository(db),
	}
}
