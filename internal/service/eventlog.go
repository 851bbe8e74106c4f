package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"radiorecon/internal/logger"
	"radiorecon/internal/models"
	"radiorecon/internal/radio"
	"radiorecon/internal/repository"

	"go.uber.org/multierr"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

var (
	errUnknownStream   = errors.New("unknown log stream")
	errUnknownCategory = errors.New("unknown log category")
)

// EventLogService stamps entries with the device tick and appends them to
// every configured sink. A failed sink is reported to the caller and never retried.
type EventLogService struct {
	clock radio.Clock
	sinks []repository.LogSink
	query repository.EntryRepo
	log   *logger.Logger
}

// NewEventLogService writes to sinks in order; query (may be nil) serves List.
func NewEventLogService(clock radio.Clock, query repository.EntryRepo, log *logger.Logger, sinks ...repository.LogSink) *EventLogService {
	return &EventLogService{clock: clock, sinks: sinks, query: query, log: log}
}

func (s *EventLogService) Append(ctx context.Context, stream models.Stream, category models.Category, payload string) error {
	if stream != models.StreamGeneral && stream != models.StreamCredential {
		return fmt.Errorf("%w: %w %q", models.ErrLogWrite, errUnknownStream, stream)
	}
	e := models.LogEntry{
		Stream:   stream,
		Ticks:    uint32(s.clock.Ticks()),
		Category: category,
		Payload:  payload,
	}

	var err error
	for _, sink := range s.sinks {
		err = multierr.Append(err, sink.Append(ctx, e))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrLogWrite, err)
	}
	s.log.Infow("LOG", "stream", stream, "entry", payload)
	return nil
}

func normalizeStream(s models.Stream) models.Stream {
	return models.Stream(strings.ToLower(strings.TrimSpace(string(s))))
}

func normalizeCategory(c models.Category) models.Category {
	return models.Category(strings.ToUpper(strings.TrimSpace(string(c))))
}

// normalizeAndValidateFilter cleans up operator input and bounds the limit.
func normalizeAndValidateFilter(f LogFilter) (repository.EntryFilter, error) {
	out := repository.EntryFilter{
		Stream:   normalizeStream(f.Stream),
		Category: normalizeCategory(f.Category),
		Limit:    f.Limit,
	}
	if out.Stream != "" && out.Stream != models.StreamGeneral && out.Stream != models.StreamCredential {
		return repository.EntryFilter{}, fmt.Errorf("%w: %q", errUnknownStream, f.Stream)
	}
	if out.Category != "" && !knownCategories[out.Category] {
		return repository.EntryFilter{}, fmt.Errorf("%w: %q", errUnknownCategory, f.Category)
	}
	switch {
	case out.Limit <= 0:
		out.Limit = defaultListLimit
	case out.Limit > maxListLimit:
		out.Limit = maxListLimit
	}
	return out, nil
}

// List reads back mirrored entries for the operator API.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.LogEntry, error) {
	filter, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	if s.query == nil {
		return []models.LogEntry{}, nil
	}
	return s.query.List(ctx, filter)
}

// IsInvalidFilter reports whether err came from filter validation.
func IsInvalidFilter(err error) bool {
	return errors.Is(err, errUnknownStream) || errors.Is(err, errUnknownCategory)
}
