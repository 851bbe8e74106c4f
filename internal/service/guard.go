package service

import (
	"context"
	"errors"
	"fmt"

	"radiorecon/internal/logger"
	"radiorecon/internal/models"
	"radiorecon/internal/radio"
)

// Appender is the write side of the event log used by the radio workflows.
type Appender interface {
	Append(ctx context.Context, stream models.Stream, category models.Category, payload string) error
}

// guard runs a radio call and turns a driver panic into ErrHardwareUnavailable.
func guard(call func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: radio panic: %v", models.ErrHardwareUnavailable, p)
		}
	}()
	return call()
}

// isActive reports false for a nil radio or one whose status call panics.
func isActive(r radio.WifiRadio) bool {
	if r == nil {
		return false
	}
	var up bool
	if err := guard(func() error { up = r.IsActive(); return nil }); err != nil {
		return false
	}
	return up
}

// asKind wraps err with kind unless it already carries one of the model error kinds.
func asKind(err, kind error) error {
	if err == nil {
		return nil
	}
	for _, k := range []error{models.ErrHardwareUnavailable, models.ErrConnection, models.ErrDecode, models.ErrLogWrite} {
		if errors.Is(err, k) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", kind, err)
}

// record appends an entry and only reports a failed write to the process log.
func record(ctx context.Context, events Appender, log *logger.Logger, stream models.Stream, category models.Category, payload string) {
	if events == nil {
		return
	}
	if err := events.Append(ctx, stream, category, payload); err != nil {
		log.Warnw("log write failed", "stream", stream, "category", category, "err", err)
	}
}
