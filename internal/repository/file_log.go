package repository

import (
	"context"
	"fmt"
	"os"

	"radiorecon/internal/models"
)

// FileLog appends entries as "[<ticks>] <payload>\n" lines, one file per stream.
// The file is opened per append so a removed or rotated file is recreated.
type FileLog struct {
	paths map[models.Stream]string
}

func NewFileLog(generalPath, credentialPath string) *FileLog {
	return &FileLog{paths: map[models.Stream]string{
		models.StreamGeneral:    generalPath,
		models.StreamCredential: credentialPath,
	}}
}

// FormatLine renders an entry the way downstream tooling expects it.
func FormatLine(e models.LogEntry) string {
	return fmt.Sprintf("[%d] %s\n", e.Ticks, e.Payload)
}

func (l *FileLog) Append(_ context.Context, e models.LogEntry) error {
	path, ok := l.paths[e.Stream]
	if !ok || path == "" {
		return fmt.Errorf("no log file configured for stream %q", e.Stream)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString(FormatLine(e)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
