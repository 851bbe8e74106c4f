package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	conn, err := InitDB(filepath.Join(t.TempDir(), "recon.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	for _, table := range []string{"log_entries", "operators"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	if _, err := conn.Exec(`INSERT INTO log_entries (id, stream, ticks, category, payload, recorded_at) VALUES ('a', 'general', 1, 'BLE', 'p', '2025-01-01 00:00:00.000')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestInitDB_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recon.db")
	for i := 0; i < 2; i++ {
		conn, err := InitDB(path)
		if err != nil {
			t.Fatalf("InitDB #%d: %v", i+1, err)
		}
		_ = conn.Close()
	}
}
