package database

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		driver, url string
		want        Dialect
		wantErr     bool
	}{
		{"", "choreboard.db", SQLite, false},
		{"", "postgres://localhost/choreboard", Postgres, false},
		{"", "postgresql://localhost/choreboard", Postgres, false},
		{"sqlite3", "x.db", SQLite, false},
		{"PostgreSQL", "host=localhost", Postgres, false},
		{"mysql", "x", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDialect(tt.driver, tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDialect(%q, %q) err = %v, wantErr %v", tt.driver, tt.url, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDialect(%q, %q) = %q, want %q", tt.driver, tt.url, got, tt.want)
		}
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{SQLite, `SELECT * FROM t WHERE a = ? AND b = ?`, `SELECT * FROM t WHERE a = ? AND b = ?`},
		{Postgres, `SELECT * FROM t WHERE a = ? AND b = ?`, `SELECT * FROM t WHERE a = $1 AND b = $2`},
		{Postgres, `SELECT '?' FROM t WHERE a = ?`, `SELECT '?' FROM t WHERE a = $1`},
		{Postgres, `SELECT 1`, `SELECT 1`},
	}
	for _, tt := range tests {
		if got := rebind(tt.dialect, tt.in); got != tt.want {
			t.Errorf("rebind(%s, %q) = %q, want %q", tt.dialect, tt.in, got, tt.want)
		}
	}
}

func TestOpenMigratesSchema(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, SQLite, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"buildings", "places", "tasks", "users", "assignments", "task_logs", "point_usages", "backups"} {
		var name string
		err := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	var fk int
	if err := db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestConstraintErrors(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, SQLite, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `INSERT INTO users (name) VALUES ('Alice')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err = db.ExecContext(ctx, `INSERT INTO users (name) VALUES ('Alice')`)
	if !IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false", err)
	}
	if IsForeignKeyViolation(err) {
		t.Error("unique violation reported as foreign key")
	}

	_, err = db.ExecContext(ctx, `INSERT INTO places (building_id, name) VALUES (999, 'Nowhere')`)
	if !IsForeignKeyViolation(err) {
		t.Errorf("IsForeignKeyViolation(%v) = false", err)
	}
	if IsUniqueViolation(nil) || IsForeignKeyViolation(nil) {
		t.Error("nil error reported as violation")
	}
}

func TestPointColumnsAreBounded(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, SQLite, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	for _, q := range []string{
		`INSERT INTO buildings (name) VALUES ('Main House')`,
		`INSERT INTO places (building_id, name) VALUES (1, 'Kitchen')`,
		`INSERT INTO users (name) VALUES ('Mom')`,
		`INSERT INTO tasks (place_id, name, point, cycle_days) VALUES (1, 'Mop', 2147483647, 7)`,
		`INSERT INTO point_usages (user_id, points_used, description, used_at) VALUES (1, 2147483647, 'Trip', CURRENT_TIMESTAMP)`,
	} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			t.Fatalf("%s: %v", q, err)
		}
	}

	if _, err := db.ExecContext(ctx, `INSERT INTO tasks (place_id, name, point, cycle_days) VALUES (1, 'Scrub', 2147483648, 7)`); err == nil {
		t.Error("task point above the INTEGER range was accepted")
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO point_usages (user_id, points_used, description, used_at) VALUES (1, 2147483648, 'More', CURRENT_TIMESTAMP)`); err == nil {
		t.Error("points_used above the INTEGER range was accepted")
	}
}

func TestMigrateLogsThroughSlog(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(ctx, SQLite, ":memory:")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	var buf bytes.Buffer
	db.Logger = slog.New(slog.NewJSONHandler(&buf, nil))
	if err := db.Migrate(ctx, "up"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var applied bool
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("migration output is not JSON: %q", line)
		}
		if entry["component"] != "migrate" {
			t.Errorf("component = %v, want migrate", entry["component"])
		}
		if msg, _ := entry["msg"].(string); strings.Contains(msg, "00001_create_schema.sql") {
			applied = true
		}
	}
	if !applied {
		t.Errorf("no log entry for the first migration in:\n%s", buf.String())
	}
}

func TestMigrateDownAndStatus(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, SQLite, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx, "status"); err != nil {
		t.Fatalf("status: %v", err)
	}
	if err := db.Migrate(ctx, "down"); err != nil {
		t.Fatalf("down: %v", err)
	}
	var n int
	db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'backups'`).Scan(&n)
	if n != 0 {
		t.Error("backups table should be dropped after one down step")
	}
	if err := db.Migrate(ctx, "sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
}
