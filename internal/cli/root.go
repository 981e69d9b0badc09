// Package cli holds the choreboard command tree. Flags double as the
// configuration layer: every setting has a flag, most also read an
// environment variable.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/logging"
)

// Globals are the flags shared by every command.
type Globals struct {
	DatabaseURL string `name:"database-url" env:"DATABASE_URL" default:"choreboard.db" help:"SQLite file path or postgres:// URL."`
	DBDriver    string `name:"db-driver" env:"CHOREBOARD_DB_DRIVER" help:"sqlite or postgres; inferred from the URL when empty."`
	LogLevel    string `name:"log-level" env:"CHOREBOARD_LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	LogFormat   string `name:"log-format" env:"CHOREBOARD_LOG_FORMAT" default:"text" enum:"text,json" help:"Log format."`
	Timezone    string `name:"timezone" env:"CHOREBOARD_TIMEZONE" help:"IANA zone used for day boundaries; empty means the local zone."`

	Out io.Writer `kong:"-"`
}

// CLI is the full command tree.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Print the version and exit."`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the HTTP API (default)."`
	Migrate MigrateCmd `cmd:"" help:"Apply, roll back or show schema migrations."`
	Backup  BackupCmd  `cmd:"" help:"Encrypted SQLite backups in S3-compatible storage."`
}

func (g *Globals) stdout() io.Writer {
	if g.Out != nil {
		return g.Out
	}
	return os.Stdout
}

func (g *Globals) logger() *slog.Logger {
	return logging.Setup(g.LogLevel, g.LogFormat)
}

// location resolves the configured time zone.
func (g *Globals) location() (*time.Location, error) {
	if g.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", g.Timezone, err)
	}
	return loc, nil
}

// open connects to the configured database. With migrate set, pending
// migrations are applied first.
func (g *Globals) open(ctx context.Context, migrate bool) (*database.DB, error) {
	dialect, err := database.ParseDialect(g.DBDriver, g.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if migrate {
		return database.Open(ctx, dialect, g.DatabaseURL)
	}
	return database.Connect(ctx, dialect, g.DatabaseURL)
}
