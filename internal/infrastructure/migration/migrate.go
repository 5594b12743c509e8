// Package migration applies the SQL schema of the postgres document backend.
package migration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Blank import required for PostgreSQL driver registration for migrations
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/exp/slog"
)

// ErrDirty means a previous run stopped halfway and the schema needs a manual fix.
var ErrDirty = errors.New("schema is dirty")

// Migrator is the part of migrate.Migrate the runner uses.
type Migrator interface {
	Up() error
	Version() (version uint, dirty bool, err error)
	Close() (source error, database error)
}

// Opener builds a Migrator from a source and a database url.
type Opener func(sourceURL, databaseURL string) (Migrator, error)

// OpenFiles reads migrations from disk and applies them with the postgres driver.
func OpenFiles(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

type Runner struct {
	source string
	dsn    string
	open   Opener
	log    *slog.Logger
}

// NewRunner takes the migrations directory (or a source url) and the
// database dsn. A nil open uses OpenFiles.
func NewRunner(dir, dsn string, open Opener, log *slog.Logger) *Runner {
	if open == nil {
		open = OpenFiles
	}
	return &Runner{
		source: sourceURL(dir),
		dsn:    dsn,
		open:   open,
		log:    log.With(slog.String("component", "migration")),
	}
}

// Apply runs every pending up migration and returns the resulting schema
// version. Zero means the source holds no migrations.
func (r *Runner) Apply() (version uint, err error) {
	m, err := r.open(r.source, r.dsn)
	if err != nil {
		return 0, fmt.Errorf("open migrations %s: %w", r.source, err)
	}
	defer func() {
		serr, dberr := m.Close()
		err = errors.Join(err, closeErr("source", serr), closeErr("database", dberr))
	}()

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		r.log.Debug("schema up to date")
	case err != nil:
		return 0, fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("%w at version %d", ErrDirty, version)
	}

	r.log.Info("schema ready", slog.Uint64("version", uint64(version)))
	return version, nil
}

func sourceURL(dir string) string {
	if strings.Contains(dir, "://") {
		return dir
	}
	return "file://" + dir
}

func closeErr(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("close migration %s: %w", what, err)
}
