package provider

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a referenced contact or photo does not exist.
var ErrNotFound = errors.New("provider: not found")

// Provider is a contacts store backed by one SQLite database laid out like
// the platform contacts provider.
type Provider struct {
	db       *sql.DB
	log      *zap.SugaredLogger
	readOnly bool
}

type options struct {
	readOnly bool
	log      *zap.SugaredLogger
}

// Option configures Open.
type Option func(*options)

// WithReadOnly opens the database read-only and skips schema migration.
func WithReadOnly() Option {
	return func(o *options) {
		o.readOnly = true
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// Open opens (creating when writable) the database at path and migrates its
// schema.
func Open(ctx context.Context, path string, opts ...Option) (*Provider, error) {
	o := options{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("provider: database path is required")
	}

	mode := "rwc"
	if o.readOnly {
		mode = "ro"
	}

	dsn := fmt.Sprintf("file:%s?mode=%s&_busy_timeout=5000&_foreign_keys=on", strings.ReplaceAll(path, " ", "%20"), mode)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "provider: opening sqlite database failed")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "provider: connecting to sqlite database failed")
	}

	if !o.readOnly {
		if err := migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	o.log.Debugw("opened contacts database", "path", path, "mode", mode)
	return &Provider{db: db, log: o.log, readOnly: o.readOnly}, nil
}

// Close closes the underlying database.
func (p *Provider) Close() error {
	if err := p.db.Close(); err != nil {
		return errors.Wrap(err, "provider: closing sqlite database failed")
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "provider: migrating schema failed")
	}
	return nil
}
