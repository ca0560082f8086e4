package repository

import (
	"context"
	"errors"
	"fmt"

	"vertical/backend/internal/phpserial"

	"github.com/elliotchance/phpserialize"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lookup matches no row. Callers translate it
// to a 404; everything else stays a 500.
var ErrNotFound = errors.New("not found")

const apiKeyOption = "verticalapp_driver_access_apikey"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// APIKey reads the configured access key from the options table. The stored
// value is either a serialized map carrying an api_key entry or a bare
// string; both are accepted. An empty result means the gate is unconfigured.
func (r *Repository) APIKey(ctx context.Context) (string, error) {
	row := r.pool.QueryRow(ctx, `SELECT option_value FROM options WHERE option_name = $1`, apiKeyOption)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	val := phpserial.TryUnserialize(raw)
	if val.Kind == phpserial.KindMap {
		return val.Map["api_key"].StringOr(""), nil
	}
	return val.StringOr(raw), nil
}

// SetAPIKey writes the access key, serialized the way the WordPress side
// stores it, creating the option row when missing.
func (r *Repository) SetAPIKey(ctx context.Context, key string) error {
	blob, err := phpserialize.Marshal(map[interface{}]interface{}{"api_key": key}, nil)
	if err != nil {
		return fmt.Errorf("serialize api key: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO options (option_name, option_value, autoload)
VALUES ($1, $2, 'no')
ON CONFLICT (option_name) DO UPDATE SET option_value = EXCLUDED.option_value;`, apiKeyOption, string(blob))
	return err
}

func nullString(val string) interface{} {
	if val == "" {
		return nil
	}
	return val
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
