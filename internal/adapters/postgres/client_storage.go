// Package postgres stores client namespaces in the client_storage table.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/learnsphere/learnsphere-ui/internal/errors"
	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

var (
	_ ports.StorageProvider = (*StorageProvider)(nil)
	_ ports.Storage         = (*Storage)(nil)
)

// StorageProvider hands out namespaces backed by a shared *sql.DB.
// Rows older than the TTL are invisible to Get and removed by Purge.
type StorageProvider struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewStorageProvider creates a provider. A non-positive ttl disables expiry.
func NewStorageProvider(db *sql.DB, ttl time.Duration) *StorageProvider {
	return &StorageProvider{db: db, ttl: ttl, now: time.Now}
}

// Namespace returns the storage for clientID.
func (p *StorageProvider) Namespace(clientID string) ports.Storage {
	return &Storage{p: p, ns: clientID}
}

// Purge deletes rows whose namespace has been idle longer than the TTL.
func (p *StorageProvider) Purge(ctx context.Context) (int64, error) {
	if p.ttl <= 0 {
		return 0, nil
	}
	res, err := p.db.ExecContext(ctx,
		`DELETE FROM client_storage WHERE updated_at < $1`, p.now().Add(-p.ttl))
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return res.RowsAffected()
}

// Storage is a view over one namespace.
type Storage struct {
	p  *StorageProvider
	ns string
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM client_storage WHERE namespace = $1 AND key = $2`
	args := []any{s.ns, key}
	if s.p.ttl > 0 {
		query += ` AND updated_at >= $3`
		args = append(args, s.p.now().Add(-s.p.ttl))
	}

	var v string
	err := s.p.db.QueryRowContext(ctx, query, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.MapDBError(err)
	}
	return v, true, nil
}

// Set upserts key and refreshes the idle timer of the whole namespace.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	now := s.p.now()
	return withTx(ctx, s.p.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO client_storage (namespace, key, value, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
			s.ns, key, value, now); err != nil {
			return apperrors.MapDBError(err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE client_storage SET updated_at = $2 WHERE namespace = $1 AND updated_at < $2`,
			s.ns, now); err != nil {
			return apperrors.MapDBError(err)
		}
		return nil
	})
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	if _, err := s.p.db.ExecContext(ctx,
		`DELETE FROM client_storage WHERE namespace = $1 AND key = $2`, s.ns, key); err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", apperrors.MapDBError(err))
	}
	defer func() {
		if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rerr))
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
