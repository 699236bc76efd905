// Package sessionrepo manages repository layer of sessions.
package sessionrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/dbpkg"
	"github.com/go-petr/pet-broker/pkg/errorspkg"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates session repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns session RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// NewTxRepoPGS returns session RepoPGS running inside an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const lockClientQuery = `
SELECT name FROM clients
WHERE name = $1
FOR UPDATE
`

const deactivateQuery = `
UPDATE sessions
SET is_active = false
WHERE client_name = $1 AND is_active
`

const createQuery = `
INSERT INTO sessions (
	id,
	client_name,
	user_agent,
	client_ip,
	expires_at
) VALUES (
	$1, $2, $3, $4, $5
) RETURNING id, client_name, user_agent, client_ip, is_active, expires_at, created_at
`

// Create deactivates every active session of the client and creates the new one.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
	if r.conn == nil {
		return r.create(ctx, arg)
	}

	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Session{}, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	s, err := NewTxRepoPGS(tx).create(ctx, arg)
	if err != nil {
		return domain.Session{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Session{}, errorspkg.ErrInternal
	}

	return s, nil
}

func (r *RepoPGS) create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
	l := zerolog.Ctx(ctx)

	// Concurrent logins of one client queue on the client row, so only one
	// session stays active.
	var name string
	if err := r.db.QueryRowContext(ctx, lockClientQuery, arg.ClientName).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, domain.ErrClientNotFound
		}

		l.Error().Err(err).Send()

		return domain.Session{}, errorspkg.ErrInternal
	}

	res, err := r.db.ExecContext(ctx, deactivateQuery, arg.ClientName)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Session{}, errorspkg.ErrInternal
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		l.Info().Str("client_name", arg.ClientName).Int64("sessions", n).Msg("deactivated previous sessions")
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.ID,
		arg.ClientName,
		arg.UserAgent,
		arg.ClientIP,
		arg.ExpiresAt,
	)

	s, err := scan(row)
	if err != nil {
		l.Error().Err(err).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "sessions_client_name_fkey" {
			return domain.Session{}, domain.ErrClientNotFound
		}

		return domain.Session{}, errorspkg.ErrInternal
	}

	return s, nil
}

const getQuery = `
SELECT
	id,
	client_name,
	user_agent,
	client_ip,
	is_active,
	expires_at,
	created_at
FROM sessions
WHERE id = $1
`

// Get returns session with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	l := zerolog.Ctx(ctx)

	s, err := scan(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, domain.ErrSessionNotFound
		}

		l.Error().Err(err).Send()

		return domain.Session{}, errorspkg.ErrInternal
	}

	return s, nil
}

func scan(row *sql.Row) (domain.Session, error) {
	var s domain.Session

	err := row.Scan(
		&s.ID,
		&s.ClientName,
		&s.UserAgent,
		&s.ClientIP,
		&s.IsActive,
		&s.ExpiresAt,
		&s.CreatedAt,
	)

	return s, err
}
