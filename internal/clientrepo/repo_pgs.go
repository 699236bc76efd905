// Package clientrepo manages repository layer of API clients.
package clientrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/dbpkg"
	"github.com/go-petr/pet-broker/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates client repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns client RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO clients (
    name,
    hashed_api_key
) VALUES (
    $1, $2
) RETURNING name, hashed_api_key, created_at
`

// Create creates the client and then returns it.
func (r *RepoPGS) Create(ctx context.Context, name, hashedAPIKey string) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, name, hashedAPIKey)

	var c domain.Client

	err := row.Scan(
		&c.Name,
		&c.HashedAPIKey,
		&c.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "clients_pkey" {
			return domain.Client{}, domain.ErrClientAlreadyExists
		}

		return domain.Client{}, errorspkg.ErrInternal
	}

	return c, nil
}

const getQuery = `
SELECT
	name,
	hashed_api_key,
	created_at
FROM clients
WHERE name = $1
`

// Get returns the client with the given name.
func (r *RepoPGS) Get(ctx context.Context, name string) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, name)

	var c domain.Client

	err := row.Scan(
		&c.Name,
		&c.HashedAPIKey,
		&c.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Str("client_name", name).Msg("client not found")
			return domain.Client{}, domain.ErrClientNotFound
		}

		l.Error().Err(err).Send()

		return domain.Client{}, errorspkg.ErrInternal
	}

	return c, nil
}
