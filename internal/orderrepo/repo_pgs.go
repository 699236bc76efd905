// Package orderrepo manages repository layer of orders.
package orderrepo

import (
	"context"
	"errors"

	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/dbpkg"
	"github.com/go-petr/pet-broker/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates order repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns order RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    orders (account_id, operation, issuer_name, total_shares, share_price, timestamp)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, account_id, operation, issuer_name, total_shares, share_price, timestamp, created_at
`

// Create appends the order to the account history and returns it.
func (r *RepoPGS) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		o.AccountID,
		o.Operation,
		o.IssuerName,
		o.TotalShares,
		o.SharePrice,
		o.Timestamp,
	)

	created, err := scan(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", o)

		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "orders_account_id_fkey":
				return created, domain.ErrAccountNotFound
			case "orders_operation_check":
				return created, domain.ErrInvalidOperation
			case "orders_issuer_name_check":
				return created, domain.ErrEmptyIssuer
			case "orders_total_shares_check":
				return created, domain.ErrInvalidShares
			case "orders_share_price_check":
				return created, domain.ErrInvalidSharePrice
			}
		}

		return created, errorspkg.ErrInternal
	}

	return created, nil
}

const listQuery = `
SELECT id, account_id, operation, issuer_name, total_shares, share_price, timestamp, created_at
FROM orders
WHERE account_id = $1
ORDER BY id
`

// List returns the whole order history of the account in insertion order.
func (r *RepoPGS) List(ctx context.Context, accountID int32) ([]domain.Order, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Order{}

	for rows.Next() {
		o, err := scan(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, o)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (domain.Order, error) {
	var o domain.Order

	err := s.Scan(
		&o.ID,
		&o.AccountID,
		&o.Operation,
		&o.IssuerName,
		&o.TotalShares,
		&o.SharePrice,
		&o.Timestamp,
		&o.CreatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}

	o.Timestamp = o.Timestamp.UTC()

	return o, nil
}
