// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/internal/orderrepo"
	"github.com/go-petr/pet-broker/pkg/dbpkg"
	"github.com/go-petr/pet-broker/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns account RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// NewTxRepoPGS returns account RepoPGS running inside an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (cash)
VALUES
    ($1)
RETURNING id, cash, version, created_at
`

// Create creates the account with the initial cash and returns it.
func (r *RepoPGS) Create(ctx context.Context, cash decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, cash)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Cash,
		&a.Version,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "accounts_cash_check" {
			return domain.Account{}, domain.ErrInvalidCash
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	a.Orders = []domain.Order{}

	return a, nil
}

const getQuery = `
SELECT
	id, cash, version, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id. The order history is loaded
// only when withOrders is set, from the same snapshot as the cash.
func (r *RepoPGS) Get(ctx context.Context, id int32, withOrders bool) (domain.Account, error) {
	if r.conn == nil || !withOrders {
		return r.get(ctx, id, withOrders)
	}

	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	a, err := NewTxRepoPGS(tx).get(ctx, id, withOrders)
	if err != nil {
		return domain.Account{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

func (r *RepoPGS) get(ctx context.Context, id int32, withOrders bool) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Cash,
		&a.Version,
		&a.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Int32("account_id", id).Msg("account not found")
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return domain.Account{}, errorspkg.ErrInternal
	}

	if !withOrders {
		return a, nil
	}

	a.Orders, err = orderrepo.NewRepoPGS(r.db).List(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	return a, nil
}

const updateCashQuery = `
UPDATE accounts
SET cash = $1, version = version + 1
WHERE id = $2 AND version = $3
RETURNING id, cash, version, created_at
`

const existsQuery = `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`

// Save stores the account cash and inserts its orders that have no ID yet.
//
// The update is conditioned on acc.Version, so a concurrent Save between
// loading and saving makes this one fail with domain.ErrVersionConflict.
func (r *RepoPGS) Save(ctx context.Context, acc domain.Account) (domain.Account, error) {
	if r.conn == nil {
		return r.save(ctx, acc)
	}

	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	saved, err := NewTxRepoPGS(tx).save(ctx, acc)
	if err != nil {
		return domain.Account{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	return saved, nil
}

func (r *RepoPGS) save(ctx context.Context, acc domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateCashQuery, acc.Cash, acc.ID, acc.Version)

	var saved domain.Account

	err := row.Scan(
		&saved.ID,
		&saved.Cash,
		&saved.Version,
		&saved.CreatedAt,
	)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		var exists bool
		if err := r.db.QueryRowContext(ctx, existsQuery, acc.ID).Scan(&exists); err != nil {
			l.Error().Err(err).Send()
			return domain.Account{}, errorspkg.ErrInternal
		}

		if !exists {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		return domain.Account{}, domain.ErrVersionConflict
	case err != nil:
		l.Error().Err(err).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "accounts_cash_check" {
			return domain.Account{}, domain.ErrInvalidCash
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	orderRepo := orderrepo.NewRepoPGS(r.db)

	saved.Orders = make([]domain.Order, 0, len(acc.Orders))

	for _, o := range acc.Orders {
		if o.ID == 0 {
			o.AccountID = acc.ID

			o, err = orderRepo.Create(ctx, o)
			if err != nil {
				return domain.Account{}, err
			}
		}

		saved.Orders = append(saved.Orders, o)
	}

	return saved, nil
}
