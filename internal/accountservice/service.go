// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, cash decimal.Decimal) (domain.Account, error)
	Get(ctx context.Context, id int32, withOrders bool) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create opens an account with the given initial cash.
func (s *Service) Create(ctx context.Context, cash decimal.Decimal) (domain.Account, error) {
	if !cash.IsPositive() {
		zerolog.Ctx(ctx).Info().Str("cash", cash.String()).Msg("rejected non-positive initial cash")
		return domain.Account{}, domain.ErrInvalidCash
	}

	account, err := s.repo.Create(ctx, cash)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account with its order history.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id, true)
	if err != nil {
		return account, err
	}

	return account, nil
}
