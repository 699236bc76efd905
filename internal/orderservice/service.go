// Package orderservice manages order admission against accounts.
package orderservice

import (
	"context"
	"errors"

	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/lockpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by order service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package orderservice
type Repo interface {
	Get(ctx context.Context, id int32, withOrders bool) (domain.Account, error)
	// Save persists cash and the orders without ID. It fails with
	// domain.ErrVersionConflict when the stored version differs from acc.Version.
	Save(ctx context.Context, acc domain.Account) (domain.Account, error)
}

// RuleSet evaluates business rules for a candidate order.
type RuleSet interface {
	Evaluate(ctx context.Context, acc domain.Account, o domain.Order) []domain.BusinessErrorCode
}

// Service facilitates order admission logic.
type Service struct {
	repo        Repo
	rules       RuleSet
	maxAttempts int
	locks       *lockpkg.KeyMutex[int32]
}

// New returns order service struct to manage order admission.
func New(repo Repo, rules RuleSet, maxAttempts int) *Service {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Service{
		repo:        repo,
		rules:       rules,
		maxAttempts: maxAttempts,
		locks:       lockpkg.NewKeyMutex[int32](),
	}
}

// Submit admits the order to the account if it satisfies every business rule.
//
// Rule violations are not errors: the outcome lists them and carries the
// unchanged account state. Errors are returned for invalid orders, unknown
// accounts and when the account kept changing under every attempt.
func (s *Service) Submit(ctx context.Context, accountID int32, o domain.Order) (domain.OrderOutcome, error) {
	l := zerolog.Ctx(ctx)

	if err := o.Validate(); err != nil {
		l.Info().Err(err).Send()
		return domain.OrderOutcome{}, err
	}

	unlock := s.locks.Lock(accountID)
	defer unlock()

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		outcome, err := s.admit(ctx, accountID, o)
		if errors.Is(err, domain.ErrVersionConflict) {
			l.Warn().Int32("account_id", accountID).Int("attempt", attempt).Msg("account changed concurrently, retrying")
			continue
		}

		return outcome, err
	}

	l.Error().Int32("account_id", accountID).Int("attempts", s.maxAttempts).Msg("order admission gave up")

	return domain.OrderOutcome{}, domain.ErrTooManyConflicts
}

func (s *Service) admit(ctx context.Context, accountID int32, o domain.Order) (domain.OrderOutcome, error) {
	acc, err := s.repo.Get(ctx, accountID, true)
	if err != nil {
		return domain.OrderOutcome{}, err
	}

	if violations := s.rules.Evaluate(ctx, acc, o); len(violations) > 0 {
		return domain.NewOrderOutcome(acc, violations), nil
	}

	acc.Apply(o)

	saved, err := s.repo.Save(ctx, acc)
	if err != nil {
		return domain.OrderOutcome{}, err
	}

	return domain.NewOrderOutcome(saved, nil), nil
}
