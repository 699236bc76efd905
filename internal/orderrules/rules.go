// Package orderrules evaluates the business rules an order must satisfy
// before it is applied to an account.
package orderrules

import (
	"context"
	"fmt"
	"time"

	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/configpkg"
	"github.com/rs/zerolog"
)

// Config holds the rule parameters.
//
// MarketOpensAt and MarketClosesAt are offsets from midnight in Location.
type Config struct {
	DuplicateWindow time.Duration
	MarketOpensAt   time.Duration
	MarketClosesAt  time.Duration
	Location        *time.Location
}

// DefaultConfig returns a 5 minute duplicate window and a 06:00-15:00 UTC market.
func DefaultConfig() Config {
	return Config{
		DuplicateWindow: 5 * time.Minute,
		MarketOpensAt:   6 * time.Hour,
		MarketClosesAt:  15 * time.Hour,
		Location:        time.UTC,
	}
}

// ConfigFrom converts the application configuration into rule parameters.
func ConfigFrom(c configpkg.Config) (Config, error) {
	loc, err := time.LoadLocation(c.MarketTimezone)
	if err != nil {
		return Config{}, fmt.Errorf("load market timezone: %w", err)
	}

	return Config{
		DuplicateWindow: c.DuplicatedOrderThreshold,
		MarketOpensAt:   time.Duration(c.MarketOpensAt) * time.Hour,
		MarketClosesAt:  time.Duration(c.MarketClosesAt) * time.Hour,
		Location:        loc,
	}, nil
}

type rule struct {
	name  string
	code  domain.BusinessErrorCode
	check func(cfg Config, acc domain.Account, o domain.Order) (violated bool)
}

// registry is evaluated in order, which fixes the order of reported codes.
var registry = []rule{
	{name: "balance", code: domain.InsufficientBalance, check: insufficientBalance},
	{name: "stock", code: domain.InsufficientStocks, check: insufficientStocks},
	{name: "duplicate", code: domain.DuplicatedOperation, check: duplicatedOperation},
	{name: "market", code: domain.ClosedMarket, check: closedMarket},
}

// Set evaluates every rule against an account and a candidate order.
type Set struct {
	cfg Config
}

// New returns a rule set with the given parameters.
func New(cfg Config) *Set {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Set{cfg: cfg}
}

// Evaluate returns all violated rules. Rules do not short-circuit each other.
// The account is expected to hold its full order history.
func (s *Set) Evaluate(ctx context.Context, acc domain.Account, o domain.Order) []domain.BusinessErrorCode {
	l := zerolog.Ctx(ctx)

	violations := make([]domain.BusinessErrorCode, 0, len(registry))

	for _, r := range registry {
		if r.check(s.cfg, acc, o) {
			l.Debug().Str("rule", r.name).Int32("account_id", acc.ID).Msg("order violates rule")
			violations = append(violations, r.code)
		}
	}

	return violations
}

func insufficientBalance(_ Config, acc domain.Account, o domain.Order) bool {
	return o.Operation == domain.OperationBuy && o.TotalAmount().GreaterThan(acc.Cash)
}

func insufficientStocks(_ Config, acc domain.Account, o domain.Order) bool {
	return o.Operation == domain.OperationSell && o.TotalShares > acc.NetShares(o.IssuerName)
}

func duplicatedOperation(cfg Config, acc domain.Account, o domain.Order) bool {
	for _, prev := range acc.Orders {
		if prev.Operation != o.Operation || prev.IssuerName != o.IssuerName || !prev.SharePrice.Equal(o.SharePrice) {
			continue
		}

		diff := o.Timestamp.Sub(prev.Timestamp)
		if diff < 0 {
			diff = -diff
		}

		if diff < cfg.DuplicateWindow {
			return true
		}
	}

	return false
}

func closedMarket(cfg Config, _ domain.Account, o domain.Order) bool {
	tod := timeOfDay(o.Timestamp.In(cfg.Location))
	return tod < cfg.MarketOpensAt || tod > cfg.MarketClosesAt
}

func timeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}
