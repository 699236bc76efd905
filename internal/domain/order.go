package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidOperation indicates that the operation is neither BUY nor SELL.
	ErrInvalidOperation = errors.New("operation must be BUY or SELL")
	// ErrEmptyIssuer indicates that the issuer name is missing.
	ErrEmptyIssuer = errors.New("issuer name is required")
	// ErrInvalidShares indicates that the number of shares is not positive
	// or exceeds MaxTotalShares.
	ErrInvalidShares = errors.New("total shares must be between 1 and 1000000000")
	// ErrInvalidSharePrice indicates that the share price is not positive.
	ErrInvalidSharePrice = errors.New("share price must be positive")
	// ErrMissingTimestamp indicates that the order has no timestamp.
	ErrMissingTimestamp = errors.New("timestamp is required")
)

// MaxTotalShares bounds a single order so that summing the shares of a
// history can not overflow int64.
const MaxTotalShares = 1_000_000_000

// Operation is the side of an order.
type Operation string

// Supported operations.
const (
	OperationBuy  Operation = "BUY"
	OperationSell Operation = "SELL"
)

// ParseOperation converts s into an Operation ignoring case.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(strings.ToUpper(strings.TrimSpace(s))); op {
	case OperationBuy, OperationSell:
		return op, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOperation, s)
	}
}

// Valid reports whether op is a known operation.
func (op Operation) Valid() bool {
	return op == OperationBuy || op == OperationSell
}

// Order holds a buy or sell request for an issuer's shares.
type Order struct {
	ID          int64           `json:"id"`
	AccountID   int32           `json:"account_id"`
	Operation   Operation       `json:"operation"`
	IssuerName  string          `json:"issuer_name"`
	TotalShares int64           `json:"total_shares"`
	SharePrice  decimal.Decimal `json:"share_price"`
	Timestamp   time.Time       `json:"timestamp"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TotalAmount returns shares multiplied by price.
func (o Order) TotalAmount() decimal.Decimal {
	return o.SharePrice.Mul(decimal.NewFromInt(o.TotalShares))
}

// Validate checks the order fields. It returns the first violated sentinel.
func (o Order) Validate() error {
	switch {
	case !o.Operation.Valid():
		return ErrInvalidOperation
	case strings.TrimSpace(o.IssuerName) == "":
		return ErrEmptyIssuer
	case o.TotalShares <= 0, o.TotalShares > MaxTotalShares:
		return ErrInvalidShares
	case !o.SharePrice.IsPositive():
		return ErrInvalidSharePrice
	case o.Timestamp.IsZero():
		return ErrMissingTimestamp
	}

	return nil
}

// BusinessErrorCode is a reason an order was not admitted.
type BusinessErrorCode string

// Business rule violations.
const (
	InsufficientBalance BusinessErrorCode = "INSUFFICIENT_BALANCE"
	InsufficientStocks  BusinessErrorCode = "INSUFFICIENT_STOCKS"
	DuplicatedOperation BusinessErrorCode = "DUPLICATED_OPERATION"
	ClosedMarket        BusinessErrorCode = "CLOSED_MARKET"
)

// OrderOutcome is the account state after an admission attempt.
type OrderOutcome struct {
	Cash           decimal.Decimal     `json:"cash"`
	Issuers        []Holding           `json:"issuers"`
	BusinessErrors []BusinessErrorCode `json:"business_errors"`
}

// NewOrderOutcome snapshots the account together with the violations.
func NewOrderOutcome(a Account, violations []BusinessErrorCode) OrderOutcome {
	if violations == nil {
		violations = []BusinessErrorCode{}
	}

	return OrderOutcome{
		Cash:           a.Cash,
		Issuers:        a.Holdings(),
		BusinessErrors: violations,
	}
}

// Accepted reports whether the order was applied.
func (o OrderOutcome) Accepted() bool {
	return len(o.BusinessErrors) == 0
}
