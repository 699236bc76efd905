// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCash indicates that the initial cash is not positive.
	ErrInvalidCash = errors.New("cash must be positive")
	// ErrVersionConflict indicates that the account was changed since it was loaded.
	ErrVersionConflict = errors.New("account version conflict")
	// ErrTooManyConflicts indicates that an order could not be admitted after all attempts.
	ErrTooManyConflicts = errors.New("account is busy, try again later")
)

// Account holds the client's cash and the history of accepted orders.
type Account struct {
	ID        int32           `json:"id"`
	Cash      decimal.Decimal `json:"cash"`
	Version   int32           `json:"-"`
	Orders    []Order         `json:"-"`
	CreatedAt time.Time       `json:"created_at"`
}

// Holding is the net position in one issuer derived from the order history.
type Holding struct {
	IssuerName  string          `json:"issuer_name"`
	TotalShares int64           `json:"total_shares"`
	SharePrice  decimal.Decimal `json:"share_price"`
}

// NetShares returns bought minus sold shares of the issuer.
func (a Account) NetShares(issuer string) int64 {
	var n int64

	for _, o := range a.Orders {
		if o.IssuerName != issuer {
			continue
		}

		switch o.Operation {
		case OperationBuy:
			n += o.TotalShares
		case OperationSell:
			n -= o.TotalShares
		}
	}

	return n
}

// Holdings aggregates the order history per issuer in order of first
// appearance. SharePrice is the price of the latest order for the issuer.
func (a Account) Holdings() []Holding {
	holdings := make([]Holding, 0)
	index := make(map[string]int)

	for _, o := range a.Orders {
		i, ok := index[o.IssuerName]
		if !ok {
			i = len(holdings)
			index[o.IssuerName] = i
			holdings = append(holdings, Holding{IssuerName: o.IssuerName})
		}

		switch o.Operation {
		case OperationBuy:
			holdings[i].TotalShares += o.TotalShares
		case OperationSell:
			holdings[i].TotalShares -= o.TotalShares
		}

		holdings[i].SharePrice = o.SharePrice
	}

	return holdings
}

// Apply moves the cash by the order amount and appends the order.
// The caller is responsible for checking the order is admissible.
func (a *Account) Apply(o Order) {
	switch o.Operation {
	case OperationBuy:
		a.Cash = a.Cash.Sub(o.TotalAmount())
	case OperationSell:
		a.Cash = a.Cash.Add(o.TotalAmount())
	}

	o.AccountID = a.ID
	a.Orders = append(a.Orders, o)
}

// AccountView is the account representation returned to clients.
type AccountView struct {
	ID        int32           `json:"id"`
	Cash      decimal.Decimal `json:"cash"`
	Issuers   []Holding       `json:"issuers"`
	CreatedAt time.Time       `json:"created_at"`
}

// View renders the account with its aggregated holdings.
func (a Account) View() AccountView {
	return AccountView{
		ID:        a.ID,
		Cash:      a.Cash,
		Issuers:   a.Holdings(),
		CreatedAt: a.CreatedAt,
	}
}
