// Package helpers provides seeding helpers shared by integration tests.
package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/pet-broker/internal/accountrepo"
	"github.com/go-petr/pet-broker/internal/clientrepo"
	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/internal/orderrepo"
	"github.com/go-petr/pet-broker/internal/sessionrepo"
	"github.com/go-petr/pet-broker/pkg/dbpkg"
	"github.com/go-petr/pet-broker/pkg/passpkg"
	"github.com/go-petr/pet-broker/pkg/randompkg"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedClient creates a random client and returns it together with its plain api key.
func SeedClient(t *testing.T, tx dbpkg.SQLInterface) (domain.Client, string) {
	t.Helper()

	apiKey := randompkg.APIKey()

	hashedAPIKey, err := passpkg.Hash(apiKey)
	if err != nil {
		t.Fatalf("passpkg.Hash(%q) returned error: %v", apiKey, err)
	}

	name := randompkg.ClientName()

	client, err := clientrepo.NewRepoPGS(tx).Create(context.Background(), name, hashedAPIKey)
	if err != nil {
		t.Fatalf("clientRepo.Create(context.Background(), %q, %q) returned error: %v", name, hashedAPIKey, err)
	}

	return client, apiKey
}

// SeedSession creates an active session of the client expiring in an hour.
func SeedSession(t *testing.T, tx dbpkg.SQLInterface, clientName string) domain.Session {
	t.Helper()

	arg := domain.CreateSessionParams{
		ID:         uuid.New(),
		ClientName: clientName,
		UserAgent:  randompkg.String(10),
		ClientIP:   "127.0.0.1",
		ExpiresAt:  time.Now().Add(time.Hour).UTC(),
	}

	session, err := sessionrepo.NewTxRepoPGS(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("sessionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return session
}

// SeedAccountWith1000Cash creates an account with 1000 of cash and no orders.
func SeedAccountWith1000Cash(t *testing.T, tx dbpkg.SQLInterface) domain.Account {
	t.Helper()

	cash := decimal.NewFromInt(1000)

	account, err := accountrepo.NewTxRepoPGS(tx).Create(context.Background(), cash)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %v) returned error: %v", cash, err)
	}

	return account
}

// SeedOrder inserts the order into the account history as is. Cash is not touched.
func SeedOrder(t *testing.T, tx dbpkg.SQLInterface, accountID int32, op domain.Operation) domain.Order {
	t.Helper()

	arg := domain.Order{
		AccountID:   accountID,
		Operation:   op,
		IssuerName:  randompkg.IssuerName(),
		TotalShares: randompkg.Shares(),
		SharePrice:  randompkg.MoneyAmountBetween(1, 100),
		Timestamp:   randompkg.MarketTime().Truncate(time.Second),
	}

	order, err := orderrepo.NewRepoPGS(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("orderRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return order
}
