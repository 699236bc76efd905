//go:build integration

package sessionrepo_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/internal/integrationtest"
	"github.com/go-petr/pet-broker/internal/integrationtest/helpers"
	"github.com/go-petr/pet-broker/internal/sessionrepo"
	"github.com/go-petr/pet-broker/pkg/configpkg"
	"github.com/go-petr/pet-broker/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	sessionRepo := sessionrepo.NewTxRepoPGS(tx)
	ctx := context.Background()

	client, _ := helpers.SeedClient(t, tx)
	previous := helpers.SeedSession(t, tx, client.Name)

	arg := domain.CreateSessionParams{
		ID:         uuid.New(),
		ClientName: client.Name,
		UserAgent:  randompkg.String(10),
		ClientIP:   "10.0.0.1",
		ExpiresAt:  time.Now().Add(time.Hour).UTC(),
	}

	got, err := sessionRepo.Create(ctx, arg)
	if err != nil {
		t.Fatalf("sessionRepo.Create(ctx, %+v) returned error: %v", arg, err)
	}

	want := domain.Session{
		ID:         arg.ID,
		ClientName: arg.ClientName,
		UserAgent:  arg.UserAgent,
		ClientIP:   arg.ClientIP,
		IsActive:   true,
		ExpiresAt:  arg.ExpiresAt,
		CreatedAt:  time.Now(),
	}

	compareTimes := cmpopts.EquateApproxTime(time.Second)
	if diff := cmp.Diff(want, got, compareTimes); diff != "" {
		t.Errorf("sessionRepo.Create() returned unexpected diff (-want +got):\n%s", diff)
	}

	stale, err := sessionRepo.Get(ctx, previous.ID)
	if err != nil {
		t.Fatalf("sessionRepo.Get(ctx, %v) returned error: %v", previous.ID, err)
	}

	if stale.IsActive {
		t.Errorf("previous session %v is still active", previous.ID)
	}
}

func TestCreateUnknownClient(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)

	arg := domain.CreateSessionParams{
		ID:         uuid.New(),
		ClientName: randompkg.ClientName() + "missing",
		ExpiresAt:  time.Now().Add(time.Hour),
	}

	_, err := sessionrepo.NewTxRepoPGS(tx).Create(context.Background(), arg)
	if err != domain.ErrClientNotFound {
		t.Errorf("sessionRepo.Create() returned error %v, want %v", err, domain.ErrClientNotFound)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	sessionRepo := sessionrepo.NewTxRepoPGS(tx)

	client, _ := helpers.SeedClient(t, tx)
	want := helpers.SeedSession(t, tx, client.Name)

	got, err := sessionRepo.Get(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("sessionRepo.Get(context.Background(), %v) returned error: %v", want.ID, err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sessionRepo.Get() returned unexpected diff (-want +got):\n%s", diff)
	}

	_, err = sessionRepo.Get(context.Background(), uuid.New())
	if err != domain.ErrSessionNotFound {
		t.Errorf("sessionRepo.Get() of unknown session returned error %v, want %v", err, domain.ErrSessionNotFound)
	}
}
