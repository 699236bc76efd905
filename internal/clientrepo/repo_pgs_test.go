//go:build integration

package clientrepo_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/go-petr/pet-broker/internal/clientrepo"
	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/internal/integrationtest"
	"github.com/go-petr/pet-broker/internal/integrationtest/helpers"
	"github.com/go-petr/pet-broker/pkg/configpkg"
	"github.com/go-petr/pet-broker/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
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
	clientRepo := clientrepo.NewRepoPGS(tx)

	want := domain.Client{
		Name:         randompkg.ClientName(),
		HashedAPIKey: randompkg.String(60),
		CreatedAt:    time.Now(),
	}

	got, err := clientRepo.Create(context.Background(), want.Name, want.HashedAPIKey)
	if err != nil {
		t.Fatalf("clientRepo.Create(context.Background(), %q, %q) returned error: %v", want.Name, want.HashedAPIKey, err)
	}

	compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
	if diff := cmp.Diff(want, got, compareCreatedAt); diff != "" {
		t.Errorf("clientRepo.Create() returned unexpected diff (-want +got):\n%s", diff)
	}

	_, err = clientRepo.Create(context.Background(), want.Name, want.HashedAPIKey)
	if err != domain.ErrClientAlreadyExists {
		t.Errorf("second clientRepo.Create() returned error %v, want %v", err, domain.ErrClientAlreadyExists)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	clientRepo := clientrepo.NewRepoPGS(tx)

	want, _ := helpers.SeedClient(t, tx)

	got, err := clientRepo.Get(context.Background(), want.Name)
	if err != nil {
		t.Fatalf("clientRepo.Get(context.Background(), %q) returned error: %v", want.Name, err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("clientRepo.Get() returned unexpected diff (-want +got):\n%s", diff)
	}

	_, err = clientRepo.Get(context.Background(), randompkg.ClientName()+"missing")
	if err != domain.ErrClientNotFound {
		t.Errorf("clientRepo.Get() of unknown client returned error %v, want %v", err, domain.ErrClientNotFound)
	}
}
