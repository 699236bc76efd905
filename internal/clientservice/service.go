// Package clientservice manages business logic layer of API clients.
package clientservice

import (
	"context"

	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/errorspkg"
	"github.com/go-petr/pet-broker/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by client service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package clientservice
type Repo interface {
	Create(ctx context.Context, name, hashedAPIKey string) (domain.Client, error)
	Get(ctx context.Context, name string) (domain.Client, error)
}

// Service facilitates client service layer logic.
type Service struct {
	repo Repo
}

// New returns client service struct to manage client bussines logic.
func New(cr Repo) *Service {
	return &Service{
		repo: cr,
	}
}

// Create registers the client storing only the hash of its api key.
func (s *Service) Create(ctx context.Context, name, apiKey string) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	hashedAPIKey, err := passpkg.Hash(apiKey)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Client{}, errorspkg.ErrInternal
	}

	client, err := s.repo.Create(ctx, name, hashedAPIKey)
	if err != nil {
		return domain.Client{}, err
	}

	return client, nil
}

// CheckAPIKey checks if the api key is valid for the given client.
func (s *Service) CheckAPIKey(ctx context.Context, name, apiKey string) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	client, err := s.repo.Get(ctx, name)
	if err != nil {
		return domain.Client{}, err
	}

	if err := passpkg.Check(apiKey, client.HashedAPIKey); err != nil {
		l.Warn().Err(err).Str("client_name", name).Send()
		return domain.Client{}, domain.ErrWrongAPIKey
	}

	return client, nil
}
