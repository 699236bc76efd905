// Package sessionservice manages business logic layer of sessions.
package sessionservice

import (
	"context"
	"errors"
	"time"

	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/configpkg"
	"github.com/go-petr/pet-broker/pkg/errorspkg"
	"github.com/go-petr/pet-broker/pkg/tokenpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by session service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package sessionservice
type Repo interface {
	// Create stores the session and deactivates all other sessions of the client.
	Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)
}

// Service facilitates session service layer logic.
type Service struct {
	repo       Repo
	config     configpkg.Config
	tokenMaker tokenpkg.Maker
}

// New returns session service struct to manage sessions.
func New(repo Repo, config configpkg.Config, tokenMaker tokenpkg.Maker) (*Service, error) {
	if tokenMaker == nil {
		return nil, errors.New("token maker is required")
	}

	if config.AccessTokenDuration <= 0 {
		return nil, errors.New("access token duration must be positive")
	}

	return &Service{
		repo:       repo,
		config:     config,
		tokenMaker: tokenMaker,
	}, nil
}

// Create starts a new session for the client and returns its access token.
// Every earlier session of the client stops being usable.
func (s *Service) Create(ctx context.Context, arg domain.CreateSessionParams) (string, time.Time, domain.Session, error) {
	l := zerolog.Ctx(ctx)

	id, err := uuid.NewRandom()
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, errorspkg.ErrInternal
	}

	accessToken, payload, err := s.tokenMaker.CreateSessionToken(id, arg.ClientName, s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, errorspkg.ErrInternal
	}

	arg.ID = id
	arg.ExpiresAt = payload.ExpiredAt

	session, err := s.repo.Create(ctx, arg)
	if err != nil {
		return "", time.Time{}, domain.Session{}, err
	}

	return accessToken, payload.ExpiredAt, session, nil
}

// Check returns nil if the session exists, is active, belongs to the client and
// has not expired.
func (s *Service) Check(ctx context.Context, id uuid.UUID, clientName string) error {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	switch {
	case !session.IsActive:
		return domain.ErrInactiveSession
	case session.ClientName != clientName:
		return domain.ErrInvalidClient
	case time.Now().After(session.ExpiresAt):
		return domain.ErrExpiredSession
	}

	return nil
}
