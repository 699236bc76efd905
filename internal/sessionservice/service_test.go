package sessionservice

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/configpkg"
	"github.com/go-petr/pet-broker/pkg/errorspkg"
	"github.com/go-petr/pet-broker/pkg/randompkg"
	"github.com/go-petr/pet-broker/pkg/tokenpkg"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
)

var config configpkg.Config

func TestMain(m *testing.M) {
	config = configpkg.Config{
		TokenSymmetricKey:   randompkg.String(32),
		AccessTokenDuration: time.Minute,
	}

	os.Exit(m.Run())
}

type sessionParamsMatcher struct {
	clientName string
	captured   *domain.CreateSessionParams
}

func (m sessionParamsMatcher) Matches(x interface{}) bool {
	arg, ok := x.(domain.CreateSessionParams)
	if !ok || arg.ClientName != m.clientName || arg.ID == uuid.Nil || arg.ExpiresAt.IsZero() {
		return false
	}

	*m.captured = arg

	return true
}

func (m sessionParamsMatcher) String() string {
	return "session params of " + m.clientName
}

func TestCreate(t *testing.T) {
	t.Parallel()

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) failed: %v", config.TokenSymmetricKey, err)
	}

	clientName := randompkg.ClientName()

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo, captured *domain.CreateSessionParams)
		wantError  error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, captured *domain.CreateSessionParams) {
				repo.EXPECT().
					Create(gomock.Any(), sessionParamsMatcher{clientName, captured}).
					Times(1).
					DoAndReturn(func(_ context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
						return domain.Session{
							ID:         arg.ID,
							ClientName: arg.ClientName,
							IsActive:   true,
							ExpiresAt:  arg.ExpiresAt,
						}, nil
					})
			},
		},
		{
			name: "RepoInternalError",
			buildStubs: func(repo *MockRepo, captured *domain.CreateSessionParams) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.AssignableToTypeOf(domain.CreateSessionParams{})).
					Times(1).
					Return(domain.Session{}, errorspkg.ErrInternal)
			},
			wantError: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)

			sessionService, err := New(repo, config, tokenMaker)
			if err != nil {
				t.Fatalf("New(repo, config, tokenMaker) failed: %v", err)
			}

			var captured domain.CreateSessionParams

			tc.buildStubs(repo, &captured)

			arg := domain.CreateSessionParams{ClientName: clientName}

			accessToken, expiresAt, sess, err := sessionService.Create(context.Background(), arg)
			if err != tc.wantError {
				t.Fatalf("sessionService.Create(ctx, %+v) returned error %v, want %v", arg, err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			payload, err := tokenMaker.VerifyToken(accessToken)
			if err != nil {
				t.Fatalf("tokenMaker.VerifyToken(%v) returned error: %v", accessToken, err)
			}

			if payload.ID != captured.ID || sess.ID != captured.ID {
				t.Errorf("token id = %v, session id = %v, want both %v", payload.ID, sess.ID, captured.ID)
			}

			if !expiresAt.Equal(payload.ExpiredAt) || !captured.ExpiresAt.Equal(payload.ExpiredAt) {
				t.Errorf("expiresAt = %v, session expiry = %v, want %v", expiresAt, captured.ExpiresAt, payload.ExpiredAt)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	clientName := randompkg.ClientName()
	active := domain.Session{
		ID:         uuid.New(),
		ClientName: clientName,
		IsActive:   true,
		ExpiresAt:  time.Now().Add(time.Minute),
	}

	testCases := []struct {
		name       string
		clientName string
		session    domain.Session
		repoErr    error
		wantError  error
	}{
		{
			name:       "OK",
			clientName: clientName,
			session:    active,
		},
		{
			name:       "ErrSessionNotFound",
			clientName: clientName,
			repoErr:    domain.ErrSessionNotFound,
			wantError:  domain.ErrSessionNotFound,
		},
		{
			name:       "ErrInactiveSession",
			clientName: clientName,
			session: domain.Session{
				ID:         active.ID,
				ClientName: clientName,
				ExpiresAt:  active.ExpiresAt,
			},
			wantError: domain.ErrInactiveSession,
		},
		{
			name:       "ErrInvalidClient",
			clientName: "other" + clientName,
			session:    active,
			wantError:  domain.ErrInvalidClient,
		},
		{
			name:       "ErrExpiredSession",
			clientName: clientName,
			session: domain.Session{
				ID:         active.ID,
				ClientName: clientName,
				IsActive:   true,
				ExpiresAt:  time.Now().Add(-time.Minute),
			},
			wantError: domain.ErrExpiredSession,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			repo.EXPECT().Get(gomock.Any(), gomock.Eq(active.ID)).Times(1).Return(tc.session, tc.repoErr)

			tokenMaker, err := tokenpkg.NewJWTMaker(config.TokenSymmetricKey)
			if err != nil {
				t.Fatalf("tokenpkg.NewJWTMaker(%v) failed: %v", config.TokenSymmetricKey, err)
			}

			sessionService, err := New(repo, config, tokenMaker)
			if err != nil {
				t.Fatalf("New(repo, config, tokenMaker) failed: %v", err)
			}

			err = sessionService.Check(context.Background(), active.ID, tc.clientName)
			if err != tc.wantError {
				t.Errorf("Check(ctx, %v, %v) returned error %v, want %v", active.ID, tc.clientName, err, tc.wantError)
			}
		})
	}
}
