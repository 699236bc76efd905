package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/errorspkg"
	"github.com/go-petr/pet-broker/pkg/tokenpkg"
	"github.com/go-petr/pet-broker/pkg/web"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Authorization header format.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
	AuthPayloadKey = "authorization_payload"
)

// Authorization errors.
var (
	ErrAuthHeaderNotFound  = errors.New("authorization header is not provided")
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
)

// SessionChecker verifies that the session behind a token is still usable.
type SessionChecker interface {
	Check(ctx context.Context, id uuid.UUID, clientName string) error
}

// AddAuthorization creates a token for the client and sets it into the request header.
func AddAuthorization(r *http.Request, tokenMaker tokenpkg.Maker, authType, clientName string, duration time.Duration) error {
	token, _, err := tokenMaker.CreateToken(clientName, duration)
	if err != nil {
		return err
	}

	r.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))

	return nil
}

// AuthMiddleware authorizes requests carrying a bearer token of an active session.
func AuthMiddleware(tokenMaker tokenpkg.Maker, sessions SessionChecker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := gctx.Request.Context()
		l := zerolog.Ctx(ctx)

		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAuthHeaderNotFound))
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrBadAuthHeaderFormat))
			return
		}

		if strings.ToLower(fields[0]) != AuthTypeBearer {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrUnsupportedAuthType))
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			l.Info().Err(err).Send()
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		if err := sessions.Check(ctx, payload.ID, payload.ClientName); err != nil {
			l.Info().Err(err).Str("session_id", payload.ID.String()).Send()

			switch err {
			case domain.ErrSessionNotFound, domain.ErrInactiveSession,
				domain.ErrInvalidClient, domain.ErrExpiredSession:
				gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			default:
				gctx.AbortWithStatusJSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
			}

			return
		}

		gctx.Set(AuthPayloadKey, payload)
		gctx.Next()
	}
}
