// Package clientdelivery manages delivery layer of API clients.
package clientdelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/errorspkg"
	"github.com/go-petr/pet-broker/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by client delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package clientdelivery
type Service interface {
	Create(ctx context.Context, name, apiKey string) (domain.Client, error)
	CheckAPIKey(ctx context.Context, name, apiKey string) (domain.Client, error)
}

// SessionMaker facilitates session creation.
type SessionMaker interface {
	Create(ctx context.Context, arg domain.CreateSessionParams) (string, time.Time, domain.Session, error)
}

// Handler facilitates client delivery layer logic.
type Handler struct {
	service      Service
	sessionMaker SessionMaker
}

// NewHandler returns client handler.
func NewHandler(cs Service, sm SessionMaker) *Handler {
	return &Handler{
		service:      cs,
		sessionMaker: sm,
	}
}

type clientRequest struct {
	ClientName string `json:"client_name" binding:"required,alphanum"`
	APIKey     string `json:"api_key" binding:"required,min=16"`
}

type clientData struct {
	Client domain.Client `json:"client"`
}

// Create handles http request to register a client. The response carries an
// access token of the first client session.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req clientRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	client, err := h.service.Create(ctx, req.ClientName, req.APIKey)
	if err != nil {
		switch err {
		case domain.ErrClientAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	h.startSession(gctx, client)
}

// Login handles http request to authenticate a client and start a new session.
// All previous sessions of the client are deactivated.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req clientRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	client, err := h.service.CheckAPIKey(ctx, req.ClientName, req.APIKey)
	if err != nil {
		switch err {
		case domain.ErrClientNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrWrongAPIKey:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	h.startSession(gctx, client)
}

func (h *Handler) startSession(gctx *gin.Context, client domain.Client) {
	ctx := gctx.Request.Context()

	arg := domain.CreateSessionParams{
		ClientName: client.Name,
		UserAgent:  gctx.Request.UserAgent(),
		ClientIP:   gctx.ClientIP(),
	}

	accessToken, accessTokenExpiresAt, _, err := h.sessionMaker.Create(ctx, arg)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: &accessTokenExpiresAt,
		Data:                 clientData{Client: client},
	}

	gctx.JSON(http.StatusOK, res)
}
