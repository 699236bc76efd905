// Package orderdelivery manages delivery layer of orders.
package orderdelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/errorspkg"
	"github.com/go-petr/pet-broker/pkg/web"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service provides service layer interface needed by order delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package orderdelivery
type Service interface {
	Submit(ctx context.Context, accountID int32, o domain.Order) (domain.OrderOutcome, error)
}

// Handler facilitates order delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns order handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type accountURI struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type submitRequest struct {
	Timestamp   int64           `json:"timestamp" binding:"required,gt=0"`
	Operation   string          `json:"operation" binding:"required,operation"`
	IssuerName  string          `json:"issuer_name" binding:"required"`
	TotalShares int64           `json:"total_shares" binding:"required,gt=0,max=1000000000"`
	SharePrice  decimal.Decimal `json:"share_price"`
}

type data struct {
	CurrentBalance domain.OrderOutcome `json:"current_balance"`
}

// Submit handles http request to place an order on the account.
func (h *Handler) Submit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	var req submitRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	// Binding has already rejected anything but BUY and SELL.
	op, _ := domain.ParseOperation(req.Operation)

	order := domain.Order{
		Operation:   op,
		IssuerName:  req.IssuerName,
		TotalShares: req.TotalShares,
		SharePrice:  req.SharePrice,
		Timestamp:   time.Unix(req.Timestamp, 0).UTC(),
	}

	outcome, err := h.service.Submit(ctx, uri.ID, order)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case domain.ErrInvalidOperation, domain.ErrEmptyIssuer, domain.ErrInvalidShares,
			domain.ErrInvalidSharePrice, domain.ErrMissingTimestamp:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case domain.ErrTooManyConflicts:
			gctx.JSON(http.StatusConflict, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{outcome}})
}
