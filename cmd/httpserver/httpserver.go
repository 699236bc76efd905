// Package httpserver manages server creation and api routing.
package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/cockroachdb/pebble"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-broker/internal/accountdelivery"
	"github.com/go-petr/pet-broker/internal/accountrepo"
	"github.com/go-petr/pet-broker/internal/accountservice"
	"github.com/go-petr/pet-broker/internal/clientdelivery"
	"github.com/go-petr/pet-broker/internal/clientrepo"
	"github.com/go-petr/pet-broker/internal/clientservice"
	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/internal/middleware"
	"github.com/go-petr/pet-broker/internal/orderdelivery"
	"github.com/go-petr/pet-broker/internal/orderrules"
	"github.com/go-petr/pet-broker/internal/orderservice"
	"github.com/go-petr/pet-broker/internal/sessionrepo"
	"github.com/go-petr/pet-broker/internal/sessionservice"
	"github.com/go-petr/pet-broker/pkg/configpkg"
	"github.com/go-petr/pet-broker/pkg/dbpkg"
	"github.com/go-petr/pet-broker/pkg/tokenpkg"
)

// Server holds db connections, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	KV     *pebble.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Close releases the embedded account store if it was opened.
func (s *Server) Close() error {
	if s.KV == nil {
		return nil
	}

	return s.KV.Close()
}

type accountStore interface {
	Create(ctx context.Context, cash decimal.Decimal) (domain.Account, error)
	Get(ctx context.Context, id int32, withOrders bool) (domain.Account, error)
	Save(ctx context.Context, acc domain.Account) (domain.Account, error)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	server := &Server{
		DB:     conn,
		Config: config,
	}

	var accounts accountStore

	switch config.AccountStore {
	case configpkg.StorePebble:
		kv, err := dbpkg.SetupPebble(config.PebbleDir)
		if err != nil {
			return nil, err
		}

		server.KV = kv
		accounts = accountrepo.NewRepoPebble(kv)
	default:
		accounts = accountrepo.NewRepoPGS(conn)
	}

	clientRepo := clientrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.New(config.TokenKind, config.TokenSymmetricKey)
	if err != nil {
		server.Close()
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	rulesConfig, err := orderrules.ConfigFrom(config)
	if err != nil {
		server.Close()
		return nil, err
	}

	clientService := clientservice.New(clientRepo)
	accountService := accountservice.New(accounts)
	orderService := orderservice.New(accounts, orderrules.New(rulesConfig), config.OrderMaxAttempts)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		server.Close()
		return nil, errors.New("cannot initialize session service")
	}

	clientHandler := clientdelivery.NewHandler(clientService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	orderHandler := orderdelivery.NewHandler(orderService)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("operation", orderdelivery.ValidOperation)
		if err != nil {
			server.Close()
			return nil, errors.New("cannot register operation validator")
		}
	}

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/clients", clientHandler.Create)
	engine.POST("/sessions", clientHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker, sessionService))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.POST("/accounts/:id/orders", orderHandler.Submit)

	server.Engine = engine

	return server, nil
}
