// Package main runs the broker API: clients, accounts and order admission.
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/pet-broker/cmd/httpserver"
	"github.com/go-petr/pet-broker/internal/middleware"
	"github.com/go-petr/pet-broker/pkg/configpkg"
	"github.com/go-petr/pet-broker/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer db.Close()

	if config.Environement != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}
	defer server.Close()

	logger.Info().Str("account_store", config.AccountStore).Msg("BROKER API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Error().Err(err).Msg("cannot start server")
	}
}
