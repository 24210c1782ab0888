package main

import (
	"os"

	"github.com/emirkaya/schoolhub/internal/pkg/logger"
	"github.com/emirkaya/schoolhub/internal/server"
)

// @title SchoolHub API
// @version 1.0
// @description REST API for school administration: accounts, classes, enrollments and grades

// @contact.name API Support
// @contact.email support@schoolhub.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Opaque session token issued by the login endpoint

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
