package main

import (
	"os"

	"github.com/emrekoc/campushire/internal/pkg/logger"
	"github.com/emrekoc/campushire/internal/server"
)

// @title CampusHire API
// @version 1.0
// @description Campus placement platform: colleges, job postings and the application lifecycle.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token issued by /auth/login

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}
}
