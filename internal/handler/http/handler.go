package http

import (
	"time"

	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	// rotationTimeout bounds a whole key rotation request. Separate from
	// the router-level request timeout: a rotation rewrites the owner's
	// entire corpus and legitimately takes minutes.
	rotationTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, rotationTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:        services,
		rotationTimeout: rotationTimeout,
		logger:          logger,
	}
}
