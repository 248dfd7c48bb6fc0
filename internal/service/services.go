package service

import (
	"github.com/MKhiriev/go-slice-keeper/internal/config"
	"github.com/MKhiriev/go-slice-keeper/internal/crypto"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/store"
)

type Services struct {
	AuthService        AuthService
	SliceService       SliceService
	KeyRotationService KeyRotationService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:  NewAuthService(storages.UserRepository, cfg.App, logger),
		SliceService: NewSliceService(storages.SliceRepository, logger),
		KeyRotationService: NewKeyRotationService(
			storages.SliceRepository,
			crypto.NewCipherEngine(),
			crypto.NewSearchTokenizer(),
			logger,
		),
	}
}
