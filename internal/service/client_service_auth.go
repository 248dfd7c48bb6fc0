package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-slice-keeper/internal/adapter"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/store"
	"github.com/MKhiriev/go-slice-keeper/internal/utils"
	"github.com/MKhiriev/go-slice-keeper/models"
)

// clientAuthService is the concrete implementation of ClientAuthService.
// It drives account auth through the adapter and persists the resulting
// session in the local store so the TUI can resume without re-login.
type clientAuthService struct {
	serverAdapter adapter.ServerAdapter
	localStore    store.LocalKeyStore
	logger        *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, localStore store.LocalKeyStore, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		serverAdapter: serverAdapter,
		localStore:    localStore,
		logger:        logger,
	}
}

// Register implements [ClientAuthService].
func (c *clientAuthService) Register(ctx context.Context, login, password string) error {
	if login == "" || password == "" {
		return ErrInvalidDataProvided
	}

	if _, err := c.serverAdapter.Register(ctx, models.User{Login: login, Password: password}); err != nil {
		return fmt.Errorf("registering account: %w", err)
	}

	return c.persistSession(ctx)
}

// Login implements [ClientAuthService].
func (c *clientAuthService) Login(ctx context.Context, login, password string) error {
	if login == "" || password == "" {
		return ErrInvalidDataProvided
	}

	if _, err := c.serverAdapter.Login(ctx, models.User{Login: login, Password: password}); err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	return c.persistSession(ctx)
}

// RestoreSession implements [ClientAuthService].
func (c *clientAuthService) RestoreSession(ctx context.Context) error {
	_, token, err := c.localStore.GetSession(ctx)
	if err != nil {
		return err
	}

	c.serverAdapter.SetToken(token)
	return nil
}

// Logout implements [ClientAuthService].
func (c *clientAuthService) Logout(ctx context.Context) error {
	c.serverAdapter.SetToken("")

	if err := c.localStore.ClearSession(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func (c *clientAuthService) persistSession(ctx context.Context) error {
	token := c.serverAdapter.Token()

	// the server keeps UserID out of response bodies; the token subject
	// is the only place the client can learn its own ID
	userID, err := utils.ExtractUserIDUnverified(token)
	if err != nil {
		c.logger.Err(err).Str("func", "*clientAuthService.persistSession").Msg("failed to read user ID from token")
	}

	if err := c.localStore.SaveSession(ctx, userID, token); err != nil {
		// The in-memory session still works; only resume-after-restart
		// is lost.
		c.logger.Err(err).Str("func", "*clientAuthService.persistSession").Msg("failed to persist session")
	}

	return nil
}
