// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires terminal UI flows, client services, and the background key
// validation job into a single process lifecycle.
package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-slice-keeper/internal/config"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/service"
	"github.com/MKhiriev/go-slice-keeper/internal/store"
	"github.com/MKhiriev/go-slice-keeper/internal/tui"
	"github.com/MKhiriev/go-slice-keeper/internal/workers"
)

type App struct {
	services *service.ClientServices
	ui       *tui.TUI
	cfg      config.Client
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui *tui.TUI, cfg config.Client, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app requires services and ui")
	}
	return &App{services: services, ui: ui, cfg: cfg, logger: log}, nil
}

// Run drives the whole client session: restore or establish a session,
// load the locally persisted key, start the background key job, and hand
// control to the main UI loop. A logout restarts the cycle.
func (a *App) Run() error {
	ctx := context.Background()

	if err := a.services.AuthService.RestoreSession(ctx); err != nil {
		if !errors.Is(err, store.ErrLocalSessionNotFound) {
			return fmt.Errorf("restore session: %w", err)
		}
		if err := a.ui.LoginFlow(ctx); err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return err
		}
	}

	if err := a.services.KeyService.LoadKey(ctx); err != nil {
		a.logger.Err(err).Msg("loading persisted key failed, continuing without key")
	}

	keyJob := workers.NewWorkers(ctx, a.services.KeyJob, a.cfg.KeyCheckInterval)
	keyJob.Run()
	defer keyJob.Stop()

	logout, err := a.ui.MainLoop(ctx)
	if err != nil {
		return err
	}
	if logout {
		if err := a.services.AuthService.Logout(ctx); err != nil {
			a.logger.Err(err).Msg("logout failed")
		}
		return a.Run()
	}

	return nil
}
