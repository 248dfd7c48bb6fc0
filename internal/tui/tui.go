// Package tui implements the interactive terminal UI of the client.
//
// The UI is built with Bubble Tea: a single appModel owns all screens and
// dispatches asynchronous commands against the client services. Content is
// decrypted only for display; everything that leaves the UI towards the
// server is already encrypted by the service layer.
package tui

import (
	"context"

	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services *service.ClientServices
}

func New(services *service.ClientServices, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services}, nil
}

// LoginFlow runs the authentication screens (welcome, login, register) and
// blocks until the user is authenticated or quits.
func (t *TUI) LoginFlow(ctx context.Context) error {
	model := newLoginAppModel(ctx, t.services)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	return result.err
}

// MainLoop runs the main screens (list, detail, forms, key management) and
// blocks until the user quits or logs out. Returns logout=true when the
// user asked to re-authenticate.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	model := newMainAppModel(ctx, t.services)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, result.err
}
