package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-slice-keeper/internal/crypto"
	"github.com/MKhiriev/go-slice-keeper/internal/service"
	"github.com/MKhiriev/go-slice-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenWelcome screen = iota
	screenLogin
	screenRegister
	screenList
	screenDetail
	screenTypeSelect
	screenForm
	screenUnlock
	screenRotate
)

type appMode int

const (
	modeLogin appMode = iota
	modeMain
)

type appModel struct {
	ctx           context.Context
	services      *service.ClientServices
	mode          appMode
	currentScreen screen

	welcome    welcomeModel
	login      loginModel
	register   registerModel
	list       listModel
	detail     detailModel
	typeSelect typeSelectModel
	form       formModel
	unlock     unlockModel
	rotate     rotateModel

	err           error
	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete string
	logout        bool
}

func newLoginAppModel(ctx context.Context, services *service.ClientServices) appModel {
	return appModel{
		ctx:           ctx,
		services:      services,
		mode:          modeLogin,
		currentScreen: screenWelcome,
		welcome:       newWelcomeModel(),
		login:         newLoginModel(),
		register:      newRegisterModel(),
		list:          newListModel(),
		typeSelect:    newTypeSelectModel(),
	}
}

func newMainAppModel(ctx context.Context, services *service.ClientServices) appModel {
	m := newLoginAppModel(ctx, services)
	m.mode = modeMain
	m.currentScreen = screenList
	m.list.loading = true
	m.list.keyHeld = services.KeyService.HasKey()
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.mode == modeMain {
		return tea.Batch(m.list.spinner.Tick, m.cmdLoadList())
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				if m.pendingDelete == "" {
					return m, nil
				}
				return m, m.cmdDeleteSlice(m.pendingDelete)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = ""
			}
			return m, nil
		}
	case authDoneMsg:
		m.setSubmitting(false)
		if msg.err != nil {
			m.showErrorf(humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		return m, tea.Quit
	case listLoadedMsg:
		m.list.loading = false
		if msg.err != nil {
			m.showErrorf(humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.list.items = msg.items
		m.list.searched = msg.searched
		if m.list.idx >= len(m.list.items) {
			m.list.idx = len(m.list.items) - 1
		}
		if m.list.idx < 0 {
			m.list.idx = 0
		}
		return m, nil
	case sliceSavedMsg:
		m.setSubmitting(false)
		if msg.err != nil {
			m.showErrorf(humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.currentScreen = screenList
		m.list.loading = true
		return m, m.cmdLoadList()
	case sliceDeletedMsg:
		if msg.err != nil {
			m.showErrorf(humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		m.pendingDelete = ""
		m.currentScreen = screenList
		m.list.loading = true
		return m, m.cmdLoadList()
	case keyUnlockedMsg:
		m.unlock.submitting = false
		if msg.err != nil {
			m.unlock.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		if !msg.valid {
			m.unlock.errMsg = "Кодовая фраза не подходит к данным"
			return m, nil
		}
		m.currentScreen = screenList
		m.list.keyHeld = true
		m.list.loading = true
		return m, m.cmdLoadList()
	case keyChangedMsg:
		m.rotate.submitting = false
		if msg.err != nil {
			m.rotate.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.currentScreen = screenList
		m.list.keyHeld = m.services.KeyService.HasKey()
		m.list.status = fmt.Sprintf("Ключ обновлён, перешифровано записей: %d", msg.updated)
		m.list.loading = true
		return m, tea.Batch(m.cmdLoadList(), cmdClearStatus())
	case copiedMsg:
		if m.currentScreen == screenDetail {
			m.detail.status = "Скопировано!"
		}
		m.list.status = "Скопировано!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.detail.status = ""
		m.list.status = ""
		return m, nil
	case spinner.TickMsg:
		if m.list.loading {
			var cmd tea.Cmd
			m.list.spinner, cmd = m.list.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenWelcome:
		return m.updateWelcome(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenTypeSelect:
		return m.updateTypeSelect(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenUnlock:
		return m.updateUnlock(msg)
	case screenRotate:
		return m.updateRotate(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenWelcome:
		body = m.welcome.View()
	case screenLogin:
		body = m.login.View()
	case screenRegister:
		body = m.register.View()
	case screenList:
		body = m.list.View()
	case screenDetail:
		body = m.detail.View()
	case screenTypeSelect:
		body = m.typeSelect.View()
	case screenForm:
		body = m.form.View()
	case screenUnlock:
		body = m.unlock.View()
	case screenRotate:
		body = m.rotate.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m *appModel) setSubmitting(v bool) {
	m.login.submitting = v
	m.register.submitting = v
	m.form.submitting = v
}

func (m appModel) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.welcome.idx > 0 {
			m.welcome.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.welcome.idx < len(m.welcome.items)-1 {
			m.welcome.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if m.welcome.idx == 0 {
			m.currentScreen = screenLogin
		} else {
			m.currentScreen = screenRegister
		}
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case keyMsg.String() == "ctrl+c":
			m.err = ErrUserQuit
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.login = focusNextLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = focusPrevLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			login := strings.TrimSpace(m.login.inputs[0].Value())
			pass := m.login.inputs[1].Value()
			if login == "" || pass == "" {
				m.showErrorf("Логин и пароль обязательны")
				return m, nil
			}
			m.login.submitting = true
			return m, m.cmdLogin(login, pass)
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case keyMsg.String() == "ctrl+c":
			m.err = ErrUserQuit
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.register = focusNextRegister(m.register)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.register = focusPrevRegister(m.register)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.register.submitting {
				return m, nil
			}
			login := strings.TrimSpace(m.register.inputs[0].Value())
			pass := m.register.inputs[1].Value()
			repeat := m.register.inputs[2].Value()
			if login == "" || pass == "" {
				m.showErrorf("Логин и пароль обязательны")
				return m, nil
			}
			if pass != repeat {
				m.showErrorf("Пароли не совпадают")
				return m, nil
			}
			m.register.submitting = true
			return m, m.cmdRegister(login, pass)
		}
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.list.searching {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.list.searching = false
			m.list.search.Blur()
			m.list.search.SetValue("")
			m.list.loading = true
			return m, m.cmdLoadList()
		case key.Matches(keyMsg, keys.enter):
			query := strings.TrimSpace(m.list.search.Value())
			if utf8.RuneCountInString(query) < crypto.MinQueryLength {
				m.showErrorf(fmt.Sprintf("Запрос должен быть не короче %d символов", crypto.MinQueryLength))
				return m, nil
			}
			m.list.searching = false
			m.list.search.Blur()
			m.list.loading = true
			return m, m.cmdSearch(query)
		}

		var cmd tea.Cmd
		m.list.search, cmd = m.list.search.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.list.idx < len(m.list.items)-1 {
			m.list.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		item, ok := m.list.current()
		if !ok {
			return m, nil
		}
		m.detail = detailModel{item: item}
		m.currentScreen = screenDetail
	case key.Matches(keyMsg, keys.esc):
		if m.list.searched {
			m.list.search.SetValue("")
			m.list.loading = true
			return m, m.cmdLoadList()
		}
	case key.Matches(keyMsg, keys.search):
		m.list.searching = true
		m.list.search.Focus()
	case key.Matches(keyMsg, keys.newItem):
		m.currentScreen = screenTypeSelect
	case key.Matches(keyMsg, keys.unlock):
		m.unlock = newUnlockModel()
		m.currentScreen = screenUnlock
	case key.Matches(keyMsg, keys.rotate):
		m.rotate = newRotateModel()
		m.currentScreen = screenRotate
	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
		return m, nil
	case key.Matches(keyMsg, keys.edit):
		item := m.detail.item
		m.form = newFormModel(item.Type, &item)
		m.currentScreen = screenForm
		return m, nil
	case key.Matches(keyMsg, keys.delete):
		m.showConfirm = true
		m.confirm.message = fitText(firstLine(m.detail.item.Content), 30)
		m.pendingDelete = m.detail.item.ClientSideID
		return m, nil
	case key.Matches(keyMsg, keys.copy):
		if m.detail.item.Content == "" {
			return m, nil
		}
		return m, cmdCopyToClipboard(m.detail.item.Content)
	}

	return m, nil
}

func (m appModel) updateTypeSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
	case key.Matches(keyMsg, keys.up):
		if m.typeSelect.idx > 0 {
			m.typeSelect.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.typeSelect.idx < len(m.typeSelect.items)-1 {
			m.typeSelect.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		m.form = newFormModel(m.typeSelect.items[m.typeSelect.idx], nil)
		m.currentScreen = screenForm
	}

	return m, nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			if m.form.editing {
				m.currentScreen = screenDetail
			} else {
				m.currentScreen = screenList
			}
			return m, nil
		case "ctrl+s":
			if m.form.submitting {
				return m, nil
			}
			text := strings.TrimSpace(m.form.content.Value())
			if text == "" {
				m.showErrorf("Текст записи обязателен")
				return m, nil
			}
			m.form.submitting = true
			if m.form.editing {
				return m, m.cmdUpdateSlice(m.form.clientSideID, m.form.sliceType, text)
			}
			return m, m.cmdCreateSlice(m.form.sliceType, text)
		}
	}

	var cmd tea.Cmd
	m.form.content, cmd = m.form.content.Update(msg)
	return m, cmd
}

func (m appModel) updateUnlock(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.unlock.submitting {
				return m, nil
			}
			passphrase := m.unlock.input.Value()
			if passphrase == "" {
				m.unlock.errMsg = "Кодовая фраза обязательна"
				return m, nil
			}
			m.unlock.errMsg = ""
			m.unlock.submitting = true
			return m, m.cmdUnlockKey(passphrase)
		}
	}

	var cmd tea.Cmd
	m.unlock.input, cmd = m.unlock.input.Update(msg)
	return m, cmd
}

func (m appModel) updateRotate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.rotate = focusNextRotate(m.rotate)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.rotate = focusPrevRotate(m.rotate)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.rotate.submitting {
				return m, nil
			}
			current := m.rotate.inputs[0].Value()
			next := m.rotate.inputs[1].Value()
			if current == next {
				m.rotate.errMsg = "Новая фраза совпадает с текущей"
				return m, nil
			}
			m.rotate.errMsg = ""
			m.rotate.submitting = true
			return m, m.cmdChangeKey(current, next)
		}
	}

	var cmd tea.Cmd
	m.rotate.inputs[m.rotate.focus], cmd = m.rotate.inputs[m.rotate.focus].Update(msg)
	return m, cmd
}

// ─────────────────────────────────────────────
// Commands
// ─────────────────────────────────────────────

func (m appModel) cmdLogin(login, pass string) tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService
	return func() tea.Msg {
		return authDoneMsg{err: auth.Login(ctx, login, pass)}
	}
}

func (m appModel) cmdRegister(login, pass string) tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService
	return func() tea.Msg {
		return authDoneMsg{err: auth.Register(ctx, login, pass)}
	}
}

func (m appModel) cmdLoadList() tea.Cmd {
	ctx := m.ctx
	svc := m.services.SliceService
	return func() tea.Msg {
		items, err := svc.List(ctx)
		return listLoadedMsg{items: items, err: err}
	}
}

func (m appModel) cmdSearch(query string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.SliceService
	return func() tea.Msg {
		items, err := svc.Search(ctx, query)
		return listLoadedMsg{items: items, searched: true, err: err}
	}
}

func (m appModel) cmdCreateSlice(sliceType models.SliceType, text string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.SliceService
	return func() tea.Msg {
		_, err := svc.Create(ctx, sliceType, text)
		return sliceSavedMsg{err: err}
	}
}

func (m appModel) cmdUpdateSlice(clientSideID string, sliceType models.SliceType, text string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.SliceService
	return func() tea.Msg {
		_, err := svc.Update(ctx, clientSideID, sliceType, text)
		return sliceSavedMsg{err: err}
	}
}

func (m appModel) cmdDeleteSlice(clientSideID string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.SliceService
	return func() tea.Msg {
		return sliceDeletedMsg{err: svc.Delete(ctx, clientSideID)}
	}
}

func (m appModel) cmdUnlockKey(passphrase string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.KeyService
	return func() tea.Msg {
		if err := svc.SetPassphrase(ctx, passphrase); err != nil {
			return keyUnlockedMsg{err: err}
		}

		valid, err := svc.Validate(ctx)
		if valid {
			return keyUnlockedMsg{valid: true}
		}

		// the wrong key must not stay persisted
		_ = svc.SetPassphrase(ctx, "")

		var decErr *crypto.DecryptError
		if errors.As(err, &decErr) {
			return keyUnlockedMsg{valid: false}
		}
		return keyUnlockedMsg{err: err}
	}
}

func (m appModel) cmdChangeKey(currentPassphrase, newPassphrase string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.KeyService
	return func() tea.Msg {
		updated, err := svc.ChangePassphrase(ctx, currentPassphrase, newPassphrase)
		return keyChangedMsg{updated: updated, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return sliceSavedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// ─────────────────────────────────────────────
// Focus helpers
// ─────────────────────────────────────────────

func focusNextLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusNextRegister(m registerModel) registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevRegister(m registerModel) registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusNextRotate(m rotateModel) rotateModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevRotate(m rotateModel) rotateModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}
