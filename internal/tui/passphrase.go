// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// unlockModel asks for the passphrase on a device that does not hold the
// key yet. The derived key is validated against the server-side corpus
// before it is accepted.
type unlockModel struct {
	input      textinput.Model
	submitting bool
	errMsg     string
}

func newUnlockModel() unlockModel {
	input := textinput.New()
	input.Placeholder = "кодовая фраза"
	input.CharLimit = 256
	input.Width = 40
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.Focus()

	return unlockModel{input: input}
}

func (m unlockModel) View() string {
	var b strings.Builder
	b.WriteString("Кодовая фраза │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Проверка...]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("РАЗБЛОКИРОВКА", strings.TrimRight(b.String(), "\n"), "esc: назад │ enter: подтвердить")
}

// rotateModel drives a passphrase change: both passphrases are collected
// and the whole corpus is re-encrypted on the server. An empty current
// phrase means the corpus is still plaintext; an empty new phrase removes
// encryption.
type rotateModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newRotateModel() rotateModel {
	currentInput := textinput.New()
	currentInput.Placeholder = "текущая фраза (пусто, если нет)"
	currentInput.CharLimit = 256
	currentInput.Width = 40
	currentInput.EchoMode = textinput.EchoPassword
	currentInput.EchoCharacter = '*'
	currentInput.Focus()

	newInput := textinput.New()
	newInput.Placeholder = "новая фраза (пусто - снять шифрование)"
	newInput.CharLimit = 256
	newInput.Width = 40
	newInput.EchoMode = textinput.EchoPassword
	newInput.EchoCharacter = '*'

	return rotateModel{
		inputs: []textinput.Model{currentInput, newInput},
	}
}

func (m rotateModel) View() string {
	var b strings.Builder
	b.WriteString("Поле     │ Значение\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	b.WriteString("Текущая  │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Новая    │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Смена ключа... это может занять время]\n")
	} else {
		b.WriteString("\n[Сменить ключ]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("СМЕНА КЛЮЧА", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}
