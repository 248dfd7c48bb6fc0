// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-slice-keeper/models"
	"github.com/charmbracelet/bubbles/textarea"
)

// formModel edits the plaintext of one slice. The same form serves both
// creation (clientSideID empty) and editing.
type formModel struct {
	sliceType    models.SliceType
	clientSideID string
	content      textarea.Model
	editing      bool
	submitting   bool
}

func newFormModel(sliceType models.SliceType, item *models.Slice) formModel {
	area := textarea.New()
	area.Placeholder = "текст записи"
	area.CharLimit = 4096
	area.SetWidth(60)
	area.SetHeight(8)
	area.Focus()

	m := formModel{sliceType: sliceType, content: area}
	if item != nil {
		m.editing = true
		m.clientSideID = item.ClientSideID
		m.sliceType = item.Type
		m.content.SetValue(item.Content)
	}
	return m
}

func (m formModel) View() string {
	var b strings.Builder
	b.WriteString("Тип: ")
	b.WriteString(sliceTypeName(m.sliceType))
	b.WriteString("\n\n")
	b.WriteString(m.content.View())

	if m.submitting {
		b.WriteString("\n\n[Сохранить...]")
	} else {
		b.WriteString("\n\n[Сохранить]")
	}

	title := "НОВАЯ ЗАПИСЬ"
	if m.editing {
		title = "РЕДАКТИРОВАНИЕ"
	}
	return renderPage(title, b.String(), "ctrl+s: сохранить │ esc: назад")
}
