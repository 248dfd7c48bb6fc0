package tui

import (
	"fmt"

	"github.com/MKhiriev/go-slice-keeper/models"
)

type detailModel struct {
	item   models.Slice
	status string
}

func sliceTypeName(t models.SliceType) string {
	switch t {
	case models.SliceTypeNote:
		return "Заметка"
	case models.SliceTypeJournal:
		return "Журнал"
	case models.SliceTypeBookmark:
		return "Закладка"
	default:
		return "Неизвестно"
	}
}

func (m detailModel) View() string {
	out := fmt.Sprintf("%s  [%s]\n\n", m.item.ClientSideID, sliceTypeName(m.item.Type))

	out += m.item.Content + "\n"

	if !m.item.UpdatedAt.IsZero() {
		out += fmt.Sprintf("\nОбновлено: %s\n", m.item.UpdatedAt.Format("2006-01-02 15:04"))
	}

	out += "\n" + helpStyle.Render("e редакт.  d удалить  c копир. текст  esc назад")

	if m.status != "" {
		out += "\n\n" + m.status
	}

	return out
}
