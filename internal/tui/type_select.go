package tui

import "github.com/MKhiriev/go-slice-keeper/models"

type typeSelectModel struct {
	items []models.SliceType
	idx   int
}

func newTypeSelectModel() typeSelectModel {
	return typeSelectModel{
		items: []models.SliceType{
			models.SliceTypeNote,
			models.SliceTypeJournal,
			models.SliceTypeBookmark,
		},
	}
}

func (m typeSelectModel) View() string {
	out := "Тип новой записи:\n\n"
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		out += cursor + sliceTypeName(item) + "\n"
	}
	out += "\n" + helpStyle.Render("enter выбрать  esc назад")
	return out
}
