package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-slice-keeper/models"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

type listModel struct {
	items     []models.Slice
	idx       int
	loading   bool
	searching bool
	searched  bool
	search    textinput.Model
	spinner   spinner.Model
	status    string
	keyHeld   bool
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	searchInput := textinput.New()
	searchInput.Placeholder = "поиск"
	searchInput.CharLimit = 128
	searchInput.Width = 40

	return listModel{spinner: s, search: searchInput, loading: true}
}

func (m listModel) current() (models.Slice, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Slice{}, false
	}
	return m.items[m.idx], true
}

func sliceTypeIcon(t models.SliceType) string {
	switch t {
	case models.SliceTypeNote:
		return "[N]"
	case models.SliceTypeJournal:
		return "[J]"
	case models.SliceTypeBookmark:
		return "[B]"
	default:
		return "[?]"
	}
}

func (m listModel) View() string {
	header := titleStyle.Render("SliceKeeper")
	if m.keyHeld {
		header += "  🔒"
	}
	if m.loading {
		header += "  " + m.spinner.View()
	}
	out := header + "\n\n"

	if m.searching {
		out += "Поиск: [" + m.search.View() + "]\n\n"
	} else if m.searched {
		out += "Результаты поиска: " + m.search.Value() + "\n\n"
	}

	if m.loading {
		out += "Загрузка...\n"
	} else if len(m.items) == 0 {
		if m.searched {
			out += "Ничего не найдено\n"
		} else {
			out += "Нет записей\n"
		}
	} else {
		for i, item := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			out += fmt.Sprintf("%s%s %s\n", cursor, sliceTypeIcon(item.Type), fitText(firstLine(item.Content), 48))
		}
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	help := "n новая  / поиск  p ключ  u разблок.  l перелогин  q выход  enter открыть"
	if m.searching {
		help = "enter искать  esc отмена"
	} else if m.searched {
		help = "esc сброс поиска  " + help
	}
	out += "\n" + helpStyle.Render(help)
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
