// Рендер
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ilkoid/partsdesk/pkg/upload"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing UI..."
	}

	switch m.mode {
	case modeLogin:
		return m.viewLogin()
	case modeDrawer:
		return m.viewDrawer()
	case modeConfirm:
		return m.viewConfirm()
	case modeDetail:
		return m.viewDetail()
	default:
		return m.viewList()
	}
}

// viewLogin — экран входа.
func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(" PartsDesk — вход администратора "))
	b.WriteString("\n\n")
	b.WriteString("  Email:    " + m.login.email.View() + "\n")
	b.WriteString("  Пароль:   " + m.login.password.View() + "\n\n")
	if m.login.busy {
		b.WriteString(noticeStyle("  Вход...") + "\n")
	}
	if m.login.err != "" {
		b.WriteString(errorStyle("  "+m.login.err) + "\n")
	}
	b.WriteString("\n" + helpStyle("  enter — войти, tab — следующее поле, ctrl+c — выход"))
	return b.String()
}

// viewList — таблица активного экрана со шапкой и статусной строкой.
func (m Model) viewList() string {
	s := m.screen()

	// Вкладки экранов
	var tabs []string
	for i, screen := range m.screens {
		if i == m.active {
			tabs = append(tabs, activeTabStyle.Render(screen.Title))
		} else {
			tabs = append(tabs, tabStyle.Render(screen.Title))
		}
	}
	header := headerStyle.Width(m.width).Render(" PartsDesk ")
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	// Строка параметров: поиск, фильтры, пагинация
	q := m.queries[s.ID]
	var params []string
	if q.Search != "" {
		params = append(params, "поиск: "+q.Search)
	}
	for _, f := range s.Filters {
		if v := q.Filter(f.Key); v != "" {
			params = append(params, f.Label+": "+v)
		}
	}
	if page, ok := m.pages[s.ID]; ok {
		params = append(params, fmt.Sprintf("стр. %d/%d, всего %d",
			page.Meta.Page, page.Meta.TotalPages, page.Meta.Total))
	}
	if m.loading {
		params = append(params, m.spinner.View()+"загрузка...")
	}
	paramLine := helpStyle(strings.Join(params, " | "))

	statusLine := ""
	if m.notice != "" {
		statusLine = noticeStyle(m.notice)
	}
	if s.Tag != nil {
		if row, ok := m.selectedRow(); ok {
			if tag, ok := s.Tag(row); ok {
				if statusLine != "" {
					statusLine = tag.Render() + " " + statusLine
				} else {
					statusLine = tag.Render()
				}
			}
		}
	}

	help := helpStyle(m.helpLine())

	return strings.Join([]string{
		header,
		tabLine,
		m.table.View(),
		paramLine,
		statusLine,
		help,
	}, "\n")
}

// helpLine собирает подсказку клавиш под возможности экрана.
func (m Model) helpLine() string {
	s := m.screen()
	parts := []string{"tab — экраны", "[/] — страницы"}
	if s.Searchable {
		parts = append(parts, "/ — поиск")
	}
	if len(s.Filters) > 0 {
		parts = append(parts, "f — фильтр")
	}
	if s.CanCreate() {
		parts = append(parts, "n — создать")
	}
	if s.CanEdit() {
		parts = append(parts, "e — изменить")
	}
	if s.CanDelete() {
		parts = append(parts, "d — удалить")
	}
	for _, a := range s.Actions {
		parts = append(parts, a.Key+" — "+a.Label)
	}
	parts = append(parts, "R — обновить", "q — выход")
	return strings.Join(parts, ", ")
}

// viewDrawer — боковая форма поверх списка.
func (m Model) viewDrawer() string {
	d := m.drawer

	var b strings.Builder
	b.WriteString(d.Title + "\n\n")

	for _, f := range d.Fields() {
		b.WriteString(f.Spec.Label)
		if f.Spec.Required {
			b.WriteString(" *")
		}
		b.WriteString("\n" + f.Input.View() + "\n")
		if f.Err != "" {
			b.WriteString(fieldErrStyle("  "+f.Err) + "\n")
		}
	}

	// Состояние файловых полей
	for _, fs := range d.FileFields() {
		switch d.Uploads.State(fs.Key) {
		case upload.FieldUploading:
			b.WriteString(helpStyle(fs.Label+": загрузка...") + "\n")
		case upload.FieldUploaded:
			b.WriteString(noticeStyle(fs.Label+": загружено") + "\n")
		case upload.FieldFailed:
			b.WriteString(fieldErrStyle(fs.Label+": ошибка загрузки") + "\n")
		}
	}

	if d.Submitting() {
		b.WriteString("\n" + noticeStyle("Отправка..."))
	}
	if d.Notice != "" {
		b.WriteString("\n" + errorStyle(d.Notice))
	}

	b.WriteString("\n\n" + helpStyle("enter — сохранить, tab — след. поле, ctrl+u — загрузить файл, esc — закрыть"))

	return drawerStyle.Render(b.String())
}

// viewConfirm — модальное подтверждение.
func (m Model) viewConfirm() string {
	content := m.confirm.prompt + "\n\n" + helpStyle("y — да, n — нет")
	return drawerStyle.Render(content)
}

// viewDetail — оверлей деталей импорта с прокруткой.
func (m Model) viewDetail() string {
	return drawerStyle.Render(m.detailVP.View() + "\n\n" + helpStyle("↑/↓ — прокрутка, esc — назад"))
}
