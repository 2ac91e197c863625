// Package ui реализует Model компонент Bubble Tea TUI.
//
// Содержит структуру UI и функцию инициализации. Одна корневая модель:
// список экранов (таблицы ресурсов), боковая форма (drawer), диалог
// подтверждения и строка поиска. Все сетевые операции уходят в tea.Cmd
// и возвращаются сообщениями — Update никогда не блокируется.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/partsdesk/pkg/events"
	"github.com/ilkoid/partsdesk/pkg/query"
	"github.com/ilkoid/partsdesk/pkg/tui"
)

// mode — что сейчас владеет клавиатурой.
type mode int

const (
	modeLogin mode = iota
	modeList
	modeSearch
	modeDrawer
	modeConfirm
	modeDetail
)

// Model представляет главную модель UI (Bubble Tea Model).
type Model struct {
	deps    *Deps
	screens []*Screen
	active  int

	mode  mode
	login *loginForm

	table   table.Model
	queries map[string]query.ListQuery // параметры списка по экранам
	pages   map[string]*Page           // последняя показанная страница

	search textinput.Model

	drawer  *Drawer
	confirm *confirmDialog

	// detail — текст оверлея деталей импорта, прокручивается viewport'ом
	detail   string
	detailVP viewport.Model

	spinner spinner.Model

	pageLimit int
	loading   bool
	notice    string
	width     int
	height    int
	ready     bool
}

// confirmDialog — модальное подтверждение необратимой операции.
type confirmDialog struct {
	prompt string
	// accept выполняется в tea.Cmd после подтверждения
	accept func() tea.Msg
}

// InitialModel создает начальное состояние UI.
//
// Консоль стартует на экране логина; экраны ресурсов становятся
// доступны после успешной аутентификации.
func InitialModel(deps *Deps, pageLimit int) Model {
	search := textinput.New()
	search.Placeholder = "Поиск..."
	search.CharLimit = 100

	columns := []table.Column{}
	tbl := table.New(table.WithColumns(columns), table.WithFocused(true))
	tbl.SetStyles(tableStyles())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	if pageLimit <= 0 {
		pageLimit = 20
	}

	return Model{
		deps:      deps,
		screens:   NewScreens(deps),
		mode:      modeLogin,
		login:     newLoginForm(),
		table:     tbl,
		queries:   make(map[string]query.ListQuery),
		pages:     make(map[string]*Page),
		search:    search,
		spinner:   sp,
		pageLimit: pageLimit,
	}
}

// screen возвращает активный экран.
func (m *Model) screen() *Screen {
	return m.screens[m.active]
}

// query возвращает параметры списка активного экрана (создает дефолтные).
func (m *Model) query() query.ListQuery {
	s := m.screen()
	if q, ok := m.queries[s.ID]; ok {
		return q
	}
	q := query.NewListQuery(m.pageLimit)
	m.queries[s.ID] = q
	return q
}

// setQuery сохраняет параметры и возвращает команду перезагрузки списка.
func (m *Model) setQuery(q query.ListQuery) tea.Cmd {
	s := m.screen()
	m.queries[s.ID] = q
	m.loading = true
	return tea.Batch(fetchPageCmd(s, q), m.spinner.Tick)
}

// selectedRow возвращает строку под курсором таблицы.
func (m *Model) selectedRow() (Row, bool) {
	page, ok := m.pages[m.screen().ID]
	if !ok || len(page.Rows) == 0 {
		return Row{}, false
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(page.Rows) {
		return Row{}, false
	}
	return page.Rows[idx], true
}

// Init запускается один раз при старте Bubble Tea программы.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.deps.Events != nil {
		cmds = append(cmds, tui.ReceiveEventCmd(m.deps.Events, wrapEvent))
	}
	return tea.Batch(cmds...)
}

// wrapEvent — конвертер events.Event → tea.Msg для tui адаптера.
func wrapEvent(evt events.Event) tea.Msg {
	return tui.EventMsg(evt)
}
