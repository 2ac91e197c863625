// Логика — обрабатывает нажатия клавиш и результаты асинхронных команд.
//
// Все походы в сеть завернуты в tea.Cmd: команда выполняется в своей
// горутине и возвращает сообщение, Update остается неблокирующим.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/ilkoid/partsdesk/pkg/events"
	"github.com/ilkoid/partsdesk/pkg/importjob"
	"github.com/ilkoid/partsdesk/pkg/query"
	"github.com/ilkoid/partsdesk/pkg/tui"
	"github.com/ilkoid/partsdesk/pkg/utils"
)

const requestTimeout = 30 * time.Second

// ============================================================================
// Сообщения асинхронных команд
// ============================================================================

// pageMsg — загруженная страница списка. page == nil при устаревшем
// ответе — такой результат молча игнорируется.
type pageMsg struct {
	screenID string
	page     *Page
	err      error
}

type loginResultMsg struct {
	profile *api.Profile
	err     error
}

// mutationDoneMsg — результат отправки формы.
type mutationDoneMsg struct {
	screenID string
	err      error
}

// actionDoneMsg — результат строчной операции (экспорт, unlock, ...).
type actionDoneMsg struct {
	output string
	err    error
}

// uploadDoneMsg — завершение фоновой загрузки файла поля формы.
type uploadDoneMsg struct {
	field string
	url   string
	err   error
}

// importDoneMsg — результат отправки файла импорта.
type importDoneMsg struct {
	outcome importjob.Outcome
	err     error
}

// detailMsg — собранный текст деталей импорта.
type detailMsg struct {
	text string
	err  error
}

// masterDataMsg — справочники портала, загружаются один раз после входа.
type masterDataMsg struct {
	dealerStatuses  []api.DealerStatusOption
	dispatchMethods []api.DispatchMethod
	err             error
}

// ============================================================================
// Команды
// ============================================================================

func fetchPageCmd(s *Screen, q query.ListQuery) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		page, err := s.Fetch(ctx, q)
		if errors.Is(err, query.ErrStale) {
			// Ответ на уже неактуальные параметры — выбрасываем
			return pageMsg{screenID: s.ID}
		}
		return pageMsg{screenID: s.ID, page: page, err: err}
	}
}

func loginCmd(deps *Deps, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		profile, err := deps.API.Login(ctx, api.LoginRequest{Email: email, Password: password})
		return loginResultMsg{profile: profile, err: err}
	}
}

// masterDataCmd загружает справочники (статусы дилеров, способы отгрузки).
func masterDataCmd(deps *Deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		statuses, err := deps.API.DealerStatuses(ctx)
		if err != nil {
			return masterDataMsg{err: err}
		}
		methods, err := deps.API.DispatchMethods(ctx)
		if err != nil {
			return masterDataMsg{err: err}
		}
		return masterDataMsg{dealerStatuses: statuses, dispatchMethods: methods}
	}
}

func submitDrawerCmd(s *Screen, mode DrawerMode, recordID string, body map[string]interface{}) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var err error
		if mode == DrawerCreate {
			err = s.Create(ctx, body)
		} else {
			err = s.Update(ctx, recordID, body)
		}
		return mutationDoneMsg{screenID: s.ID, err: err}
	}
}

func deleteCmd(s *Screen, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return mutationDoneMsg{screenID: s.ID, err: s.Delete(ctx, id)}
	}
}

func runActionCmd(action RowAction, row Row, q query.ListQuery) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		output, err := action.Run(ctx, row, q)
		return actionDoneMsg{output: output, err: err}
	}
}

func uploadCmd(deps *Deps, field, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return uploadDoneMsg{field: field, err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*requestTimeout)
		defer cancel()

		url, err := deps.Uploader.Upload(ctx, filepath.Base(path), data)
		return uploadDoneMsg{field: field, url: url, err: err}
	}
}

func importSubmitCmd(deps *Deps, typ importjob.Type, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return importDoneMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*requestTimeout)
		defer cancel()

		outcome, err := deps.Imports.Submit(ctx, typ, filepath.Base(path), data)
		return importDoneMsg{outcome: outcome, err: err}
	}
}

func importTemplateCmd(deps *Deps, typ importjob.Type) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		blob, err := deps.Imports.Template(ctx, typ)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		path, err := deps.Saver.Save(blob, "import-template-"+strings.ToLower(string(typ))+".xlsx")
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{output: "Saved " + path}
	}
}

// importDetailCmd собирает статистику и первую страницу ошибок импорта.
func importDetailCmd(deps *Deps, id string, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		stats, err := deps.Imports.Stats(ctx, id)
		if err != nil {
			return detailMsg{err: err}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Import %s — %s\n", stats.ID, stats.Status)
		fmt.Fprintf(&b, "Rows: %d, ok: %d, errors: %d\n", stats.TotalRows, stats.SuccessCount, stats.ErrorCount)

		if stats.ErrorCount > 0 {
			page, err := deps.Imports.Errors(ctx, id, query.NewListQuery(limit))
			if err != nil && !errors.Is(err, query.ErrStale) {
				return detailMsg{err: err}
			}
			if page != nil {
				b.WriteString("\nErrors:\n")
				for _, item := range page.Items {
					fmt.Fprintf(&b, "  row %d: %s\n", item.RowNumber, strings.Join(item.Errors, "; "))
				}
				if page.Meta.TotalPages > 1 {
					fmt.Fprintf(&b, "  ... страница 1 из %d, полный список — экспорт (x)\n", page.Meta.TotalPages)
				}
			}
		}
		return detailMsg{text: b.String()}
	}
}

// ============================================================================
// Update
// ============================================================================

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTable()
		m.resizeDetail()
		if !m.ready {
			m.ready = true
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tui.EventMsg:
		if notice := eventNotice(events.Event(msg)); notice != "" {
			m.notice = notice
		}
		return m, tui.WaitForEvent(m.deps.Events, wrapEvent)

	case pageMsg:
		return m.handlePage(msg)

	case loginResultMsg:
		m.login.busy = false
		if msg.err != nil {
			m.login.err = api.ClassifyError(msg.err).HumanMessage()
			if apiErr := api.AsAPIError(msg.err); apiErr != nil && apiErr.Status != 401 && apiErr.Status != 403 {
				m.login.err = apiErr.Message()
			}
			return m, nil
		}
		m.deps.Actor = msg.profile.Email
		m.mode = modeList
		m.notice = "Вход выполнен: " + msg.profile.Email
		return m, tea.Batch(m.setQuery(m.query()), masterDataCmd(m.deps))

	case mutationDoneMsg:
		if m.drawer != nil {
			if m.drawer.FinishSubmit(msg.err) {
				m.drawer = nil
				m.mode = modeList
				m.notice = "Сохранено"
				return m, m.reloadCurrent()
			}
			// Форма осталась открытой с ошибками по полям
			return m, nil
		}
		// Удаление (формы нет)
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
			return m, nil
		}
		m.notice = "Удалено"
		return m, m.reloadCurrent()

	case actionDoneMsg:
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
		} else {
			m.notice = msg.output
		}
		return m, m.reloadCurrent()

	case uploadDoneMsg:
		if m.drawer == nil {
			return m, nil
		}
		if msg.err != nil {
			m.drawer.Uploads.Fail(msg.field, msg.err)
			m.drawer.Notice = "Загрузка не удалась: " + msg.err.Error()
		} else {
			m.drawer.Uploads.Done(msg.field, msg.url)
			m.drawer.Notice = ""
		}
		return m, nil

	case importDoneMsg:
		if m.drawer != nil {
			if m.drawer.FinishSubmit(msg.err) {
				m.drawer = nil
				m.mode = modeList
				m.notice = importNotice(msg.outcome)
				return m, m.reloadCurrent()
			}
			return m, nil
		}
		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
			return m, nil
		}
		m.detail = msg.text
		m.resizeDetail()
		m.mode = modeDetail
		return m, nil

	case masterDataMsg:
		// Справочники — best effort: без них работают статические списки
		if msg.err != nil {
			utils.Warn("master data unavailable", "error", msg.err)
			return m, nil
		}
		m.applyMasterData(msg)
		return m, nil
	}

	return m, nil
}

// handlePage применяет загруженную страницу к таблице.
func (m Model) handlePage(msg pageMsg) (tea.Model, tea.Cmd) {
	if msg.page == nil && msg.err == nil {
		// Устаревший ответ
		return m, nil
	}

	m.loading = false
	if msg.err != nil {
		if api.ClassifyError(msg.err) == api.ErrAuthFailed {
			// Сессия истекла — назад на логин
			m.mode = modeLogin
			m.login = newLoginForm()
			m.login.err = "Сессия истекла, войдите заново"
			m.deps.Store.InvalidateAll()
			return m, nil
		}
		m.notice = errorNotice(msg.err)
		return m, nil
	}

	if msg.screenID != m.screen().ID {
		// Пользователь успел уйти на другой экран
		return m, nil
	}

	m.pages[msg.screenID] = msg.page
	m.applyRows(msg.page)
	m.notice = ""
	return m, nil
}

// handleKey маршрутизирует клавиши по текущему режиму.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeLogin:
		return m.handleLoginKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeDrawer:
		return m.handleDrawerKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	case modeDetail:
		if msg.String() == "esc" || msg.String() == "q" {
			m.mode = modeList
			m.detail = ""
			return m, nil
		}
		var cmd tea.Cmd
		m.detailVP, cmd = m.detailVP.Update(msg)
		return m, cmd
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab:
		m.login.next()
		return m, nil
	case tea.KeyEnter:
		if m.login.focus == 0 {
			m.login.next()
			return m, nil
		}
		if !m.login.ready() || m.login.busy {
			return m, nil
		}
		m.login.busy = true
		m.login.err = ""
		return m, loginCmd(m.deps, strings.TrimSpace(m.login.email.Value()), m.login.password.Value())
	}

	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.email, cmd = m.login.email.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeList
		m.search.Blur()
		// Смена поиска сбрасывает страницу на первую
		return m, m.setQuery(m.query().WithSearch(strings.TrimSpace(m.search.Value())))
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		accept := m.confirm.accept
		m.confirm = nil
		m.mode = modeList
		return m, func() tea.Msg { return accept() }
	case "n", "esc":
		m.confirm = nil
		m.mode = modeList
		return m, nil
	}
	return m, nil
}

func (m Model) handleDrawerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.drawer

	switch msg.Type {
	case tea.KeyEsc:
		if d.Submitting() {
			// Отправка уже пошла, форму не бросаем
			return m, nil
		}
		m.drawer = nil
		m.mode = modeList
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		d.FocusNext()
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		d.FocusPrev()
		return m, nil

	case tea.KeyCtrlU:
		// Старт загрузки файла из поля-пути под фокусом
		field := d.Focused()
		if field == nil || !strings.HasPrefix(field.Spec.Key, "file:") {
			return m, nil
		}
		path := strings.TrimSpace(field.Input.Value())
		if path == "" {
			d.Notice = "Укажите путь к файлу"
			return m, nil
		}
		key := strings.TrimPrefix(field.Spec.Key, "file:")
		d.Uploads.Start(key, filepath.Base(path))
		d.Notice = ""
		return m, uploadCmd(m.deps, key, path)

	case tea.KeyEnter:
		return m.submitDrawer()
	}

	if field := d.Focused(); field != nil {
		var cmd tea.Cmd
		field.Input, cmd = field.Input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submitDrawer запускает отправку формы, если она проходит проверки.
func (m Model) submitDrawer() (tea.Model, tea.Cmd) {
	d := m.drawer
	if !d.TrySubmit() {
		return m, nil
	}

	// Форма импорта отправляется через importjob, а не через CRUD экрана
	if m.screen().ID == importjob.LogResourceName && d.Mode == DrawerCreate {
		typ := importjob.Type(strings.ToUpper(strings.TrimSpace(d.Value("type"))))
		path := strings.TrimSpace(d.Value("file:upload"))
		return m, importSubmitCmd(m.deps, typ, path)
	}

	return m, submitDrawerCmd(m.screen(), d.Mode, d.RecordID, d.Body())
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.screen()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		return m.switchScreen((m.active + 1) % len(m.screens))

	case "shift+tab":
		return m.switchScreen((m.active - 1 + len(m.screens)) % len(m.screens))

	case "/":
		if !s.Searchable {
			return m, nil
		}
		m.mode = modeSearch
		m.search.SetValue(m.query().Search)
		m.search.Focus()
		return m, nil

	case "]":
		q := m.query()
		page, ok := m.pages[s.ID]
		if ok && q.Page >= page.Meta.TotalPages {
			return m, nil
		}
		return m, m.setQuery(q.WithPage(q.Page + 1))

	case "[":
		q := m.query()
		if q.Page <= 1 {
			return m, nil
		}
		return m, m.setQuery(q.WithPage(q.Page - 1))

	case "f":
		return m.cycleFilter(0)

	case "F":
		return m.cycleFilter(1)

	case "R":
		// Принудительное обновление мимо кэша
		m.deps.Store.Invalidate(s.ID)
		return m, m.setQuery(m.query())

	case "n":
		if s.ID == importjob.LogResourceName {
			m.drawer = newImportDrawer()
			m.mode = modeDrawer
			return m, nil
		}
		if !s.CanCreate() {
			return m, nil
		}
		m.drawer = buildDrawer(s, DrawerCreate, Row{})
		m.mode = modeDrawer
		return m, nil

	case "e":
		if !s.CanEdit() {
			return m, nil
		}
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.drawer = buildDrawer(s, DrawerEdit, row)
		m.mode = modeDrawer
		return m, nil

	case "d":
		if !s.CanDelete() {
			return m, nil
		}
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.confirm = &confirmDialog{
			prompt: fmt.Sprintf("Удалить запись %s из «%s»?", row.ID, s.Title),
			accept: func() tea.Msg { return deleteCmd(s, row.ID)() },
		}
		m.mode = modeConfirm
		return m, nil

	case "T":
		if s.ID == importjob.LogResourceName {
			row, ok := m.selectedRow()
			typ := importjob.TypeParts
			if ok && row.Fields["_type"] != "" {
				typ = importjob.Type(row.Fields["_type"])
			}
			return m, importTemplateCmd(m.deps, typ)
		}
		return m, nil

	case "enter":
		if s.ID == importjob.LogResourceName {
			row, ok := m.selectedRow()
			if !ok {
				return m, nil
			}
			return m, importDetailCmd(m.deps, row.ID, m.pageLimit)
		}
		if s.CanEdit() {
			row, ok := m.selectedRow()
			if !ok {
				return m, nil
			}
			m.drawer = buildDrawer(s, DrawerEdit, row)
			m.mode = modeDrawer
			return m, nil
		}
		return m, nil
	}

	// Строчные операции экрана
	for _, action := range s.Actions {
		if msg.String() == action.Key {
			row, ok := m.selectedRow()
			if !ok {
				return m, nil
			}
			m.notice = action.Label + "..."
			return m, runActionCmd(action, row, m.query())
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// switchScreen переключает активный экран и запускает загрузку.
func (m Model) switchScreen(idx int) (tea.Model, tea.Cmd) {
	m.active = idx
	m.resizeTable()
	if page, ok := m.pages[m.screen().ID]; ok {
		m.applyRows(page)
	} else {
		m.table.SetRows(nil)
	}
	return m, m.setQuery(m.query())
}

// cycleFilter перебирает значения фильтра idx по кругу (включая сброс).
func (m Model) cycleFilter(idx int) (tea.Model, tea.Cmd) {
	s := m.screen()
	if idx >= len(s.Filters) {
		return m, nil
	}
	spec := s.Filters[idx]
	q := m.query()
	current := q.Filter(spec.Key)

	next := ""
	if current == "" {
		next = spec.Options[0]
	} else {
		for i, opt := range spec.Options {
			if opt == current && i+1 < len(spec.Options) {
				next = spec.Options[i+1]
				break
			}
		}
	}
	// Смена фильтра сбрасывает страницу
	return m, m.setQuery(q.WithFilter(spec.Key, next))
}

// reloadCurrent перезагружает активный экран (после мутации кэш уже
// инвалидирован — запрос уйдет в сеть).
func (m *Model) reloadCurrent() tea.Cmd {
	return m.setQuery(m.query())
}

// applyRows заполняет bubbles таблицу строками страницы.
func (m *Model) applyRows(page *Page) {
	rows := make([]table.Row, 0, len(page.Rows))
	for _, r := range page.Rows {
		rows = append(rows, table.Row(r.Cells))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// resizeTable пересчитывает колонки таблицы под активный экран и ширину окна.
func (m *Model) resizeTable() {
	s := m.screen()
	if m.width == 0 {
		return
	}

	width := m.width - 2
	per := width / len(s.Columns)
	columns := make([]table.Column, 0, len(s.Columns))
	for _, title := range s.Columns {
		columns = append(columns, table.Column{Title: title, Width: per})
	}
	m.table.SetColumns(columns)

	height := m.height - 6 // шапка, фильтры, пагинация, подсказки
	if height < 3 {
		height = 3
	}
	m.table.SetHeight(height)
}

// resizeDetail подгоняет viewport деталей под терминал и перекладывает текст.
func (m *Model) resizeDetail() {
	width := m.width - 8
	if width < 20 {
		width = 20
	}
	height := m.height - 8
	if height < 3 {
		height = 3
	}
	m.detailVP = viewport.New(width, height)
	m.detailVP.SetContent(wordwrap.String(m.detail, width))
}

// applyMasterData подменяет статические варианты фильтров справочниками.
func (m *Model) applyMasterData(msg masterDataMsg) {
	var statuses []string
	for _, s := range msg.dealerStatuses {
		statuses = append(statuses, s.Value)
	}
	var methods []string
	for _, d := range msg.dispatchMethods {
		methods = append(methods, d.Code)
	}

	for _, s := range m.screens {
		if s.ID != "dealers" {
			continue
		}
		if len(statuses) > 0 {
			for i, f := range s.Filters {
				if f.Key == "status" {
					s.Filters[i].Options = statuses
				}
			}
		}
		if len(methods) > 0 {
			for i, f := range s.FormSpecs {
				if f.Key == "dispatchMethod" {
					s.FormSpecs[i].Label = "Dispatch method (" + strings.Join(methods, "/") + ")"
				}
			}
		}
	}
}

// buildDrawer создает форму экрана с префиллом из строки таблицы.
//
// Значения для префилла берутся из списка: деталь не перезапрашивается
// там, где список уже содержит все редактируемые поля.
func buildDrawer(s *Screen, mode DrawerMode, row Row) *Drawer {
	specs := make([]FieldSpec, 0, len(s.FormSpecs)+len(s.FileSpecs))
	specs = append(specs, s.FormSpecs...)
	for _, fs := range s.FileSpecs {
		// Служебное поле пути к локальному файлу; в тело запроса не попадает
		specs = append(specs, FieldSpec{Key: "file:" + fs.Key, Label: fs.Label + " (путь к файлу, ctrl+u — загрузить)"})
	}

	title := s.Title + ": новая запись"
	if mode == DrawerEdit {
		title = s.Title + ": редактирование"
	}

	d := NewDrawer(title, mode, specs, s.FileSpecs)
	if mode == DrawerEdit {
		d.RecordID = row.ID
		for key, value := range row.Fields {
			if strings.HasPrefix(key, "_") {
				continue
			}
			if isFileField(s, key) {
				d.Uploads.Prefill(key, value)
				continue
			}
			d.SetValue(key, value)
		}
	}
	return d
}

func isFileField(s *Screen, key string) bool {
	for _, fs := range s.FileSpecs {
		if fs.Key == key {
			return true
		}
	}
	return false
}

// newImportDrawer — форма отправки файла импорта.
func newImportDrawer() *Drawer {
	return NewDrawer("Import: загрузка файла", DrawerCreate, []FieldSpec{
		{Key: "type", Label: "Тип (PARTS/DEALERS/SUPERSEDED/BACKORDER/ORDER_STATUS)", Required: true},
		{Key: "file:upload", Label: "Путь к xlsx файлу", Required: true},
	}, nil)
}

// eventNotice — текст статусной строки для фонового события.
// Пустая строка означает "не показывать".
func eventNotice(evt events.Event) string {
	switch data := evt.Data.(type) {
	case events.UploadData:
		switch evt.Type {
		case events.EventUploadStarted:
			return "Загрузка файла: " + data.Filename
		case events.EventUploadDone:
			return "Файл загружен: " + data.Filename
		case events.EventUploadFailed:
			return "Загрузка не удалась: " + data.Err.Error()
		}
	case events.ImportQueuedData:
		return fmt.Sprintf("Импорт %s в очереди: job %s", data.ImportType, data.JobID)
	case events.ExportSavedData:
		return fmt.Sprintf("Сохранено: %s (%d байт)", data.Path, data.Size)
	case events.ErrorData:
		return errorNotice(data.Err)
	}
	return ""
}

// errorNotice превращает ошибку в строку для статусной строки.
func errorNotice(err error) string {
	if apiErr := api.AsAPIError(err); apiErr != nil {
		return strings.Join(apiErr.Messages(), "; ")
	}
	msg := api.ClassifyError(err).HumanMessage()
	utils.Error("operation failed", "error", err)
	return msg
}

// importNotice — сообщение статусной строки по результату импорта.
func importNotice(outcome importjob.Outcome) string {
	if outcome.Kind == importjob.OutcomeQueued {
		return fmt.Sprintf("Импорт в очереди: job %s (строк: %d)", outcome.JobID, outcome.TotalRows)
	}
	return fmt.Sprintf("Импорт обработан: строк %d, успешно %d, ошибок %d",
		outcome.TotalRows, outcome.SuccessCount, outcome.ErrorCount)
}
