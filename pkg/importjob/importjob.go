// Package importjob реализует клиент массовых импортов портала: загрузку
// xlsx файлов, классификацию ответа (синхронный результат или очередь),
// статистику и постраничный список ошибок по конкретному импорту.
package importjob

import (
	"context"
	"fmt"
	"time"

	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/ilkoid/partsdesk/pkg/events"
	"github.com/ilkoid/partsdesk/pkg/query"
)

// Type — тип импорта. Каждому типу соответствует свой endpoint.
type Type string

const (
	TypeParts       Type = "PARTS"
	TypeDealers     Type = "DEALERS"
	TypeSuperseded  Type = "SUPERSEDED"
	TypeBackorder   Type = "BACKORDER"
	TypeOrderStatus Type = "ORDER_STATUS"
)

// endpoints — карта тип → путь загрузки.
// Неизвестный тип — ошибка конфигурации клиента, в сеть не ходим.
var endpoints = map[Type]string{
	TypeParts:       "/import/products",
	TypeDealers:     "/import/dealers",
	TypeSuperseded:  "/import/superseded",
	TypeBackorder:   "/import/backorders",
	TypeOrderStatus: "/import/order-status",
}

// OutcomeKind — вариант результата загрузки.
type OutcomeKind int

const (
	// OutcomeSynchronous — файл обработан сразу, счетчики известны.
	OutcomeSynchronous OutcomeKind = iota
	// OutcomeQueued — файл поставлен в очередь фонового воркера.
	OutcomeQueued
)

// Outcome — tagged union результата загрузки.
//
// Backend различает варианты только формой ответа. Классификация
// выполняется один раз здесь, сразу после парсинга — остальной код
// никогда не инспектирует сырую форму ответа повторно.
type Outcome struct {
	Kind      OutcomeKind
	TotalRows int

	// Заполнены для OutcomeSynchronous
	SuccessCount int
	ErrorCount   int

	// Заполнены для OutcomeQueued
	JobID     string
	StatusURL string
}

// Classify превращает сырой ответ загрузки в Outcome.
//
// Queued только при структурном наличии ОБОИХ полей jobId и statusUrl.
// Все остальные формы — синхронный результат: появление лишних полей
// в синхронном ответе не должно менять классификацию.
func Classify(raw api.ImportAccepted) Outcome {
	if raw.JobID != "" && raw.StatusURL != "" {
		return Outcome{
			Kind:      OutcomeQueued,
			TotalRows: raw.TotalRows,
			JobID:     raw.JobID,
			StatusURL: raw.StatusURL,
		}
	}
	return Outcome{
		Kind:         OutcomeSynchronous,
		TotalRows:    raw.TotalRows,
		SuccessCount: raw.SuccessCount,
		ErrorCount:   raw.ErrorCount,
	}
}

// Client — клиент импортов поверх api.Client.
//
// После успешной загрузки инвалидирует кэш журнала импортов, чтобы
// экран журнала показал новую запись.
type Client struct {
	api     *api.Client
	store   *query.Store
	emitter events.Emitter
}

// New создает клиент импортов.
func New(apiClient *api.Client, store *query.Store) *Client {
	return &Client{api: apiClient, store: store}
}

// SetEmitter подключает Emitter фоновых событий (Port & Adapter).
//
// nil допустим — события просто не отправляются. Rule 9: UI подписывается
// через events.Subscriber, библиотека про UI ничего не знает.
func (c *Client) SetEmitter(e events.Emitter) {
	c.emitter = e
}

// LogResourceName — имя ресурса журнала импортов в кэше.
const LogResourceName = "import_logs"

// Submit загружает файл импорта и классифицирует результат.
//
// Параметры:
//   - typ: тип импорта (неизвестный тип — ошибка без похода в сеть)
//   - filename: имя файла для multipart поля
//   - data: содержимое файла (ровно один файл на загрузку)
func (c *Client) Submit(ctx context.Context, typ Type, filename string, data []byte) (Outcome, error) {
	path, ok := endpoints[typ]
	if !ok {
		return Outcome{}, fmt.Errorf("unknown import type: %q", typ)
	}

	var resp api.ItemResponse[api.ImportAccepted]
	if err := c.api.PostMultipart(ctx, "import_submit", path, "file", filename, data, &resp); err != nil {
		return Outcome{}, fmt.Errorf("submit %s import: %w", typ, err)
	}

	c.store.Invalidate(LogResourceName)

	outcome := Classify(resp.Data)
	if c.emitter != nil && outcome.Kind == OutcomeQueued {
		c.emitter.Emit(ctx, events.Event{
			Type: events.EventImportQueued,
			Data: events.ImportQueuedData{
				ImportType: string(typ),
				JobID:      outcome.JobID,
				StatusURL:  outcome.StatusURL,
			},
			Timestamp: time.Now(),
		})
	}
	return outcome, nil
}

// Template скачивает xlsx шаблон для типа импорта.
// Backend ждет POST с JSON телом {"type": ...}, не query-параметр.
func (c *Client) Template(ctx context.Context, typ Type) (*api.Blob, error) {
	if _, ok := endpoints[typ]; !ok {
		return nil, fmt.Errorf("unknown import type: %q", typ)
	}

	blob, err := c.api.PostBlob(ctx, "import_template", "/import/template", map[string]string{"type": string(typ)})
	if err != nil {
		return nil, fmt.Errorf("import template %s: %w", typ, err)
	}
	return blob, nil
}

// Stats возвращает агрегаты по одному импорту.
func (c *Client) Stats(ctx context.Context, id string) (*api.ImportStats, error) {
	var resp api.ItemResponse[api.ImportStats]
	path := fmt.Sprintf("/import/%s/stats", id)
	if err := c.api.Get(ctx, "import_stats", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("import stats %s: %w", id, err)
	}
	return &resp.Data, nil
}

// Errors возвращает постраничный список ошибок строк импорта.
// Тот же списочный контракт, что и у остальных ресурсов, со своим
// ключом кэша на каждый import id.
func (c *Client) Errors(ctx context.Context, id string, q query.ListQuery) (*query.PageResult[api.ImportErrorItem], error) {
	res := query.NewResource[api.ImportErrorItem](
		"import_errors:"+id,
		c.api,
		c.store,
		query.Endpoints{List: fmt.Sprintf("/import/%s/errors", id)},
	)
	return res.List(ctx, q)
}

// ErrorsExport скачивает полный xlsx со всеми ошибками импорта.
func (c *Client) ErrorsExport(ctx context.Context, id string) (*api.Blob, error) {
	path := fmt.Sprintf("/import/%s/errors/export", id)
	blob, err := c.api.GetBlob(ctx, "import_errors_export", path, nil)
	if err != nil {
		return nil, fmt.Errorf("import errors export %s: %w", id, err)
	}
	return blob, nil
}
