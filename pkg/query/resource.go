package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/ilkoid/partsdesk/pkg/api"
)

// ErrStale возвращается из List, когда ответ пришёл для уже неактуальных
// параметров (пользователь успел сменить страницу/поиск/фильтр или прошла
// мутация). Вызывающий молча игнорирует такой результат.
var ErrStale = errors.New("stale list response discarded")

// PageResult — одна страница списка вместе с пагинацией.
type PageResult[T any] struct {
	Items []T
	Meta  api.Meta
}

// Endpoints описывает пути CRUD операций ресурса.
// Пустой путь означает, что операция для ресурса недоступна.
type Endpoints struct {
	List   string // GET со списком, например "/user/dealer"
	Item   string // GET детали, шаблон с %s: "/products/%s"
	Create string // POST
	Update string // PUT, шаблон с %s
	Delete string // DELETE, шаблон с %s
}

// Resource — generic доступ к одному списочному ресурсу портала.
//
// Отвечает за кэширование списков, инвалидацию после мутаций и
// подавление устаревших ответов. Rule 9: зависит от *api.Client,
// который мокается через HTTPClient.
type Resource[T any] struct {
	name   string
	client *api.Client
	store  *Store
	ep     Endpoints
}

// NewResource создает ресурс с заданными endpoints.
func NewResource[T any](name string, client *api.Client, store *Store, ep Endpoints) *Resource[T] {
	return &Resource[T]{
		name:   name,
		client: client,
		store:  store,
		ep:     ep,
	}
}

// Name возвращает имя ресурса (ключ инвалидации).
func (r *Resource[T]) Name() string {
	return r.name
}

// List возвращает страницу списка.
//
// Повторный запрос с теми же параметрами отдается из кэша без похода в
// сеть. Если за время запроса параметры успели измениться, результат
// отбрасывается с ErrStale.
func (r *Resource[T]) List(ctx context.Context, q ListQuery) (*PageResult[T], error) {
	if r.ep.List == "" {
		return nil, fmt.Errorf("resource %s: list not supported", r.name)
	}

	key := q.Key()
	if cached, ok := r.store.Lookup(r.name, key); ok {
		if page, ok := cached.(*PageResult[T]); ok {
			return page, nil
		}
	}

	ticket := r.store.Begin(r.name)

	var resp api.ListResponse[T]
	if err := r.client.Get(ctx, r.name+"_list", r.ep.List, q.Values(), &resp); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}

	page := &PageResult[T]{Items: resp.Data, Meta: resp.Meta}

	if !r.store.Commit(ticket, key, page) {
		return nil, ErrStale
	}
	return page, nil
}

// Get возвращает детальную запись. Детали не кэшируются: форма
// редактирования всегда открывается на свежих данных.
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	if r.ep.Item == "" {
		return nil, fmt.Errorf("resource %s: get not supported", r.name)
	}

	var resp api.ItemResponse[T]
	path := fmt.Sprintf(r.ep.Item, id)
	if err := r.client.Get(ctx, r.name+"_item", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get %s %s: %w", r.name, id, err)
	}
	return &resp.Data, nil
}

// Create создает запись и инвалидирует кэш списков ресурса.
func (r *Resource[T]) Create(ctx context.Context, input interface{}) (*T, error) {
	if r.ep.Create == "" {
		return nil, fmt.Errorf("resource %s: create not supported", r.name)
	}

	var resp api.ItemResponse[T]
	if err := r.client.Post(ctx, r.name+"_create", r.ep.Create, input, &resp); err != nil {
		return nil, fmt.Errorf("create %s: %w", r.name, err)
	}

	r.store.Invalidate(r.name)
	return &resp.Data, nil
}

// Update обновляет запись и инвалидирует кэш списков ресурса.
func (r *Resource[T]) Update(ctx context.Context, id string, input interface{}) (*T, error) {
	if r.ep.Update == "" {
		return nil, fmt.Errorf("resource %s: update not supported", r.name)
	}

	var resp api.ItemResponse[T]
	path := fmt.Sprintf(r.ep.Update, id)
	if err := r.client.Put(ctx, r.name+"_update", path, input, &resp); err != nil {
		return nil, fmt.Errorf("update %s %s: %w", r.name, id, err)
	}

	r.store.Invalidate(r.name)
	return &resp.Data, nil
}

// Delete удаляет запись и инвалидирует кэш списков ресурса.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	if r.ep.Delete == "" {
		return fmt.Errorf("resource %s: delete not supported", r.name)
	}

	path := fmt.Sprintf(r.ep.Delete, id)
	if err := r.client.Delete(ctx, r.name+"_delete", path); err != nil {
		return fmt.Errorf("delete %s %s: %w", r.name, id, err)
	}

	r.store.Invalidate(r.name)
	return nil
}

// Invalidate сбрасывает кэш ресурса вручную.
//
// Нужен для мутаций вне обычного CRUD (смена статуса дилера, unlock),
// которые выполняются напрямую через клиент.
func (r *Resource[T]) Invalidate() {
	r.store.Invalidate(r.name)
}
