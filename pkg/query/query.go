// Package query реализует слой списочных ресурсов поверх pkg/api:
// параметры списков, кэш по ключу запроса, инвалидацию после мутаций
// и подавление устаревших ответов.
//
// Architecture (Rule 5, Rule 6):
//   - ListQuery - неизменяемое описание параметров списка (copy-on-change)
//   - Store - thread-safe кэш с поколениями per-resource
//   - Resource[T] - generic CRUD поверх клиента и кэша
//
// UI слой не знает про HTTP: он работает с Resource и получает PageResult.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ListQuery описывает параметры списочного запроса.
//
// Значение, а не указатель: любое изменение возвращает копию. Это
// гарантирует, что ключ кэша, построенный из ListQuery, не изменится
// под ногами у in-flight запроса.
type ListQuery struct {
	Page    int
	Limit   int
	Search  string
	Sort    string
	filters map[string]string
}

// NewListQuery создает запрос первой страницы с заданным limit.
func NewListQuery(limit int) ListQuery {
	return ListQuery{Page: 1, Limit: limit}
}

// WithPage возвращает копию с другой страницей.
func (q ListQuery) WithPage(page int) ListQuery {
	if page < 1 {
		page = 1
	}
	q.Page = page
	return q
}

// WithSearch возвращает копию с новой поисковой строкой.
//
// Любая смена поиска сбрасывает страницу на первую: старый номер страницы
// для нового результата не имеет смысла.
func (q ListQuery) WithSearch(search string) ListQuery {
	if q.Search == search {
		return q
	}
	q.Search = search
	q.Page = 1
	return q
}

// WithFilter возвращает копию с установленным фильтром.
// Пустое значение удаляет фильтр. Смена фильтра сбрасывает страницу.
func (q ListQuery) WithFilter(key, value string) ListQuery {
	if q.filters[key] == value {
		return q
	}
	filters := make(map[string]string, len(q.filters)+1)
	for k, v := range q.filters {
		filters[k] = v
	}
	if value == "" {
		delete(filters, key)
	} else {
		filters[key] = value
	}
	q.filters = filters
	q.Page = 1
	return q
}

// WithSort возвращает копию с новой сортировкой. Страница сбрасывается.
func (q ListQuery) WithSort(sortBy string) ListQuery {
	if q.Sort == sortBy {
		return q
	}
	q.Sort = sortBy
	q.Page = 1
	return q
}

// Filter возвращает текущее значение фильтра ("" если не установлен).
func (q ListQuery) Filter(key string) string {
	return q.filters[key]
}

// Values сериализует запрос в query параметры.
//
// Пустые значения не попадают в URL: backend трактует отсутствие
// параметра и пустую строку по-разному, отправляем только значимое.
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}
	for k, v := range q.filters {
		if v != "" {
			values.Set(k, v)
		}
	}
	return values
}

// FilterValues возвращает поиск, сортировку и фильтры без пагинации.
// Экспорты отдают весь набор под текущими фильтрами, страница не нужна.
func (q ListQuery) FilterValues() url.Values {
	values := q.Values()
	values.Del("page")
	values.Del("limit")
	return values
}

// Key возвращает канонический ключ кэша для этого запроса.
// Одинаковые параметры всегда дают одинаковый ключ (ключи отсортированы).
func (q ListQuery) Key() string {
	values := q.Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(values.Get(k))
	}
	return b.String()
}
