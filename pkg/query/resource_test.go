package query

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedHTTP отдает ответы по очереди и запоминает запросы.
type scriptedHTTP struct {
	requests []*http.Request
	bodies   []string
	statuses []int
}

func (m *scriptedHTTP) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	idx := len(m.requests) - 1
	if idx >= len(m.bodies) {
		idx = len(m.bodies) - 1
	}
	status := 200
	if idx < len(m.statuses) {
		status = m.statuses[idx]
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(m.bodies[idx]))),
	}, nil
}

type testRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func dealerEndpoints() Endpoints {
	return Endpoints{
		List:   "/user/dealer",
		Item:   "/user/dealer/%s",
		Create: "/user/dealer",
		Update: "/user/dealer-update-admin/%s",
		Delete: "/user/dealer/%s",
	}
}

// TestListPagination verifies page/limit forwarding and meta decoding:
// 45 records with limit 20 on page 2 give totalPages 3.
func TestListPagination(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`{
		"success": true,
		"data": [{"id":"21","name":"row21"},{"id":"22","name":"row22"}],
		"meta": {"page":2,"limit":20,"total":45,"totalPages":3}
	}`}}
	client := api.NewWithHTTPClient("https://portal.test/api", mock)
	res := NewResource[testRow]("dealers", client, NewStore(), dealerEndpoints())

	page, err := res.List(context.Background(), NewListQuery(20).WithPage(2))

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "21", page.Items[0].ID)
	assert.Equal(t, 2, page.Meta.Page)
	assert.Equal(t, 45, page.Meta.Total)
	assert.Equal(t, 3, page.Meta.TotalPages)

	q := mock.requests[0].URL.Query()
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "20", q.Get("limit"))
}

// TestListServedFromCache verifies the second identical request skips HTTP.
func TestListServedFromCache(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`{"success":true,"data":[{"id":"1"}],"meta":{"page":1,"limit":20,"total":1,"totalPages":1}}`}}
	client := api.NewWithHTTPClient("https://portal.test/api", mock)
	res := NewResource[testRow]("dealers", client, NewStore(), dealerEndpoints())

	q := NewListQuery(20)
	first, err := res.List(context.Background(), q)
	require.NoError(t, err)

	second, err := res.List(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, mock.requests, 1, "cache hit must not produce a second HTTP request")
}

// TestMutationInvalidatesList verifies create forces a refetch of the list.
func TestMutationInvalidatesList(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{
		`{"success":true,"data":[{"id":"1"}],"meta":{"page":1,"limit":20,"total":1,"totalPages":1}}`,
		`{"success":true,"data":{"id":"2","name":"new"}}`,
		`{"success":true,"data":[{"id":"1"},{"id":"2"}],"meta":{"page":1,"limit":20,"total":2,"totalPages":1}}`,
	}}
	client := api.NewWithHTTPClient("https://portal.test/api", mock)
	res := NewResource[testRow]("dealers", client, NewStore(), dealerEndpoints())

	q := NewListQuery(20)
	_, err := res.List(context.Background(), q)
	require.NoError(t, err)

	created, err := res.Create(context.Background(), map[string]string{"name": "new"})
	require.NoError(t, err)
	assert.Equal(t, "2", created.ID)

	page, err := res.List(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Len(t, mock.requests, 3, "list after mutation must refetch")
}

// TestDeleteInvalidatesList verifies delete drops the cached page.
func TestDeleteInvalidatesList(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{
		`{"success":true,"data":[{"id":"1"}],"meta":{"page":1,"limit":20,"total":1,"totalPages":1}}`,
		`{"success":true,"data":null}`,
		`{"success":true,"data":[],"meta":{"page":1,"limit":20,"total":0,"totalPages":0}}`,
	}}
	client := api.NewWithHTTPClient("https://portal.test/api", mock)
	res := NewResource[testRow]("banners", client, NewStore(), Endpoints{
		List:   "/cms/banner",
		Create: "/cms/banner",
		Update: "/cms/banner/%s",
		Delete: "/cms/banner/%s",
	})

	q := NewListQuery(20)
	_, err := res.List(context.Background(), q)
	require.NoError(t, err)

	require.NoError(t, res.Delete(context.Background(), "1"))

	page, err := res.List(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	require.Len(t, mock.requests, 3)
	assert.Equal(t, http.MethodDelete, mock.requests[1].Method)
	assert.Equal(t, "/api/cms/banner/1", mock.requests[1].URL.Path)
}

// TestUnsupportedOperations verifies empty endpoint paths are rejected.
func TestUnsupportedOperations(t *testing.T) {
	client := api.NewWithHTTPClient("https://portal.test/api", &scriptedHTTP{bodies: []string{`{}`}})
	res := NewResource[testRow]("orders", client, NewStore(), Endpoints{List: "/orders"})

	_, err := res.Create(context.Background(), nil)
	require.Error(t, err)

	_, err = res.Update(context.Background(), "1", nil)
	require.Error(t, err)

	err = res.Delete(context.Background(), "1")
	require.Error(t, err)
}

// TestGetFetchesFresh verifies details are never served from cache.
func TestGetFetchesFresh(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{
		`{"success":true,"data":{"id":"7","name":"fresh-1"}}`,
		`{"success":true,"data":{"id":"7","name":"fresh-2"}}`,
	}}
	client := api.NewWithHTTPClient("https://portal.test/api", mock)
	res := NewResource[testRow]("products", client, NewStore(), Endpoints{
		List: "/products/admin",
		Item: "/products/%s",
	})

	first, err := res.Get(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "fresh-1", first.Name)

	second, err := res.Get(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "fresh-2", second.Name)
	assert.Len(t, mock.requests, 2)
}
