package ui

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/ilkoid/partsdesk/pkg/export"
	"github.com/ilkoid/partsdesk/pkg/importjob"
	"github.com/ilkoid/partsdesk/pkg/query"
)

type scriptedHTTP struct {
	requests []*http.Request
	bodies   []string
}

func (m *scriptedHTTP) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	idx := len(m.requests) - 1
	if idx >= len(m.bodies) {
		idx = len(m.bodies) - 1
	}
	return &http.Response{
		StatusCode: 200,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(m.bodies[idx]))),
	}, nil
}

func testDeps(mock *scriptedHTTP) *Deps {
	client := api.NewWithHTTPClient("https://portal.test/api", mock)
	store := query.NewStore()
	return &Deps{
		API:     client,
		Store:   store,
		Imports: importjob.New(client, store),
		Actor:   "admin@portal.test",
	}
}

// TestBannerDeleteRemovesFromList verifies the confirm-accept flow result:
// after delete, the refetched banner list no longer contains the id.
func TestBannerDeleteRemovesFromList(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{
		`{"success":true,"data":[{"id":"b1","title":"Old","imgae":"u1","active":true},{"id":"b2","title":"Keep","imgae":"u2","active":true}],"meta":{"page":1,"limit":20,"total":2,"totalPages":1}}`,
		`{"success":true,"data":null}`,
		`{"success":true,"data":[{"id":"b2","title":"Keep","imgae":"u2","active":true}],"meta":{"page":1,"limit":20,"total":1,"totalPages":1}}`,
	}}
	deps := testDeps(mock)
	screen := deps.bannersScreen()
	ctx := context.Background()

	page, err := screen.Fetch(ctx, query.NewListQuery(20))
	require.NoError(t, err)
	require.Len(t, page.Rows, 2)

	require.NoError(t, screen.Delete(ctx, "b1"))

	page, err = screen.Fetch(ctx, query.NewListQuery(20))
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "b2", page.Rows[0].ID)

	// Удаление инвалидировало кэш: второй fetch ушел в сеть
	assert.Len(t, mock.requests, 3)
	assert.Equal(t, http.MethodDelete, mock.requests[1].Method)
	assert.Equal(t, "/api/cms/banner/b1", mock.requests[1].URL.Path)
}

// TestDealerRowsMapNestedProfile verifies the nested dealer object lands in
// cells and edit prefill fields.
func TestDealerRowsMapNestedProfile(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`{
		"success": true,
		"data": [{
			"id": "u1", "email": "a@b.c", "firstName": "Jo", "lastName": "Doe",
			"dealer": {"id":"d1","accountNum":"1001","companyName":"Acme","tier":"Net3","status":"Active","locked":true}
		}],
		"meta": {"page":1,"limit":20,"total":1,"totalPages":1}
	}`}}
	deps := testDeps(mock)
	screen := deps.dealersScreen()

	page, err := screen.Fetch(context.Background(), query.NewListQuery(20))
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)

	row := page.Rows[0]
	assert.Equal(t, "u1", row.ID)
	assert.Equal(t, "1001", row.Cells[0])
	assert.Equal(t, "Acme", row.Cells[1])
	assert.Equal(t, "Active", row.Cells[4])
	assert.Equal(t, "locked", row.Cells[5])
	assert.Equal(t, "Net3", row.Fields["tier"])
	assert.Equal(t, "Active", row.Fields["_status"])
}

// TestDealerToggleNeverSuspends verifies the status action only flips
// Active/Inactive: Suspended is not a reachable target from the console.
func TestDealerToggleNeverSuspends(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`{"success":true,"data":null}`}}
	deps := testDeps(mock)
	screen := deps.dealersScreen()

	var toggle RowAction
	for _, a := range screen.Actions {
		if a.Key == "t" {
			toggle = a
		}
	}
	require.NotNil(t, toggle.Run)

	// Активный дилер выключается
	_, err := toggle.Run(context.Background(), Row{ID: "u1", Fields: map[string]string{"_status": "Active"}}, query.NewListQuery(20))
	require.NoError(t, err)

	// Suspended дилер включается, а не остается suspended
	_, err = toggle.Run(context.Background(), Row{ID: "u2", Fields: map[string]string{"_status": "Suspended"}}, query.NewListQuery(20))
	require.NoError(t, err)

	require.Len(t, mock.requests, 2)
	body1, _ := io.ReadAll(mock.requests[0].Body)
	body2, _ := io.ReadAll(mock.requests[1].Body)
	assert.Contains(t, string(body1), `"Inactive"`)
	assert.Contains(t, string(body2), `"Active"`)
}

// TestMarqueeSingleton verifies the singleton screen yields exactly one row.
func TestMarqueeSingleton(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`{"success":true,"data":{"id":"m1","text":"Free shipping","active":true}}`}}
	deps := testDeps(mock)
	screen := deps.marqueeScreen()

	page, err := screen.Fetch(context.Background(), query.NewListQuery(20))
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Free shipping", page.Rows[0].Cells[0])
	assert.False(t, screen.CanCreate())
	assert.False(t, screen.CanDelete())
	assert.True(t, screen.CanEdit())
}

// TestImportRowsCarryRawType verifies the raw enum survives next to the label.
func TestImportRowsCarryRawType(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`{
		"success": true,
		"data": [{"id":"i1","type":"ORDER_STATUS","status":"COMPLETED","filename":"s.xlsx","totalRows":10,"errorRows":0,"createdAt":"2026-08-30"}],
		"meta": {"page":1,"limit":20,"total":1,"totalPages":1}
	}`}}
	deps := testDeps(mock)
	screen := deps.importLogsScreen()

	page, err := screen.Fetch(context.Background(), query.NewListQuery(20))
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Order status", page.Rows[0].Cells[0])
	assert.Equal(t, "ORDER_STATUS", page.Rows[0].Fields["_type"])
}

// TestMasterDataReplacesDealerFilters verifies reference data from the
// backend overrides the static status options.
func TestMasterDataReplacesDealerFilters(t *testing.T) {
	deps := testDeps(&scriptedHTTP{bodies: []string{`{}`}})
	m := InitialModel(deps, 20)

	m.applyMasterData(masterDataMsg{
		dealerStatuses: []api.DealerStatusOption{
			{Value: "Active", Label: "Активен"},
			{Value: "Inactive", Label: "Неактивен"},
		},
		dispatchMethods: []api.DispatchMethod{{Code: "UPS", Label: "UPS Ground"}},
	})

	var dealers *Screen
	for _, s := range m.screens {
		if s.ID == "dealers" {
			dealers = s
		}
	}
	require.NotNil(t, dealers)
	for _, f := range dealers.Filters {
		if f.Key == "status" {
			assert.Equal(t, []string{"Active", "Inactive"}, f.Options)
		}
	}
	found := false
	for _, f := range dealers.FormSpecs {
		if f.Key == "dispatchMethod" {
			found = true
			assert.Contains(t, f.Label, "UPS")
		}
	}
	assert.True(t, found)
}

// TestOrdersExportForwardsFilters verifies "export all" carries the active
// search and filters but never pagination.
func TestOrdersExportForwardsFilters(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`xlsx-bytes`}}
	deps := testDeps(mock)
	deps.Saver = export.NewSaver(t.TempDir())
	screen := deps.ordersScreen()

	var exportAll RowAction
	for _, a := range screen.Actions {
		if a.Key == "X" {
			exportAll = a
		}
	}
	require.NotNil(t, exportAll.Run)

	q := query.NewListQuery(20).WithSearch("gasket").WithFilter("status", "PROCESSING").WithPage(3)
	_, err := exportAll.Run(context.Background(), Row{}, q)
	require.NoError(t, err)

	require.Len(t, mock.requests, 1)
	sent := mock.requests[0].URL.Query()
	assert.Equal(t, "gasket", sent.Get("search"))
	assert.Equal(t, "PROCESSING", sent.Get("status"))
	assert.Empty(t, sent.Get("page"))
	assert.Empty(t, sent.Get("limit"))
}

// TestAdminToggleUsesStatusEndpoint verifies deactivation goes through
// PATCH /user/admin-status/{id} with {"status": bool}.
func TestAdminToggleUsesStatusEndpoint(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`{"success":true,"data":null}`}}
	deps := testDeps(mock)
	screen := deps.adminsScreen()

	assert.False(t, screen.CanDelete())

	var toggle RowAction
	for _, a := range screen.Actions {
		if a.Key == "t" {
			toggle = a
		}
	}
	require.NotNil(t, toggle.Run)

	_, err := toggle.Run(context.Background(), Row{ID: "a7", Fields: map[string]string{"_active": "true"}}, query.NewListQuery(20))
	require.NoError(t, err)

	require.Len(t, mock.requests, 1)
	req := mock.requests[0]
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/api/user/admin-status/a7", req.URL.Path)
	sent, readErr := io.ReadAll(req.Body)
	require.NoError(t, readErr)
	assert.JSONEq(t, `{"status":false}`, string(sent))
}

// TestProductsHaveNoCreateOrDelete verifies catalog records only arrive via
// imports: the screen offers edit only.
func TestProductsHaveNoCreateOrDelete(t *testing.T) {
	deps := testDeps(&scriptedHTTP{bodies: []string{`{}`}})
	screen := deps.productsScreen()

	assert.False(t, screen.CanCreate())
	assert.False(t, screen.CanDelete())
	assert.True(t, screen.CanEdit())
}

// TestMarqueeUpdateAddressesRow verifies the PUT path carries the row id.
func TestMarqueeUpdateAddressesRow(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`{"success":true,"data":null}`}}
	deps := testDeps(mock)
	screen := deps.marqueeScreen()

	err := screen.Update(context.Background(), "m1", map[string]interface{}{"text": "Hi", "active": "true"})
	require.NoError(t, err)

	require.Len(t, mock.requests, 1)
	assert.Equal(t, http.MethodPut, mock.requests[0].Method)
	assert.Equal(t, "/api/cms/marquee/m1", mock.requests[0].URL.Path)
}

// TestScreenTagsCarryColors verifies list screens surface the colored status
// tag of the selected row.
func TestScreenTagsCarryColors(t *testing.T) {
	deps := testDeps(&scriptedHTTP{bodies: []string{`{}`}})

	dealers := deps.dealersScreen()
	require.NotNil(t, dealers.Tag)
	tag, ok := dealers.Tag(Row{Fields: map[string]string{"_status": "Active"}})
	require.True(t, ok)
	assert.Equal(t, "Active", tag.Label)
	assert.NotEmpty(t, tag.Bg)
	assert.NotEmpty(t, tag.Fg)
	assert.Contains(t, tag.Render(), "Active")

	// Строка без статуса не дает тега
	_, ok = dealers.Tag(Row{})
	assert.False(t, ok)

	orders := deps.ordersScreen()
	require.NotNil(t, orders.Tag)
	tag, ok = orders.Tag(Row{Fields: map[string]string{"_status": "BACKORDER"}})
	require.True(t, ok)
	assert.Equal(t, "Backorder", tag.Label)
}
