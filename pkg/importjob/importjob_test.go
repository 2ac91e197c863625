package importjob

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/ilkoid/partsdesk/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

// TestClassify verifies the structural outcome check: Queued requires BOTH
// jobId and statusUrl, everything else is synchronous.
func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		raw      api.ImportAccepted
		expected OutcomeKind
	}{
		{
			name:     "counts only",
			raw:      api.ImportAccepted{TotalRows: 100, SuccessCount: 98, ErrorCount: 2},
			expected: OutcomeSynchronous,
		},
		{
			name:     "job id and status url",
			raw:      api.ImportAccepted{TotalRows: 5000, JobID: "j42", StatusURL: "/import/j42/stats"},
			expected: OutcomeQueued,
		},
		{
			name:     "job id without status url stays synchronous",
			raw:      api.ImportAccepted{TotalRows: 10, JobID: "j42"},
			expected: OutcomeSynchronous,
		},
		{
			name:     "status url without job id stays synchronous",
			raw:      api.ImportAccepted{TotalRows: 10, StatusURL: "/import/j42/stats"},
			expected: OutcomeSynchronous,
		},
		{
			name:     "counts plus extra fields stay synchronous",
			raw:      api.ImportAccepted{TotalRows: 10, SuccessCount: 10, StatusURL: "/noise"},
			expected: OutcomeSynchronous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Classify(tt.raw)
			assert.Equal(t, tt.expected, outcome.Kind)
			assert.Equal(t, tt.raw.TotalRows, outcome.TotalRows)
			if tt.expected == OutcomeQueued {
				assert.NotEmpty(t, outcome.JobID)
				assert.NotEmpty(t, outcome.StatusURL)
			}
		})
	}
}

// TestSubmitUnknownType verifies an unknown type fails without any HTTP call.
func TestSubmitUnknownType(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`{}`}}
	client := New(api.NewWithHTTPClient("https://portal.test/api", mock), query.NewStore())

	_, err := client.Submit(context.Background(), Type("BOGUS"), "x.xlsx", []byte("data"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown import type")
	assert.Empty(t, mock.requests, "unknown type must not reach the server")
}

// TestSubmitRoutesByType verifies each type hits its own endpoint.
func TestSubmitRoutesByType(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`{"success":true,"data":{"totalRows":3,"successCount":3,"errorCount":0}}`}}
	client := New(api.NewWithHTTPClient("https://portal.test/api", mock), query.NewStore())

	outcome, err := client.Submit(context.Background(), TypeDealers, "dealers.xlsx", []byte("xlsx"))

	require.NoError(t, err)
	assert.Equal(t, OutcomeSynchronous, outcome.Kind)
	assert.Equal(t, 3, outcome.SuccessCount)
	require.Len(t, mock.requests, 1)
	assert.Equal(t, "/api/import/dealers", mock.requests[0].URL.Path)
	assert.Contains(t, mock.requests[0].Header.Get("Content-Type"), "multipart/form-data")
}

// TestSubmitInvalidatesLog verifies the import log cache is dropped after upload.
func TestSubmitInvalidatesLog(t *testing.T) {
	store := query.NewStore()
	require.True(t, store.Commit(store.Begin(LogResourceName), "page=1", "cached-log"))

	mock := &scriptedHTTP{bodies: []string{`{"success":true,"data":{"totalRows":1,"jobId":"j1","statusUrl":"/import/j1/stats"}}`}}
	client := New(api.NewWithHTTPClient("https://portal.test/api", mock), store)

	outcome, err := client.Submit(context.Background(), TypeParts, "parts.xlsx", []byte("xlsx"))

	require.NoError(t, err)
	assert.Equal(t, OutcomeQueued, outcome.Kind)
	_, found := store.Lookup(LogResourceName, "page=1")
	assert.False(t, found)
}

// TestErrorsPaginated verifies the per-import error list follows the list contract.
func TestErrorsPaginated(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`{
		"success": true,
		"data": [{"rowNumber":7,"rowData":"ACC-1,foo","errors":["tier is invalid"]}],
		"meta": {"page":1,"limit":20,"total":1,"totalPages":1}
	}`}}
	client := New(api.NewWithHTTPClient("https://portal.test/api", mock), query.NewStore())

	page, err := client.Errors(context.Background(), "imp1", query.NewListQuery(20))

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 7, page.Items[0].RowNumber)
	assert.Equal(t, []string{"tier is invalid"}, page.Items[0].Errors)
	assert.Equal(t, "/api/import/imp1/errors", mock.requests[0].URL.Path)
}

// TestTemplatePostsType verifies the template download is a POST with a
// JSON {"type": ...} body, not a query parameter.
func TestTemplatePostsType(t *testing.T) {
	mock := &scriptedHTTP{bodies: []string{`xlsx-bytes`}}
	client := New(api.NewWithHTTPClient("https://portal.test/api", mock), query.NewStore())

	blob, err := client.Template(context.Background(), TypeParts)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx-bytes"), blob.Data)

	require.Len(t, mock.requests, 1)
	req := mock.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/import/template", req.URL.Path)
	assert.Empty(t, req.URL.RawQuery)
	sent, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"PARTS"}`, string(sent))
}
