package property_api_client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-client/internal/adapters/metrics"
	"property-client/internal/contextkeys"
	"property-client/internal/core/domain"
	"property-client/internal/testsupport"
)

func seed() []domain.Property {
	return []domain.Property{
		{ID: 1, Address: "Main Street 1", Price: 100000, Size: 50, Description: "first"},
		{ID: 2, Address: "Oak avenue 2", Price: 250000, Size: 80},
		{ID: 3, Address: "MAIN square 3", Price: 175000, Size: 65},
	}
}

func newTestClient(t *testing.T, backend *testsupport.Backend) (*Client, *metrics.Collector) {
	t.Helper()
	collector := metrics.NewCollector("test")
	return NewClient(backend.URL(), 5*time.Second, collector), collector
}

func floatPtr(v float64) *float64 { return &v }

func TestList_SendsOnlyNonEmptyFilters(t *testing.T) {
	backend := testsupport.NewBackend(t, seed()...)
	client, _ := newTestClient(t, backend)

	tests := []struct {
		name    string
		filters domain.FilterState
		want    map[string]string
	}{
		{
			name:    "no filters",
			filters: domain.FilterState{},
			want:    map[string]string{"page": "0", "size": "5"},
		},
		{
			name:    "address is trimmed",
			filters: domain.FilterState{Address: "  main "},
			want:    map[string]string{"page": "0", "size": "5", "address": "main"},
		},
		{
			name:    "blank address is dropped",
			filters: domain.FilterState{Address: "   ", MaxSize: floatPtr(70)},
			want:    map[string]string{"page": "0", "size": "5", "maxSize": "70"},
		},
		{
			name: "all bounds",
			filters: domain.FilterState{
				MinPrice: floatPtr(0), MaxPrice: floatPtr(200000.5),
				MinSize: floatPtr(10), MaxSize: floatPtr(90),
			},
			want: map[string]string{
				"page": "0", "size": "5",
				"minPrice": "0", "maxPrice": "200000.5", "minSize": "10", "maxSize": "90",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.List(context.Background(), domain.ListQuery{Page: 0, Size: domain.PageSize, Filters: tt.filters})
			require.NoError(t, err)

			req, ok := backend.LastRequest()
			require.True(t, ok)
			got := make(map[string]string, len(req.Query))
			for k := range req.Query {
				got[k] = req.Query.Get(k)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("query mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList_MapsPage(t *testing.T) {
	backend := testsupport.NewBackend(t, seed()...)
	client, collector := newTestClient(t, backend)

	page, err := client.List(context.Background(), domain.ListQuery{
		Page:    0,
		Size:    domain.PageSize,
		Filters: domain.FilterState{Address: "main", MaxPrice: floatPtr(175000)},
	})
	require.NoError(t, err)

	want := &domain.PageResult{
		Content: []domain.Property{
			{ID: 1, Address: "Main Street 1", Price: 100000, Size: 50, Description: "first"},
			{ID: 3, Address: "MAIN square 3", Price: 175000, Size: 65},
		},
		Number:     0,
		TotalPages: 1,
	}
	assert.Equal(t, want, page)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.BackendRequests.WithLabelValues("list", "200")))
}

func TestDoRequest_PropagatesTraceID(t *testing.T) {
	backend := testsupport.NewBackend(t, seed()...)
	client, _ := newTestClient(t, backend)

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-123")
	_, err := client.Get(ctx, 2)
	require.NoError(t, err)

	req, _ := backend.LastRequest()
	assert.Equal(t, "trace-123", req.TraceID)
	assert.Equal(t, "/api/properties/2", req.Path)
}

func TestGet_NotFound(t *testing.T) {
	backend := testsupport.NewBackend(t)
	client, collector := newTestClient(t, backend)

	_, err := client.Get(context.Background(), 99)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "get", apiErr.Operation)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.BackendRequests.WithLabelValues("get", "404")))
}

func TestCreateUpdateDelete(t *testing.T) {
	backend := testsupport.NewBackend(t, seed()...)
	client, _ := newTestClient(t, backend)
	ctx := context.Background()

	created, err := client.Create(ctx, domain.PropertyInput{Address: "New 4", Price: 1, Size: 2, Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, &domain.Property{ID: 4, Address: "New 4", Price: 1, Size: 2, Description: "d"}, created)

	req, _ := backend.LastRequest()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.JSONEq(t, `{"address":"New 4","price":1,"size":2,"description":"d"}`, string(req.Body))

	updated, err := client.Update(ctx, 4, domain.PropertyInput{Address: "New 4b", Price: 3, Size: 4})
	require.NoError(t, err)
	assert.Equal(t, "New 4b", updated.Address)
	assert.Equal(t, int64(4), updated.ID)

	require.NoError(t, client.Delete(ctx, 4))
	assert.Len(t, backend.Properties(), 3)

	err = client.Delete(ctx, 4)
	status, ok := domain.StatusCodeOf(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreate_ServerError(t *testing.T) {
	backend := testsupport.NewBackend(t)
	client, _ := newTestClient(t, backend)
	backend.FailNext(http.MethodPost, http.StatusInternalServerError)

	_, err := client.Create(context.Background(), domain.PropertyInput{Address: "A", Price: 1, Size: 1})

	status, ok := domain.StatusCodeOf(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Empty(t, backend.Properties())
}

func TestSave_EmptyBodyReturnsInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api/properties", time.Second, nil)
	updated, err := client.Update(context.Background(), 9, domain.PropertyInput{Address: "A", Price: 1, Size: 2})

	require.NoError(t, err)
	assert.Equal(t, &domain.Property{ID: 9, Address: "A", Price: 1, Size: 2}, updated)
}

func TestList_ContractViolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[],"page":0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)
	_, err := client.List(context.Background(), domain.ListQuery{Page: 0, Size: 5})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContractViolation))
}

func TestList_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	collector := metrics.NewCollector("test")
	client := NewClient(url, time.Second, collector)
	_, err := client.List(context.Background(), domain.ListQuery{Page: 0, Size: 5})

	require.Error(t, err)
	_, isAPIErr := domain.StatusCodeOf(err)
	assert.False(t, isAPIErr)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.BackendRequests.WithLabelValues("list", "error")))
}
