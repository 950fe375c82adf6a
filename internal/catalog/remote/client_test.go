package remote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maxgear/internal/catalog"
	"maxgear/internal/catalog/memory"
	"maxgear/internal/catalog/stub"
	"maxgear/internal/domain"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig(baseURL)
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 5 * time.Millisecond
	cfg.RateLimit = 0
	return cfg
}

func newTestClient(t *testing.T, cfg Config, opts ...Option) *Client {
	t.Helper()
	c, err := New(cfg, nil, opts...)
	require.NoError(t, err)
	return c
}

func serve(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchProductsAgainstStub(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	srv := httptest.NewServer(stub.NewRouter(memory.New(memory.SeedProducts()), logger))
	defer srv.Close()

	c := newTestClient(t, testConfig(srv.URL))
	items, err := c.SearchProducts(context.Background(), "febest")
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "0130-ACV40", items[0].Code)
	assert.Equal(t, "1", items[0].SupplierID.String())
	require.NotNil(t, items[0].PriceEUR)
	assert.InDelta(t, 9.8, *items[0].PriceEUR, 0.0001)
	assert.Nil(t, items[3].PriceEUR)
}

func TestSearchSendsQueryAndRequestID(t *testing.T) {
	var gotQuery, gotID, gotPath string
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`[]`))
	})

	c := newTestClient(t, testConfig(srv.URL+"/api/"))
	ctx := catalog.WithRequestID(context.Background(), "req-42")
	items, err := c.SearchProducts(ctx, "oil filter & co")
	require.NoError(t, err)

	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, "/api/products/search", gotPath)
	assert.Equal(t, "oil filter & co", gotQuery)
	assert.Equal(t, "req-42", gotID)
}

func TestSearchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"code":"OC 90","supplier_id":2,"brand":"Mahle","name":"Oil filter","stock":40,"price_eur":6.35}]`))
	})

	c := newTestClient(t, testConfig(srv.URL))
	items, err := c.SearchProducts(context.Background(), "oc 90")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.ProductKey{Code: "OC 90", SupplierID: "2"}, items[0].Key())
	assert.Equal(t, int32(2), calls.Load())
}

func TestSearchDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"query too short"}`))
	})

	c := newTestClient(t, testConfig(srv.URL))
	_, err := c.SearchProducts(context.Background(), "x")
	require.Error(t, err)

	var statusErr *catalog.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.Status)
	assert.Equal(t, "query too short", catalog.Message(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearchErrorBodies(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail", http.StatusNotFound, `{"detail":"Not Found"}`, "Not Found"},
		{"error envelope", http.StatusInternalServerError, `{"error":{"code":"INTERNAL","message":"database unavailable"}}`, "database unavailable"},
		{"message", http.StatusBadGateway, `{"message":"upstream down"}`, "upstream down"},
		{"validation detail list", http.StatusUnprocessableEntity, `{"detail":[{"loc":["query","q"]}]}`, "catalog service returned 422 Unprocessable Entity"},
		{"plain text", http.StatusInternalServerError, `boom`, "catalog service returned 500 Internal Server Error"},
		{"empty", http.StatusServiceUnavailable, ``, "catalog service returned 503 Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			cfg := testConfig(srv.URL)
			cfg.MaxRetries = 0
			c := newTestClient(t, cfg)

			_, err := c.SearchProducts(context.Background(), "febest")
			require.Error(t, err)
			assert.Equal(t, tt.want, catalog.Message(err))
		})
	}
}

func TestSearchMalformedPayload(t *testing.T) {
	bodies := map[string]string{
		"object":       `{"items":[]}`,
		"null":         `null`,
		"not json":     `<html>oops</html>`,
		"empty":        ``,
		"wrong types":  `[{"code":7,"supplier_id":"1"}]`,
		"truncated":    `[{"code":"A"`,
		"bad supplier": `[{"code":"A","supplier_id":{"id":1}}]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			c := newTestClient(t, testConfig(srv.URL))
			items, err := c.SearchProducts(context.Background(), "febest")
			assert.Nil(t, items)
			assert.ErrorIs(t, err, catalog.ErrMalformedPayload)
		})
	}
}

func TestSearchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := testConfig(url)
	cfg.MaxRetries = 0
	c := newTestClient(t, cfg)

	_, err := c.SearchProducts(context.Background(), "febest")
	assert.ErrorIs(t, err, catalog.ErrTransport)
}

func TestSearchCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	t.Cleanup(func() { close(release) })

	c := newTestClient(t, testConfig(srv.URL))
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := c.SearchProducts(ctx, "febest")
	assert.ErrorIs(t, err, catalog.ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, gobreaker.StateClosed, c.State())
}

func TestSearchRateLimiterHonoursContext(t *testing.T) {
	var calls atomic.Int32
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	})

	cfg := testConfig(srv.URL)
	cfg.RateLimit = 1
	cfg.Burst = 1
	c := newTestClient(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SearchProducts(ctx, "febest")
	assert.ErrorIs(t, err, catalog.ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestCircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	var mu sync.Mutex
	var states []float64
	hook := func(name string, state float64) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "catalog", name)
		states = append(states, state)
	}

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0
	cfg.Breaker.MinRequests = 2
	cfg.Breaker.Timeout = time.Minute
	c := newTestClient(t, cfg, WithStateHook(hook))

	for range 2 {
		_, err := c.SearchProducts(context.Background(), "febest")
		var statusErr *catalog.StatusError
		require.ErrorAs(t, err, &statusErr)
	}
	assert.Equal(t, gobreaker.StateOpen, c.State())

	_, err := c.SearchProducts(context.Background(), "febest")
	assert.ErrorIs(t, err, catalog.ErrTransport)
	assert.Equal(t, int32(2), calls.Load())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []float64{2}, states)
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	cfg := testConfig(srv.URL)
	cfg.Breaker.MinRequests = 1
	c := newTestClient(t, cfg)

	for range 3 {
		_, err := c.SearchProducts(context.Background(), "febest")
		require.Error(t, err)
		assert.False(t, errors.Is(err, catalog.ErrTransport))
	}
	assert.Equal(t, gobreaker.StateClosed, c.State())
}

func TestHealth(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	up := httptest.NewServer(stub.NewRouter(memory.New(nil), logger))
	defer up.Close()

	c := newTestClient(t, testConfig(up.URL))
	assert.NoError(t, c.Health(context.Background()))

	down := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	c = newTestClient(t, testConfig(down.URL))

	var statusErr *catalog.StatusError
	require.ErrorAs(t, c.Health(context.Background()), &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Status)
}

func TestNewRejectsInvalidURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "ftp://example.com", "http://"} {
		_, err := New(DefaultConfig(raw), nil)
		assert.Error(t, err, raw)
	}
}
