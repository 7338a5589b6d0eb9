package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruis/nsetrack/httpx"
	"github.com/gruis/nsetrack/source"
)

func nseServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/api/index-quote" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("missing user agent")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newNSE(srv *httptest.Server) *source.NSE {
	return source.NewNSE(source.NSEConfig{BaseURL: srv.URL}, httpx.Wrap(srv.Client()))
}

func TestNSE_Fetch_DayHighStandsInForOpen(t *testing.T) {
	t.Parallel()

	srv, _ := nseServer(t, http.StatusOK, `{"lastPrice": 50, "dayHigh": 55, "previousClose": 48}`)

	r, err := newNSE(srv).Fetch(context.Background(), "NIFTY")
	require.NoError(t, err)

	assert.Equal(t, "NIFTY", r.Symbol)
	assert.Equal(t, "nse", r.Source)
	assert.True(t, r.Current.Equal(dec("50")))
	assert.True(t, r.Open.Equal(dec("55")))
	assert.True(t, r.PreviousClose.Equal(dec("48")))
}

func TestNSE_Fetch_QueryAndGroupedNumbers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "BANKNIFTY", r.URL.Query().Get("index"))
		_, _ = w.Write([]byte(`{"lastPrice": "48,210.55", "dayHigh": "48,400.00", "previousClose": "47,950.10"}`))
	}))
	defer srv.Close()

	r, err := newNSE(srv).Fetch(context.Background(), "BANKNIFTY")
	require.NoError(t, err)

	assert.True(t, r.Current.Equal(dec("48210.55")))
	assert.True(t, r.Open.Equal(dec("48400")))
	assert.True(t, r.PreviousClose.Equal(dec("47950.10")))
}

func TestNSE_Fetch_UnsupportedIndex(t *testing.T) {
	t.Parallel()

	srv, calls := nseServer(t, http.StatusOK, `{}`)

	r, err := newNSE(srv).Fetch(context.Background(), "NIFTY 50")

	assert.Nil(t, r)
	require.ErrorIs(t, err, source.UnsupportedIndex)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls), "unsupported codes must not reach the network")
}

func TestNSE_Fetch_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"empty object", http.StatusOK, `{}`},
		{"null", http.StatusOK, `null`},
		{"empty body", http.StatusOK, ``},
		{"missing previous close", http.StatusOK, `{"lastPrice": 50, "dayHigh": 55}`},
		{"dash price", http.StatusOK, `{"lastPrice": "-", "dayHigh": 55, "previousClose": 48}`},
		{"malformed", http.StatusOK, `{"lastPrice":`},
		{"forbidden", http.StatusForbidden, `{"message": "Resource not found"}`},
		{"server error", http.StatusInternalServerError, ``},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := nseServer(t, tt.status, tt.body)

			r, err := newNSE(srv).Fetch(context.Background(), "FINNIFTY")

			assert.Nil(t, r)
			require.ErrorIs(t, err, source.FetchError)
		})
	}
}

func TestNSE_Fetch_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	nse := newNSE(srv)
	srv.Close()

	_, err := nse.Fetch(context.Background(), "MIDCPNIFTY")
	require.ErrorIs(t, err, source.FetchError)
}

func TestNSE_Supports(t *testing.T) {
	t.Parallel()

	nse := source.NewNSE(source.NSEConfig{}, nil)
	for _, code := range source.DefaultCodes {
		assert.True(t, nse.Supports(code), code)
	}
	assert.False(t, nse.Supports("NIFTY IT"))

	custom := source.NewNSE(source.NSEConfig{Codes: []string{"NIFTYIT"}}, nil)
	assert.True(t, custom.Supports("NIFTYIT"))
	assert.False(t, custom.Supports("NIFTY"))
}
