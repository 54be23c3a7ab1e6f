package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ladelicato/salesbot/bot"
	"github.com/ladelicato/salesbot/store"
)

func newTestServer(t *testing.T) (*Server, *store.FileStore) {
	t.Helper()

	fs, err := store.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	return New(fs, bot.NewStatus(), "http://localhost:3000", 89.90), fs
}

func TestAddSaleUsesDefaultsAndSyntheticID(t *testing.T) {
	srv, fs := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/vendas", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var sr SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sr))
	require.Equal(t, "ok", sr.Status)
	require.True(t, strings.HasPrefix(sr.Sale.ThreadID, "manual_"))
	require.Equal(t, "Cliente Manual", sr.Sale.Customer)
	require.Equal(t, 89.90, sr.Sale.Amount)

	sales, err := fs.Sales()
	require.NoError(t, err)
	require.Len(t, sales, 1)
}

func TestAddSaleWithExplicitFields(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/vendas", strings.NewReader(`{"cliente":"Ana","valor":150.0}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var sr SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sr))
	require.Equal(t, "Ana", sr.Sale.Customer)
	require.Equal(t, 150.0, sr.Sale.Amount)
}

func TestEditSaleUpdatesOnlyProvidedFields(t *testing.T) {
	srv, fs := newTestServer(t)

	require.NoError(t, fs.AddSale(store.SaleRecord{ThreadID: "t-1", Customer: "Maria", Amount: 89.90}))

	req := httptest.NewRequest("PUT", "/api/vendas/0", strings.NewReader(`{"valor":120.0}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var sr SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sr))
	require.Equal(t, "Maria", sr.Sale.Customer)
	require.Equal(t, 120.0, sr.Sale.Amount)
}

func TestEditSaleRejectsBadIndex(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("PUT", "/api/vendas/7", strings.NewReader(`{"valor":120.0}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	req = httptest.NewRequest("PUT", "/api/vendas/abc", strings.NewReader(`{"valor":120.0}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err = srv.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)
}

func TestListSalesReturnsEmptyArrayNotNull(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/vendas", nil)
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "[]", strings.TrimSpace(string(body)))
}

func TestMetricsEndpoint(t *testing.T) {
	srv, fs := newTestServer(t)

	require.NoError(t, fs.MarkPending("t-1"))

	req := httptest.NewRequest("GET", "/api/dashboard/metrics", nil)
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var m MetricsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	require.Equal(t, 1, m.PendingClients)
	require.False(t, m.BotOnline)
	require.NotEmpty(t, m.LastUpdate)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}
