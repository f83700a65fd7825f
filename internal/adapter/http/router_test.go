package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterhttp "github.com/iho/txreplay/internal/adapter/http"
	"github.com/iho/txreplay/internal/adapter/http/dto"
	"github.com/iho/txreplay/internal/adapter/http/handler"
	"github.com/iho/txreplay/internal/infrastructure/metrics"
	"github.com/iho/txreplay/internal/ledger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := ledger.NewSyncStore(ledger.NewStore())
	return adapterhttp.NewRouter(adapterhttp.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(store),
		AccountHandler:     handler.NewAccountHandler(store),
		HealthHandler:      handler.NewHealthHandler(),
		Metrics:            metrics.New(prometheus.NewRegistry()),
	})
}

func TestRouter_TransactionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := post(`{"type":"deposit","client":1,"tx":1,"amount":"10.0"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = post(`{"type":"dispute","client":1,"tx":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0.0000", resp.Available)
	assert.Equal(t, "10.0000", resp.Held)

	rec = post(`{"type":"chargeback","client":1,"tx":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// the account is now locked, further transactions bounce
	rec = post(`{"type":"deposit","client":1,"tx":2,"amount":"5.0"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "account_locked", errResp.Code)

	// summary endpoint reflects the final state
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0.0000", resp.Total)
	assert.True(t, resp.Locked)
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
