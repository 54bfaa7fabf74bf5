package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkarakas/ledger-core/internal/config"
	"github.com/bkarakas/ledger-core/internal/models"
	"github.com/bkarakas/ledger-core/internal/repository/memory"
	"github.com/bkarakas/ledger-core/internal/services"
	"github.com/bkarakas/ledger-core/internal/worker"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	stores := memory.NewStores()
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)
	audit := services.NewAuditor(stores.AuditLogs, wp)

	us := services.NewUserService(stores.Users, stores.Accounts, audit)
	as := services.NewAccountService(stores.Accounts, stores.Users, audit)
	ts := services.NewTransferService(stores.Accounts, stores.Transactions, stores.Atomic, audit)

	cfg := config.Config{Env: "test", RateRPS: 0}
	srv := httptest.NewServer(NewRouter(cfg, us, as, ts))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, wantCode int, out any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, wantCode, resp.StatusCode)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
}

func TestTransferFlow(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/v1"

	var u models.User
	doJSON(t, "POST", base+"/users", map[string]any{"name": "Ada", "email": "ada@example.com"}, http.StatusCreated, &u)

	var a, b models.Account
	doJSON(t, "POST", base+"/accounts", map[string]any{"user_id": u.ID, "balance": 100}, http.StatusCreated, &a)
	doJSON(t, "POST", base+"/accounts", map[string]any{"user_id": u.ID, "balance": 10}, http.StatusCreated, &b)

	var tx models.Transaction
	doJSON(t, "POST", base+"/transfers", map[string]any{
		"from_account_id": a.ID, "to_account_id": b.ID, "amount": 40, "description": "rent",
	}, http.StatusCreated, &tx)
	assert.Equal(t, models.TxnCompleted, tx.Status)

	doJSON(t, "GET", fmt.Sprintf("%s/accounts/%d", base, a.ID), nil, http.StatusOK, &a)
	doJSON(t, "GET", fmt.Sprintf("%s/accounts/%d", base, b.ID), nil, http.StatusOK, &b)
	assert.Equal(t, int64(60), a.Balance)
	assert.Equal(t, int64(50), b.Balance)

	var got models.Transaction
	doJSON(t, "GET", fmt.Sprintf("%s/transactions/%d", base, tx.ID), nil, http.StatusOK, &got)
	assert.Equal(t, tx.ID, got.ID)

	var txs []models.Transaction
	doJSON(t, "GET", fmt.Sprintf("%s/accounts/%d/transactions", base, a.ID), nil, http.StatusOK, &txs)
	require.Len(t, txs, 1)
}

func TestTransferErrorStatusCodes(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/v1"

	var u models.User
	doJSON(t, "POST", base+"/users", map[string]any{"name": "Ada", "email": "ada@example.com"}, http.StatusCreated, &u)
	var a, b models.Account
	doJSON(t, "POST", base+"/accounts", map[string]any{"user_id": u.ID, "balance": 100}, http.StatusCreated, &a)
	doJSON(t, "POST", base+"/accounts", map[string]any{"user_id": u.ID, "balance": 0}, http.StatusCreated, &b)

	// insufficient funds -> 422
	doJSON(t, "POST", base+"/transfers", map[string]any{
		"from_account_id": a.ID, "to_account_id": b.ID, "amount": 150,
	}, http.StatusUnprocessableEntity, nil)

	// negative amount -> 400
	doJSON(t, "POST", base+"/transfers", map[string]any{
		"from_account_id": a.ID, "to_account_id": b.ID, "amount": -5,
	}, http.StatusBadRequest, nil)

	// unknown account -> 404
	doJSON(t, "POST", base+"/transfers", map[string]any{
		"from_account_id": 999, "to_account_id": b.ID, "amount": 10,
	}, http.StatusNotFound, nil)

	// frozen destination -> 422
	doJSON(t, "PATCH", fmt.Sprintf("%s/accounts/%d", base, b.ID), map[string]any{"status": "frozen"}, http.StatusOK, nil)
	doJSON(t, "POST", base+"/transfers", map[string]any{
		"from_account_id": a.ID, "to_account_id": b.ID, "amount": 10,
	}, http.StatusUnprocessableEntity, nil)

	// balances untouched by any of the failures
	doJSON(t, "GET", fmt.Sprintf("%s/accounts/%d", base, a.ID), nil, http.StatusOK, &a)
	assert.Equal(t, int64(100), a.Balance)
}

func TestUserAndAccountStatusCodes(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/v1"

	// missing fields -> 400
	doJSON(t, "POST", base+"/users", map[string]any{"name": "NoMail"}, http.StatusBadRequest, nil)

	var u models.User
	doJSON(t, "POST", base+"/users", map[string]any{"name": "Ada", "email": "ada@example.com"}, http.StatusCreated, &u)

	// duplicate email -> 409
	doJSON(t, "POST", base+"/users", map[string]any{"name": "Twin", "email": "ada@example.com"}, http.StatusConflict, nil)

	// unknown user -> 404
	doJSON(t, "GET", base+"/users/999", nil, http.StatusNotFound, nil)
	doJSON(t, "GET", base+"/users/999/accounts", nil, http.StatusNotFound, nil)

	// account with funds cannot be deleted -> 409
	var a models.Account
	doJSON(t, "POST", base+"/accounts", map[string]any{"user_id": u.ID, "balance": 5}, http.StatusCreated, &a)
	doJSON(t, "DELETE", fmt.Sprintf("%s/accounts/%d", base, a.ID), nil, http.StatusConflict, nil)

	// user with accounts cannot be deleted -> 409
	doJSON(t, "DELETE", fmt.Sprintf("%s/users/%d", base, u.ID), nil, http.StatusConflict, nil)

	// bad id -> 400
	doJSON(t, "GET", base+"/accounts/abc", nil, http.StatusBadRequest, nil)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
