package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bkarakas/ledger-core/internal/api/httpx"
	"github.com/bkarakas/ledger-core/internal/api/validate"
	"github.com/bkarakas/ledger-core/internal/config"
	"github.com/bkarakas/ledger-core/internal/middleware"
	"github.com/bkarakas/ledger-core/internal/models"
	"github.com/bkarakas/ledger-core/internal/services"
)

func NewRouter(cfg config.Config, us *services.UserService, as *services.AccountService, ts *services.TransferService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- users ----------
		r.Post("/users", func(w http.ResponseWriter, r *http.Request) {
			var req struct{ Name, Email string }
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "bad request", nil)
				return
			}
			var errs validate.Errs
			if e := validate.Required("name", req.Name); e != nil {
				errs = append(errs, *e)
			}
			if e := validate.Required("email", req.Email); e != nil {
				errs = append(errs, *e)
			}
			if len(errs) > 0 {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_input", errs.Error(), errs)
				return
			}
			u, err := us.Create(r.Context(), req.Name, req.Email)
			if err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, u)
		})

		r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
			users, err := us.List(r.Context())
			if err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, users)
		})

		r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			u, err := us.GetByID(r.Context(), id)
			if err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, u)
		})

		r.Put("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			var req struct{ Name, Email string }
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "bad request", nil)
				return
			}
			u, err := us.Update(r.Context(), id, req.Name, req.Email)
			if err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, u)
		})

		r.Delete("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			if err := us.Delete(r.Context(), id); err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/users/{id}/accounts", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			accts, err := as.GetUserAccounts(r.Context(), id)
			if err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, accts)
		})

		// ---------- accounts ----------
		r.Post("/accounts", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				UserID        int64  `json:"user_id"`
				AccountNumber string `json:"account_number"`
				Currency      string `json:"currency"`
				Balance       int64  `json:"balance"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "bad request", nil)
				return
			}
			a, err := as.Create(r.Context(), req.UserID, req.AccountNumber, req.Currency, req.Balance)
			if err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, a)
		})

		r.Get("/accounts/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			a, err := as.GetByID(r.Context(), id)
			if err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, a)
		})

		r.Patch("/accounts/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			var req struct {
				Status models.AccountStatus `json:"status"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "bad request", nil)
				return
			}
			a, err := as.UpdateStatus(r.Context(), id, req.Status)
			if err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, a)
		})

		r.Delete("/accounts/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			if err := as.Delete(r.Context(), id); err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/accounts/{id}/transactions", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			limit, offset := pageParams(r)
			txs, err := ts.GetAccountTransactions(r.Context(), id, limit, offset)
			if err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, txs)
		})

		// ---------- transfers ----------
		r.Post("/transfers", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				FromAccountID int64  `json:"from_account_id"`
				ToAccountID   int64  `json:"to_account_id"`
				Amount        int64  `json:"amount"`
				Description   string `json:"description"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FromAccountID == 0 || req.ToAccountID == 0 {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "bad request", nil)
				return
			}
			if e := validate.Positive("amount", req.Amount); e != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_input", e.Field+": "+e.Msg, e)
				return
			}
			tx, err := ts.Transfer(r.Context(), req.FromAccountID, req.ToAccountID, req.Amount, req.Description)
			if err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, tx)
		})

		r.Get("/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			tx, err := ts.GetTransaction(r.Context(), id)
			if err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, tx)
		})
	})

	return r
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "invalid id", nil)
		return 0, false
	}
	return id, true
}

func pageParams(r *http.Request) (limit, offset int) {
	limit = 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
