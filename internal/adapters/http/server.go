// Package http exposes the bank demo engine over a small REST surface.
// It is an external collaborator of the engine core: everything here
// could be deleted without touching the memory-image semantics.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/aretw0/memimg/internal/bank"
	"github.com/aretw0/memimg/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Guard is the serialized engine the server runs commands against.
type Guard = session.Guard[*bank.Bank, bank.Command]

// Server handles the REST routes for the bank demo.
type Server struct {
	guard  *Guard
	logger *slog.Logger
}

// NewHandler builds the demo router. gatherer may be nil to disable the
// /metrics endpoint.
func NewHandler(guard *Guard, logger *slog.Logger, gatherer prometheus.Gatherer) http.Handler {
	s := &Server{guard: guard, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/accounts", s.listAccounts)
	r.Get("/accounts/{id}", s.getAccount)
	r.Get("/accounts/{id}/balance", s.getBalance)
	r.Post("/commands", s.postCommand)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := session.ExecuteQuery(s.guard, bank.ListAccounts{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	account, err := session.ExecuteQuery(s.guard, bank.GetAccount{AccountID: chi.URLParam(r, "id")})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, account)
}

func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := session.ExecuteQuery(s.guard, bank.GetBalance{AccountID: chi.URLParam(r, "id")})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bank.Amount{"balance": balance})
}

// commandRequest is the generic envelope accepted by POST /commands.
type commandRequest struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

func (s *Server) postCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	command, err := buildCommand(req.Type, req.Payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.guard.ExecuteCommand(r.Context(), command); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("command accepted", "type", req.Type)
	w.WriteHeader(http.StatusAccepted)
}

// buildCommand maps the wire envelope onto a typed bank command. The
// payload arrives as a generic map; mapstructure fills the command using
// its json tags, with amounts parsed into decimals.
func buildCommand(kind string, payload map[string]any) (bank.Command, error) {
	var command bank.Command
	switch kind {
	case "create_account":
		command = &bank.CreateAccount{}
	case "deposit":
		command = &bank.Deposit{}
	case "withdraw":
		command = &bank.Withdraw{}
	case "transfer":
		command = &bank.Transfer{}
	default:
		return nil, fmt.Errorf("unknown command type %q", kind)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      command,
		TagName:     "json",
		ErrorUnused: true,
		DecodeHook:  decimalDecodeHook,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("invalid %q payload: %w", kind, err)
	}
	return command, nil
}

// decimalDecodeHook converts JSON strings and numbers into bank amounts.
func decimalDecodeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(decimal.Decimal{}) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	default:
		return nil, fmt.Errorf("cannot parse amount from %T", data)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps engine failures to HTTP statuses: unknown entities to
// 404, domain rule violations to 422, infrastructure failures to 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, bank.ErrAccountNotFound):
		status = http.StatusNotFound
	case errors.Is(err, bank.ErrDuplicateAccount):
		status = http.StatusConflict
	case errors.Is(err, bank.ErrInsufficientFunds), errors.Is(err, bank.ErrNonPositiveAmount):
		status = http.StatusUnprocessableEntity
	default:
		s.logger.Error("request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}
