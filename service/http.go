package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/confidential"
)

// BalanceResponse is the JSON view of a balance, amounts in whole tokens.
type BalanceResponse struct {
	Account           common.Address `json:"account"`
	Public            string         `json:"public"`
	Pending           string         `json:"pending"`
	Available         string         `json:"available"`
	PendingCredits    uint64         `json:"pending_credits"`
	MaxPendingCredits uint64         `json:"max_pending_credits"`
}

func NewBalanceResponse(b *confidential.Balance) BalanceResponse {
	return BalanceResponse{
		Account:           b.Account,
		Public:            b.UI(b.Public).String(),
		Pending:           b.UI(b.Pending).String(),
		Available:         b.UI(b.Available).String(),
		PendingCredits:    b.PendingCredits,
		MaxPendingCredits: b.MaxPendingCredits,
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.logger.Error().Err(err).Msg("failed to write health response")
	}
}

func (s *Service) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Service) handleAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.registry.Accounts()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list accounts")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if accounts == nil {
		accounts = []AccountRecord{}
	}
	s.writeJSON(w, accounts)
}

func (s *Service) handleBalance(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	balance, err := s.Balance(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotRegistered) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Error().Err(err).Str("account", name).Msg("failed to get balance")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, NewBalanceResponse(balance))
}

func (s *Service) registerRoutes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/accounts", s.handleAccounts).Methods(http.MethodGet)
	router.HandleFunc("/accounts/{name}/balance", s.handleBalance).Methods(http.MethodGet)
	s.metrics.RegisterHandlers(router)
	return router
}
