package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobalance/internal/adapter/http/dto"
	"github.com/iho/gobalance/internal/domain"
	"github.com/iho/gobalance/internal/usecase"
)

// BalanceHandler handles daily balance HTTP requests.
type BalanceHandler struct {
	consolidationUC *usecase.ConsolidationUseCase
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(consolidationUC *usecase.ConsolidationUseCase) *BalanceHandler {
	return &BalanceHandler{consolidationUC: consolidationUC}
}

// Get returns the consolidated balance for a day, computing it on demand
// when neither the cache nor the store has it.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	day, err := domain.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD")
		return
	}

	balance, err := h.consolidationUC.GetDailyBalance(r.Context(), day)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get daily balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// Consolidate forces recomputation of a day and cascades the result
// through the following days.
func (h *BalanceHandler) Consolidate(w http.ResponseWriter, r *http.Request) {
	day, err := domain.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD")
		return
	}

	balance, err := h.consolidationUC.OnEntryCreated(r.Context(), day)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to consolidate", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}
