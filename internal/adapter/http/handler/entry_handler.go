package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/iho/gobalance/internal/adapter/http/dto"
	"github.com/iho/gobalance/internal/usecase"
)

// EntryHandler handles ledger entry HTTP requests.
type EntryHandler struct {
	entryUC *usecase.EntryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Create records a new ledger entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD or RFC3339")
		return
	}

	entry, err := h.entryUC.CreateEntry(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// List lists entries filtered by ?from=&to=&category= with pagination.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListEntriesInput{
		Category: r.URL.Query().Get("category"),
		Limit:    parseIntQuery(r, "limit", 50),
		Offset:   parseIntQuery(r, "offset", 0),
	}

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := parseDateOrTime(from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'from' date", "expected YYYY-MM-DD or RFC3339")
			return
		}
		input.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := parseDateOrTime(to)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'to' date", "expected YYYY-MM-DD or RFC3339")
			return
		}
		input.To = t
	}

	entries, err := h.entryUC.ListEntries(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

func parseDateOrTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
