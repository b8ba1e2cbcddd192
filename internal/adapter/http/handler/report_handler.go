package handler

import (
	"net/http"

	"github.com/iho/gobalance/internal/adapter/http/dto"
	"github.com/iho/gobalance/internal/domain"
	"github.com/iho/gobalance/internal/usecase"
)

// ReportHandler handles period report HTTP requests.
type ReportHandler struct {
	reportUC *usecase.ReportUseCase
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Get builds the report for ?start=YYYY-MM-DD&end=YYYY-MM-DD. With
// include_days=true the per-day balances come along; with archive=true the
// report is also snapshotted and the snapshot ID returned.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	start, err := domain.ParseDay(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date", "expected YYYY-MM-DD")
		return
	}
	end, err := domain.ParseDay(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date", "expected YYYY-MM-DD")
		return
	}

	report, err := h.reportUC.BuildReport(r.Context(), start, end)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build report", err.Error())
		return
	}

	resp := dto.ReportFromDomain(report, parseBoolQuery(r, "include_days"))

	if parseBoolQuery(r, "archive") {
		id, err := h.reportUC.ArchiveReport(r.Context(), report)
		if err != nil {
			writeError(w, mapDomainError(err), "failed to archive report", err.Error())
			return
		}
		resp.SnapshotID = id
	}

	writeJSON(w, http.StatusOK, resp)
}
