package http

import (
	"net/http"

	"expensync/internal/domain/summary"
)

type SummaryHandler struct {
	summaries *summary.Service
}

func NewSummaryHandler(summaries *summary.Service) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

// HandleSummary handles GET /summary
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	s, err := h.summaries.Summary(r.Context(), userID)
	if err != nil {
		internalError(w, "Error fetching summary", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// HandleDashboard handles GET /dashboard
func (h *SummaryHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	d, err := h.summaries.Dashboard(r.Context(), userID)
	if err != nil {
		internalError(w, "Error fetching dashboard", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
