package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"expensync/internal/domain/categorygoal"
)

type CategoryGoalHandler struct {
	goals *categorygoal.Service
}

func NewCategoryGoalHandler(goals *categorygoal.Service) *CategoryGoalHandler {
	return &CategoryGoalHandler{goals: goals}
}

// SetCategoryGoalsRequest keeps the payload raw so the domain can tell a
// malformed list apart from a malformed entry.
type SetCategoryGoalsRequest struct {
	CategoryGoals json.RawMessage `json:"categoryGoals"`
}

type CategoryGoalsResponse struct {
	CategoryGoals []categorygoal.Goal `json:"categoryGoals"`
}

// HandleCategoryGoals handles GET /category-goals
func (h *CategoryGoalHandler) HandleCategoryGoals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	goals, err := h.goals.List(r.Context(), userID)
	if err != nil {
		internalError(w, "Failed to fetch category goals", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, CategoryGoalsResponse{CategoryGoals: goals})
}

// HandleSet handles POST /category-goals/set
func (h *CategoryGoalHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req SetCategoryGoalsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.goals.Set(r.Context(), userID, req.CategoryGoals)
	switch {
	case errors.Is(err, categorygoal.ErrInvalidFormat):
		writeError(w, "Invalid data format", http.StatusBadRequest)
	case errors.Is(err, categorygoal.ErrInvalidGoal):
		writeError(w, "Invalid category or goal", http.StatusBadRequest)
	case err != nil:
		internalError(w, "Failed to update category goals", userID, err)
	default:
		writeMessage(w, "Category goals updated successfully")
	}
}
