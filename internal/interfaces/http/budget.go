package http

import (
	"errors"
	"net/http"

	"expensync/internal/domain/budget"

	"github.com/shopspring/decimal"
)

type BudgetHandler struct {
	budgets *budget.Service
}

func NewBudgetHandler(budgets *budget.Service) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

type CreateBudgetRequest struct {
	Title    string           `json:"title"`
	Category string           `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	Month    string           `json:"month"`
}

// HandleBudgets handles GET /budgets (list) and POST /budgets (create)
func (h *BudgetHandler) HandleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *BudgetHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	budgets, err := h.budgets.List(r.Context(), userID)
	if err != nil {
		internalError(w, "Failed to fetch budgets", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (h *BudgetHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req CreateBudgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	b, err := h.budgets.Create(r.Context(), userID, budget.CreateParams{
		Title:    req.Title,
		Category: req.Category,
		Amount:   req.Amount,
		Month:    req.Month,
	})
	if err != nil {
		writeDomainError(w, "Failed to create budget", userID, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// HandleBudget handles DELETE /budgets/{id}
func (h *BudgetHandler) HandleBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	err := h.budgets.Delete(r.Context(), userID, r.PathValue("id"))
	if errors.Is(err, budget.ErrBudgetNotFound) {
		writeError(w, "Budget not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, "Failed to delete budget", userID, err)
		return
	}
	writeMessage(w, "Budget deleted successfully")
}
