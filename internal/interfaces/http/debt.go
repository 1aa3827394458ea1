package http

import (
	"errors"
	"net/http"

	"expensync/internal/domain/debt"

	"github.com/shopspring/decimal"
)

type DebtHandler struct {
	debts *debt.Service
}

func NewDebtHandler(debts *debt.Service) *DebtHandler {
	return &DebtHandler{debts: debts}
}

type CreateDebtRequest struct {
	Title    string           `json:"title"`
	Creditor string           `json:"creditor"`
	Amount   *decimal.Decimal `json:"amount"`
	DueDate  *string          `json:"dueDate"`
	Note     string           `json:"note"`
}

// HandleDebts handles GET /debts
func (h *DebtHandler) HandleDebts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	debts, err := h.debts.List(r.Context(), userID)
	if err != nil {
		internalError(w, "Failed to fetch debts", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, debts)
}

// HandleCreate handles POST /debts/create
func (h *DebtHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req CreateDebtRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	due, err := parseOptionalDate(req.DueDate)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.debts.Create(r.Context(), userID, debt.CreateParams{
		Title:    req.Title,
		Creditor: req.Creditor,
		Amount:   req.Amount,
		DueDate:  due,
		Note:     req.Note,
	})
	if err != nil {
		writeDomainError(w, "Failed to create debt", userID, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// HandleDebt handles DELETE /debts/{id}
func (h *DebtHandler) HandleDebt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	err := h.debts.Delete(r.Context(), userID, r.PathValue("id"))
	if errors.Is(err, debt.ErrDebtNotFound) {
		writeError(w, "Debt not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, "Failed to delete debt", userID, err)
		return
	}
	writeMessage(w, "Debt deleted successfully")
}
