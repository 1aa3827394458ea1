package http

import (
	"errors"
	"net/http"
	"strconv"

	"expensync/internal/domain/transaction"
	"expensync/internal/domain/validation"

	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	transactions *transaction.Service
}

func NewTransactionHandler(transactions *transaction.Service) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// TransactionRequest is the body of create and update calls. Absent fields
// are left unchanged on update.
type TransactionRequest struct {
	Title    *string          `json:"title"`
	Amount   *decimal.Decimal `json:"amount"`
	Category *string          `json:"category"`
	Note     *string          `json:"note"`
	Tags     *[]string        `json:"tags"`
	Date     *string          `json:"date"`
}

type DeleteTransactionResponse struct {
	Message      string                     `json:"message"`
	Transactions []*transaction.Transaction `json:"transactions"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// HandleTransactions handles GET /transactions (list) and POST /transactions (create)
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.HandleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

// HandleCreate handles POST /transactions/create
func (h *TransactionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req TransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.transactions.Create(r.Context(), userID, transaction.CreateParams{
		Title:    deref(req.Title),
		Amount:   req.Amount,
		Category: deref(req.Category),
		Note:     deref(req.Note),
		Tags:     deref(req.Tags),
		Date:     date,
	})
	if errors.Is(err, transaction.ErrTitleAndAmountRequired) {
		writeError(w, "Title and amount are required", http.StatusBadRequest)
		return
	}
	if validation.Is(err) {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		internalError(w, "Server Error", userID, err)
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.transactions.List(r.Context(), userID, transaction.ListQuery{
		Page:   page,
		Limit:  limit,
		Search: q.Get("search"),
		Filter: q.Get("filter"),
	})
	if err != nil {
		internalError(w, "Failed to fetch transactions", userID, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleSummary handles GET /transactions/summary
func (h *TransactionHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	summary, err := h.transactions.Summary(r.Context(), userID)
	if err != nil {
		internalError(w, "Error fetching summary", userID, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleTransaction handles GET/PUT/DELETE /transactions/{id}
func (h *TransactionHandler) HandleTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		t, err := h.transactions.Get(r.Context(), userID, id)
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			writeError(w, "Transaction not found", http.StatusNotFound)
			return
		}
		if err != nil {
			internalError(w, "Failed to fetch transaction", userID, err)
			return
		}
		writeJSON(w, http.StatusOK, t)

	case http.MethodPut:
		h.handleUpdate(w, r, userID, id)

	case http.MethodDelete:
		remaining, err := h.transactions.Delete(r.Context(), userID, id)
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			writeError(w, "Transaction not found or unauthorized", http.StatusNotFound)
			return
		}
		if err != nil {
			internalError(w, "Error deleting transaction", userID, err)
			return
		}
		writeJSON(w, http.StatusOK, DeleteTransactionResponse{
			Message:      "Transaction deleted successfully",
			Transactions: remaining,
		})

	default:
		methodNotAllowed(w)
	}
}

func (h *TransactionHandler) handleUpdate(w http.ResponseWriter, r *http.Request, userID int64, id string) {
	var req TransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.transactions.Update(r.Context(), userID, id, transaction.UpdateParams{
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Note:     req.Note,
		Tags:     req.Tags,
		Date:     date,
	})
	switch {
	case errors.Is(err, transaction.ErrTransactionNotFound):
		writeError(w, "Transaction not found or unauthorized", http.StatusNotFound)
	case validation.Is(err):
		writeError(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		internalError(w, "Failed to update transaction", userID, err)
	default:
		writeJSON(w, http.StatusOK, t)
	}
}
