package http

import (
	"errors"
	"net/http"

	"expensync/internal/domain/reminder"

	"github.com/shopspring/decimal"
)

type ReminderHandler struct {
	reminders *reminder.Service
}

func NewReminderHandler(reminders *reminder.Service) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

type CreateReminderRequest struct {
	Title   string           `json:"title"`
	Amount  *decimal.Decimal `json:"amount"`
	DueDate *string          `json:"dueDate"`
	Note    string           `json:"note"`
}

// HandleReminders handles GET /reminders
func (h *ReminderHandler) HandleReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	reminders, err := h.reminders.List(r.Context(), userID)
	if err != nil {
		internalError(w, "Failed to fetch reminders", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, reminders)
}

// HandleCreate handles POST /reminders/create
func (h *ReminderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req CreateReminderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	due, err := parseOptionalDate(req.DueDate)
	if err != nil {
		writeError(w, reminder.ErrDueDateRequired.Error(), http.StatusBadRequest)
		return
	}

	rem, err := h.reminders.Create(r.Context(), userID, reminder.CreateParams{
		Title:   req.Title,
		Amount:  req.Amount,
		DueDate: due,
		Note:    req.Note,
	})
	if err != nil {
		writeDomainError(w, "Failed to create reminder", userID, err)
		return
	}
	writeJSON(w, http.StatusCreated, rem)
}

// HandleReminder handles DELETE /reminders/{id}
func (h *ReminderHandler) HandleReminder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	err := h.reminders.Delete(r.Context(), userID, r.PathValue("id"))
	if errors.Is(err, reminder.ErrReminderNotFound) {
		writeError(w, "Reminder not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, "Failed to delete reminder", userID, err)
		return
	}
	writeMessage(w, "Reminder deleted successfully")
}
