package http

import (
	"errors"
	"net/http"
	"strconv"

	"expensync/internal/domain/notification"
)

const (
	defaultNotificationsPerPage = 20
	maxNotificationsPerPage     = 100
)

type NotificationHandler struct {
	notifications *notification.Service
}

func NewNotificationHandler(notifications *notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type RegisterDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type NotificationListResponse struct {
	Notifications []*notification.Notification `json:"notifications"`
	Pagination    PaginationResponse           `json:"pagination"`
}

type PaginationResponse struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// HandleNotifications handles GET /notifications
func (h *NotificationHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))
	if perPage < 1 || perPage > maxNotificationsPerPage {
		perPage = defaultNotificationsPerPage
	}

	items, total, err := h.notifications.ListNotifications(r.Context(), userID, page, perPage)
	if err != nil {
		internalError(w, "Failed to list notifications", userID, err)
		return
	}

	pages := 0
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}

	writeJSON(w, http.StatusOK, NotificationListResponse{
		Notifications: items,
		Pagination: PaginationResponse{
			Page:    page,
			PerPage: perPage,
			Total:   total,
			Pages:   pages,
		},
	})
}

// HandleNotification handles PUT /notifications/{id} (mark as opened)
func (h *NotificationHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	err := h.notifications.MarkOpened(r.Context(), r.PathValue("id"), userID)
	if errors.Is(err, notification.ErrNotificationNotFound) {
		writeError(w, "Notification not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, "Failed to update notification", userID, err)
		return
	}
	writeMessage(w, "Notification marked as opened")
}

// HandleRegisterDevice handles POST /notifications/devices
func (h *NotificationHandler) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req RegisterDeviceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.notifications.RegisterDevice(r.Context(), notification.RegisterDeviceParams{
		UserID:   userID,
		Token:    req.Token,
		Platform: req.Platform,
	})
	if err != nil {
		writeDomainError(w, "Failed to register device", userID, err)
		return
	}
	writeJSON(w, http.StatusCreated, token)
}

// HandleDevice handles DELETE /notifications/devices/{token}
func (h *NotificationHandler) HandleDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	err := h.notifications.UnregisterDevice(r.Context(), userID, r.PathValue("token"))
	if errors.Is(err, notification.ErrDeviceTokenNotFound) {
		writeError(w, "Device not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeDomainError(w, "Failed to unregister device", userID, err)
		return
	}
	writeMessage(w, "Device unregistered")
}
