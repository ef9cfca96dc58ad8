package handler

import (
	"github.com/gin-gonic/gin"

	"amorlias/internal/service"
)

// NotificationHandler serves the caller's notifications.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// UnreadCountData is the payload of GET /notifications/unread-count.
type UnreadCountData struct {
	Count int `json:"count"`
}

// MarkedData is the payload of PUT /notifications/read-all.
type MarkedData struct {
	Updated int64 `json:"updated"`
}

// List handles GET /api/v1/notifications
// @Summary List my notifications
// @Tags notifications
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Notification,meta=PagMeta}
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)
	list, total, err := h.notificationService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, list, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// UnreadCount handles GET /api/v1/notifications/unread-count
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} Response{data=UnreadCountData}
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	n, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, UnreadCountData{Count: n})
}

// MarkRead handles PUT /api/v1/notifications/:id/read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID (UUID)"
// @Success 200 {object} Response{data=MessageData}
// @Failure 404 {object} ErrorResponseBody "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "notification")
	if !ok {
		return
	}
	if err := h.notificationService.MarkRead(c.Request.Context(), userID, id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageData{Message: "notification marked as read"})
}

// MarkAllRead handles PUT /api/v1/notifications/read-all
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Success 200 {object} Response{data=MarkedData}
// @Security BearerAuth
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	n, err := h.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MarkedData{Updated: n})
}

// Effects handles GET /api/v1/notifications/effects
// @Summary Drain pending UI effects
// @Description Returns queued toasts and celebrations once; a second call returns only new ones
// @Tags notifications
// @Produce json
// @Success 200 {object} Response{data=[]notify.Effect}
// @Security BearerAuth
// @Router /notifications/effects [get]
func (h *NotificationHandler) Effects(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	effects, err := h.notificationService.Effects(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, effects)
}
