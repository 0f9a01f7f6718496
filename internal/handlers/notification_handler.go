package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/arifdn/inkpot/backend/internal/models"
	"github.com/arifdn/inkpot/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const notificationPageSize = 10

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.GET("/new-notification", h.CheckNewNotification, requireAuth)
	e.POST("/notifications", h.GetNotifications, requireAuth)
	e.POST("/all-notifications-count", h.GetAllNotificationsCount, requireAuth)
}

func (h *NotificationHandler) enrichNotifications(ctx context.Context, notifications []models.Notification) []models.NotificationView {
	enriched := make([]models.NotificationView, len(notifications))
	actorCache := make(map[primitive.ObjectID]models.UserPreview)

	for i, n := range notifications {
		enriched[i] = models.NotificationView{Notification: n}
		if actor, ok := actorCache[n.User]; ok {
			enriched[i].User = actor
			continue
		}
		user, err := h.userRepository.GetUserByID(ctx, n.User)
		if err == nil {
			preview := user.ToPreview()
			actorCache[n.User] = preview
			enriched[i].User = preview
		}
	}
	return enriched
}

// CheckNewNotification reports whether unseen notifications exist
func (h *NotificationHandler) CheckNewNotification(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	available, err := h.notificationRepository.HasUnseen(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"new_notification_available": available})
}

// GetNotifications returns a page of the caller's feed and marks the
// returned notifications as seen.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.GetNotificationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Page < 1 {
		req.Page = 1
	}

	skip := (req.Page-1)*notificationPageSize - req.DeletedDocCount
	if skip < 0 {
		skip = 0
	}

	ctx := c.Request().Context()
	notifications, err := h.notificationRepository.GetNotifications(ctx, userID, req.Filter, skip, notificationPageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ids := make([]primitive.ObjectID, len(notifications))
	for i, n := range notifications {
		ids[i] = n.ID
	}
	if err := h.notificationRepository.MarkSeen(ctx, ids); err != nil {
		log.Printf("Error marking notifications seen: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"notifications": h.enrichNotifications(ctx, notifications)})
}

// GetAllNotificationsCount counts the caller's feed for a filter
func (h *NotificationHandler) GetAllNotificationsCount(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.NotificationsCountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	count, err := h.notificationRepository.CountNotifications(c.Request().Context(), userID, req.Filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"totalDocs": count})
}
