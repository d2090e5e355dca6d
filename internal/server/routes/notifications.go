package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vetportal/internal/models"
)

type NotificationRoutes struct {
	server ServerInterface
}

func NewNotificationRoutes(server ServerInterface) *NotificationRoutes {
	return &NotificationRoutes{server: server}
}

func (nr *NotificationRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(nr.server)

	r.GET("/notifications", middleware.AuthMiddleware(), nr.getUserNotificationsHandler)
	r.GET("/notifications/unread-count", middleware.AuthMiddleware(), nr.unreadCountHandler)
	r.POST("/notifications/:id/read", middleware.AuthMiddleware(), nr.markNotificationAsReadHandler)
}

// getUserNotificationsHandler returns the authenticated user's notifications,
// newest first.
func (nr *NotificationRoutes) getUserNotificationsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	// Get limit from query parameter, default to 50
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50
	}

	// Cap the limit to prevent excessive queries
	if limit > 100 {
		limit = 100
	}

	db := nr.server.DB()
	notifications, err := db.Notifications.ForUser(user.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (nr *NotificationRoutes) unreadCountHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := nr.server.DB()
	count, err := db.Notifications.UnreadCount(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (nr *NotificationRoutes) markNotificationAsReadHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := nr.server.DB()
	err := db.Notifications.MarkRead(c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
