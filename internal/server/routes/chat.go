package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vetportal/internal/models"
)

type ChatRoutes struct {
	server ServerInterface
}

func NewChatRoutes(server ServerInterface) *ChatRoutes {
	return &ChatRoutes{server: server}
}

func (cr *ChatRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(cr.server)

	r.GET("/tasks/:id/chat", middleware.AuthMiddleware(), cr.listMessagesHandler)
	r.POST("/tasks/:id/chat", middleware.AuthMiddleware(), cr.sendMessageHandler)
}

func (cr *ChatRoutes) listMessagesHandler(c *gin.Context) {
	db := cr.server.DB()
	messages, err := db.Chat.ForTask(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (cr *ChatRoutes) sendMessageHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Message     string   `json:"message" binding:"required"`
		Attachments []string `json:"attachments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID := c.Param("id")
	db := cr.server.DB()
	if _, err := db.Tasks.Get(taskID); err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	msg, err := db.Chat.Send(taskID, user, req.Message, req.Attachments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
