package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vetportal/internal/models"
)

type ReviewRoutes struct {
	server ServerInterface
}

func NewReviewRoutes(server ServerInterface) *ReviewRoutes {
	return &ReviewRoutes{server: server}
}

func (rr *ReviewRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(rr.server)

	r.GET("/pages", middleware.AuthMiddleware(), rr.listPagesHandler)
	r.GET("/pages/:id", middleware.AuthMiddleware(), rr.getPageHandler)
	r.POST("/pages/:id/approve", middleware.AuthMiddleware(), middleware.RequirePermission("approve_designs"), rr.approvePageHandler)
	r.POST("/pages/:id/unapprove", middleware.AuthMiddleware(), middleware.RequirePermission("approve_designs"), rr.unapprovePageHandler)

	r.GET("/pages/:id/comments", middleware.AuthMiddleware(), rr.listCommentsHandler)
	r.POST("/pages/:id/comments", middleware.AuthMiddleware(), rr.addCommentHandler)
	r.POST("/comments/:id/resolve", middleware.AuthMiddleware(), rr.resolveCommentHandler)
	r.POST("/comments/:id/read", middleware.AuthMiddleware(), rr.markCommentReadHandler)
	r.GET("/reviews/unread-count", middleware.AuthMiddleware(), rr.unreadCountHandler)
}

func (rr *ReviewRoutes) listPagesHandler(c *gin.Context) {
	db := rr.server.DB()
	pages, err := db.Reviews.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

func (rr *ReviewRoutes) getPageHandler(c *gin.Context) {
	db := rr.server.DB()
	page, err := db.Reviews.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch page"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// approvePageHandler approves a page. Pages with open comments are rejected
// with 409 unless force is set, which is the PM override.
func (rr *ReviewRoutes) approvePageHandler(c *gin.Context) {
	pageID := c.Param("id")
	db := rr.server.DB()

	var err error
	if c.Query("force") == "true" {
		err = db.Reviews.ForceApprove(pageID)
	} else {
		err = db.Reviews.Approve(pageID)
	}
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		case errors.Is(err, models.ErrHasOpenComments):
			c.JSON(http.StatusConflict, gin.H{"error": "Page has open comments"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve page"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Page approved"})
}

func (rr *ReviewRoutes) unapprovePageHandler(c *gin.Context) {
	db := rr.server.DB()
	if err := db.Reviews.Unapprove(c.Param("id")); err != nil {
		if errors.Is(err, models.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unapprove page"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Page moved back to pending"})
}

// listCommentsHandler returns the page's comments grouped into threads.
func (rr *ReviewRoutes) listCommentsHandler(c *gin.Context) {
	db := rr.server.DB()
	threads, err := db.Reviews.Threads(c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

func (rr *ReviewRoutes) addCommentHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Message string  `json:"message" binding:"required"`
		ReplyTo *string `json:"reply_to"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := &models.Comment{
		UserID:     user.ID,
		UserName:   user.Name,
		UserAvatar: user.AvatarURL,
		Message:    req.Message,
		Timestamp:  time.Now(),
		ReplyTo:    req.ReplyTo,
	}

	db := rr.server.DB()
	if err := db.Reviews.AddComment(c.Param("id"), comment); err != nil {
		switch {
		case errors.Is(err, models.ErrPageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		case errors.Is(err, models.ErrInvalidReplyTo):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reply target"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func (rr *ReviewRoutes) resolveCommentHandler(c *gin.Context) {
	db := rr.server.DB()
	if err := db.Reviews.ResolveComment(c.Param("id")); err != nil {
		if errors.Is(err, models.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment resolved"})
}

func (rr *ReviewRoutes) markCommentReadHandler(c *gin.Context) {
	db := rr.server.DB()
	if err := db.Reviews.MarkCommentRead(c.Param("id")); err != nil {
		if errors.Is(err, models.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark comment read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment marked as read"})
}

func (rr *ReviewRoutes) unreadCountHandler(c *gin.Context) {
	db := rr.server.DB()
	count, err := db.Reviews.UnreadCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count unread comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}
