package routes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"vetportal/internal/drafts"
	"vetportal/internal/models"
)

type TaskRoutes struct {
	server ServerInterface
}

func NewTaskRoutes(server ServerInterface) *TaskRoutes {
	return &TaskRoutes{server: server}
}

func (tr *TaskRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(tr.server)

	r.GET("/tasks", middleware.AuthMiddleware(), tr.listTasksHandler)
	r.GET("/tasks/:id", middleware.AuthMiddleware(), tr.getTaskHandler)
	r.PUT("/tasks/:id/status", middleware.AuthMiddleware(), tr.updateTaskStatusHandler)
	r.PUT("/workspace/active-task", middleware.AuthMiddleware(), tr.setActiveTaskHandler)

	r.GET("/tasks/:id/draft", middleware.AuthMiddleware(), tr.getDraftHandler)
	r.PUT("/tasks/:id/draft", middleware.AuthMiddleware(), tr.saveDraftHandler)
	r.DELETE("/tasks/:id/draft", middleware.AuthMiddleware(), tr.deleteDraftHandler)
}

// listTasksHandler returns tasks, optionally filtered by status and phase
// query parameters.
func (tr *TaskRoutes) listTasksHandler(c *gin.Context) {
	db := tr.server.DB()

	var phases []models.PhaseSlug
	if raw := c.Query("phase"); raw != "" {
		phases = append(phases, models.PhaseSlug(raw))
	}

	var (
		tasks []models.Task
		err   error
	)
	switch c.Query("status") {
	case "":
		tasks, err = db.Tasks.All()
	case string(models.TaskActive):
		tasks, err = db.Tasks.Active(phases...)
	case string(models.TaskPending):
		tasks, err = db.Tasks.Pending(phases...)
	case string(models.TaskCompleted):
		tasks, err = db.Tasks.Completed(phases...)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (tr *TaskRoutes) getTaskHandler(c *gin.Context) {
	db := tr.server.DB()
	task, err := db.Tasks.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (tr *TaskRoutes) updateTaskStatusHandler(c *gin.Context) {
	var req struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := tr.server.DB()
	if err := db.Tasks.UpdateStatus(c.Param("id"), req.Status); err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	task, err := db.Tasks.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// setActiveTaskHandler records which task the session is focused on. An empty
// id clears the focus.
func (tr *TaskRoutes) setActiveTaskHandler(c *gin.Context) {
	var req struct {
		TaskID string `json:"task_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := sessions.Default(c)
	if req.TaskID == "" {
		session.Delete("active_task")
	} else {
		db := tr.server.DB()
		if _, err := db.Tasks.Get(req.TaskID); err != nil {
			if errors.Is(err, models.ErrTaskNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
			return
		}
		session.Set("active_task", req.TaskID)
	}
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"active_task": req.TaskID})
}

func (tr *TaskRoutes) getDraftHandler(c *gin.Context) {
	taskID := c.Param("id")

	payload, err := tr.server.Drafts().Load(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, drafts.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No draft saved"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load draft"})
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// saveDraftHandler persists the raw request body as the task's draft. The
// payload is opaque to the server.
func (tr *TaskRoutes) saveDraftHandler(c *gin.Context) {
	taskID := c.Param("id")

	db := tr.server.DB()
	if _, err := db.Tasks.Get(taskID); err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}
	if len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty draft payload"})
		return
	}

	if err := tr.server.Drafts().Save(c.Request.Context(), taskID, payload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Draft saved"})
}

func (tr *TaskRoutes) deleteDraftHandler(c *gin.Context) {
	if err := tr.server.Drafts().Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete draft"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft cleared"})
}
