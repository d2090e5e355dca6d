package routes

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"vetportal/internal/models"
)

type PhaseRoutes struct {
	server ServerInterface
}

func NewPhaseRoutes(server ServerInterface) *PhaseRoutes {
	return &PhaseRoutes{server: server}
}

func (pr *PhaseRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(pr.server)

	r.GET("/phases", middleware.AuthMiddleware(), pr.listPhasesHandler)
	r.GET("/workspace/phase", middleware.AuthMiddleware(), pr.getCurrentPhaseHandler)
	r.PUT("/workspace/phase", middleware.AuthMiddleware(), pr.setCurrentPhaseHandler)
}

func (pr *PhaseRoutes) listPhasesHandler(c *gin.Context) {
	db := pr.server.DB()
	phases, err := db.Phases.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch phases"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"phases": phases})
}

// getCurrentPhaseHandler returns the session's working phase along with its
// neighbors so the client can render phase navigation without a second call.
func (pr *PhaseRoutes) getCurrentPhaseHandler(c *gin.Context) {
	session := sessions.Default(c)
	slug := models.PhaseDiscovery
	if raw, ok := session.Get("phase").(string); ok && raw != "" {
		slug = models.PhaseSlug(raw)
	}

	pr.respondWithPhase(c, slug)
}

func (pr *PhaseRoutes) setCurrentPhaseHandler(c *gin.Context) {
	var req struct {
		Phase models.PhaseSlug `json:"phase" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := pr.server.DB()
	if _, err := db.Phases.Get(req.Phase); err != nil {
		if errors.Is(err, models.ErrUnknownPhase) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown phase"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch phase"})
		return
	}

	session := sessions.Default(c)
	session.Set("phase", string(req.Phase))
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	pr.respondWithPhase(c, req.Phase)
}

func (pr *PhaseRoutes) respondWithPhase(c *gin.Context, slug models.PhaseSlug) {
	db := pr.server.DB()

	phase, err := db.Phases.Get(slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch phase"})
		return
	}

	resp := gin.H{"phase": phase}
	if next, ok, err := db.Phases.Next(slug); err == nil && ok {
		resp["next"] = next
	}
	if prev, ok, err := db.Phases.Previous(slug); err == nil && ok {
		resp["previous"] = prev
	}

	c.JSON(http.StatusOK, resp)
}
