package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"vetportal/internal/models"
	"vetportal/internal/wizard"
)

type ProjectRoutes struct {
	server ServerInterface
}

func NewProjectRoutes(server ServerInterface) *ProjectRoutes {
	return &ProjectRoutes{server: server}
}

func (pr *ProjectRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(pr.server)

	r.GET("/blueprints", middleware.AuthMiddleware(), pr.listBlueprintsHandler)

	r.GET("/projects", middleware.AuthMiddleware(), pr.listProjectsHandler)
	r.GET("/projects/:id", middleware.AuthMiddleware(), pr.getProjectHandler)

	wizardGroup := r.Group("/wizard", middleware.AuthMiddleware(), middleware.RequirePermission("manage_tasks"))
	wizardGroup.POST("/start", pr.wizardStartHandler)
	wizardGroup.GET("", pr.wizardStateHandler)
	wizardGroup.POST("/blueprint", pr.wizardBlueprintHandler)
	wizardGroup.POST("/name", pr.wizardNameHandler)
	wizardGroup.POST("/back", pr.wizardBackHandler)
	wizardGroup.GET("/timeline", pr.wizardTimelineHandler)
	wizardGroup.POST("/confirm", pr.wizardConfirmHandler)
}

func (pr *ProjectRoutes) listBlueprintsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"blueprints": models.Blueprints()})
}

func (pr *ProjectRoutes) listProjectsHandler(c *gin.Context) {
	db := pr.server.DB()
	projects, err := db.Projects.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (pr *ProjectRoutes) getProjectHandler(c *gin.Context) {
	db := pr.server.DB()
	project, err := db.Projects.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

// loadWizard reconstructs the wizard state from the session. The wizard must
// have been started.
func loadWizard(c *gin.Context) (wizard.State, bool) {
	session := sessions.Default(c)
	step, ok := session.Get("wizard_step").(int)
	if !ok || step == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Wizard not started"})
		return wizard.State{}, false
	}

	state := wizard.State{Step: step}
	if v, ok := session.Get("wizard_blueprint").(string); ok {
		state.BlueprintID = v
	}
	if v, ok := session.Get("wizard_name").(string); ok {
		state.Name = v
	}
	return state, true
}

func saveWizard(c *gin.Context, state wizard.State) error {
	session := sessions.Default(c)
	session.Set("wizard_step", state.Step)
	session.Set("wizard_blueprint", state.BlueprintID)
	session.Set("wizard_name", state.Name)
	return session.Save()
}

func clearWizard(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete("wizard_step")
	session.Delete("wizard_blueprint")
	session.Delete("wizard_name")
	return session.Save()
}

func (pr *ProjectRoutes) wizardStartHandler(c *gin.Context) {
	state := wizard.New()
	if err := saveWizard(c, state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wizard": state})
}

func (pr *ProjectRoutes) wizardStateHandler(c *gin.Context) {
	state, ok := loadWizard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"wizard": state})
}

// wizardBlueprintHandler records the template choice and advances to the
// naming step.
func (pr *ProjectRoutes) wizardBlueprintHandler(c *gin.Context) {
	state, ok := loadWizard(c)
	if !ok {
		return
	}

	var req struct {
		BlueprintID string `json:"blueprint_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := state.ChooseBlueprint(req.BlueprintID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown blueprint"})
		return
	}

	if state.Step == wizard.StepBlueprint {
		if state, err = state.Next(); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
	}

	if err := saveWizard(c, state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wizard": state})
}

// wizardNameHandler records the project name and advances to the review step.
// A blank name blocks advancing, matching the step gate.
func (pr *ProjectRoutes) wizardNameHandler(c *gin.Context) {
	state, ok := loadWizard(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state = state.SetName(req.Name)
	if state.Step == wizard.StepName {
		var err error
		if state, err = state.Next(); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
	}

	if err := saveWizard(c, state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wizard": state})
}

func (pr *ProjectRoutes) wizardBackHandler(c *gin.Context) {
	state, ok := loadWizard(c)
	if !ok {
		return
	}

	state = state.Back()
	if err := saveWizard(c, state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wizard": state})
}

// wizardTimelineHandler returns the schedule derived from the chosen
// blueprint, anchored at today.
func (pr *ProjectRoutes) wizardTimelineHandler(c *gin.Context) {
	state, ok := loadWizard(c)
	if !ok {
		return
	}

	timeline, err := state.Timeline(time.Now())
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "No blueprint chosen"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeline": timeline})
}

// wizardConfirmHandler commits the wizard into a project registry entry and
// clears the wizard from the session.
func (pr *ProjectRoutes) wizardConfirmHandler(c *gin.Context) {
	state, ok := loadWizard(c)
	if !ok {
		return
	}

	project, err := state.Commit(time.Now())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	db := pr.server.DB()
	if err := db.Projects.Create(project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	if err := clearWizard(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	pr.server.Log().Info().Str("project_id", project.ID).Str("template", project.TemplateID).Msg("project created")
	c.JSON(http.StatusCreated, gin.H{"project": project})
}
