package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vetportal/internal/models"
)

type AssetRoutes struct {
	server ServerInterface
}

func NewAssetRoutes(server ServerInterface) *AssetRoutes {
	return &AssetRoutes{server: server}
}

func (ar *AssetRoutes) RegisterRoutes(r *gin.Engine) {
	middleware := NewMiddleware(ar.server)

	r.GET("/tasks/:id/assets", middleware.AuthMiddleware(), ar.listAssetsHandler)
	r.POST("/tasks/:id/assets", middleware.AuthMiddleware(), middleware.RequirePermission("upload_assets"), ar.uploadAssetHandler)
	r.GET("/assets/:id/download", middleware.AuthMiddleware(), ar.downloadAssetHandler)
	r.POST("/assets/:id/approve", middleware.AuthMiddleware(), middleware.RequirePermission("manage_tasks"), ar.approveAssetHandler)
}

func (ar *AssetRoutes) listAssetsHandler(c *gin.Context) {
	db := ar.server.DB()
	assets, err := db.Assets.ForTask(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// uploadAssetHandler stores a multipart file in S3 and records the asset
// against the task.
func (ar *AssetRoutes) uploadAssetHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	db := ar.server.DB()
	if _, err := db.Tasks.Get(taskID); err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	result, err := ar.server.Storage().UploadFile(c.Request.Context(), fileHeader, "tasks/"+taskID)
	if err != nil {
		ar.server.Log().Error().Err(err).Str("task_id", taskID).Msg("asset upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	asset := &models.DeliverableAsset{
		TaskID:     taskID,
		Type:       assetTypeFor(result.MimeType),
		Name:       fileHeader.Filename,
		S3Key:      result.S3Key,
		S3Bucket:   result.S3Bucket,
		FileSize:   result.FileSize,
		MimeType:   result.MimeType,
		UploadedBy: user.ID,
		UploadedAt: result.UploadedAt,
		Status:     models.AssetDraft,
	}
	if err := db.Assets.Create(asset); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record asset"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

func (ar *AssetRoutes) downloadAssetHandler(c *gin.Context) {
	db := ar.server.DB()

	var asset models.DeliverableAsset
	if err := db.First(&asset, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	result, err := ar.server.Storage().DownloadFile(c.Request.Context(), asset.S3Key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to download file"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+asset.Name+`"`)
	c.Data(http.StatusOK, result.MimeType, result.Data)
}

func (ar *AssetRoutes) approveAssetHandler(c *gin.Context) {
	db := ar.server.DB()
	if err := db.Assets.MarkApproved(c.Param("id")); err != nil {
		if errors.Is(err, models.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve asset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Asset approved"})
}

func assetTypeFor(mimeType string) models.AssetType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.AssetImage
	case strings.HasPrefix(mimeType, "audio/"):
		return models.AssetVoice
	default:
		return models.AssetDocument
	}
}
