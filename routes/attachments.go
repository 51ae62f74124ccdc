package routes

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"hostel-complaint-server/config"
	"hostel-complaint-server/middleware"
	"hostel-complaint-server/models"
)

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// RegisterAttachmentRoutes adds the complaint photo upload endpoint. The
// returned URL is embedded in the complaint text by the frontend; the ledger
// record itself stays plain text.
func RegisterAttachmentRoutes(router *gin.RouterGroup) {
	router.POST("/attachments", middleware.RequireRoles(models.RoleOccupant), uploadComplaintPhoto)
}

// uploadComplaintPhoto stores a photo of the reported issue on Cloudinary
func uploadComplaintPhoto(c *gin.Context) {
	address, _ := middleware.CurrentActor(c)

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil { // 10MB
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}

	header, err := c.FormFile("photo")
	if err != nil || header == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo provided"})
		return
	}
	if !validateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo must be jpg, png or webp and at most 5MB"})
		return
	}

	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		log.Printf("❌ Cloudinary environment variables not set")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Attachment storage not configured"})
		return
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Attachment storage initialization failed"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read photo"})
		return
	}
	defer file.Close()

	publicID := fmt.Sprintf("complaints/%s_%d", strings.ToLower(address), time.Now().UnixNano())
	result, err := cld.Upload.Upload(c.Request.Context(), file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   "complaint-photos",
	})
	if err != nil {
		log.Printf("❌ Photo upload failed for %s: %v", address, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Photo upload failed"})
		return
	}

	log.Printf("📸 Complaint photo uploaded by %s: %s", address, result.SecureURL)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Photo uploaded successfully",
		"url":     result.SecureURL,
	})
}
