package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hostel-complaint-server/database"
	"hostel-complaint-server/middleware"
	"hostel-complaint-server/models"
)

// RegisterAnnouncementRoutes registers announcement endpoints. Reading is
// open to every authenticated user; writes are higher-admin only.
func RegisterAnnouncementRoutes(router *gin.RouterGroup) {
	router.GET("/", getAllAnnouncements)

	admin := router.Group("")
	admin.Use(middleware.RequireRoles(models.RoleHigherAdmin))
	{
		admin.POST("/", createAnnouncement)
		admin.PUT("/:id", updateAnnouncement)
		admin.DELETE("/:id", deleteAnnouncement)
	}
}

// getAllAnnouncements returns all announcements, newest first
func getAllAnnouncements(c *gin.Context) {
	var announcements []models.Announcement
	if err := database.DB.Order("created_at desc").Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Announcements fetched successfully",
		"data":    announcements,
	})
}

// createAnnouncement adds a new announcement
func createAnnouncement(c *gin.Context) {
	var req models.AnnouncementUpsert
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and body are required"})
		return
	}

	announcement := models.Announcement{
		Title: req.Title,
		Body:  req.Body,
	}
	if err := database.DB.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Announcement created successfully",
		"data":    announcement,
	})
}

// updateAnnouncement edits an existing announcement
func updateAnnouncement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement id"})
		return
	}

	var req models.AnnouncementUpsert
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and body are required"})
		return
	}

	var announcement models.Announcement
	if err := database.DB.First(&announcement, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	announcement.Title = req.Title
	announcement.Body = req.Body
	if err := database.DB.Save(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Announcement updated successfully",
		"data":    announcement,
	})
}

// deleteAnnouncement removes an announcement
func deleteAnnouncement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement id"})
		return
	}

	result := database.DB.Delete(&models.Announcement{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete announcement"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully"})
}
