package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-complaint-server/database"
	"hostel-complaint-server/models"
	"hostel-complaint-server/utils"
)

// RegisterWifiRoutes registers the public wifi credential check. The
// endpoint is rate-limited by the global middleware stack.
func RegisterWifiRoutes(router *gin.RouterGroup) {
	router.POST("/check", checkWifiCredentials)
}

// checkWifiCredentials verifies an occupant's email, network name and
// password against the stored bcrypt hash. Wrong email, wrong network and
// wrong password all return the same response so the endpoint leaks nothing
// about which field failed.
func checkWifiCredentials(c *gin.Context) {
	var req models.WifiCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, wifi name and password are required"})
		return
	}

	var credential models.WifiCredential
	err := database.DB.Where("email = ? AND wifi_name = ?", req.Email, req.WifiName).First(&credential).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check credentials"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, credential.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Credentials valid",
		"wifi_name": credential.WifiName,
	})
}
