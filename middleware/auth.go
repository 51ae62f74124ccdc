package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel-complaint-server/database"
	"hostel-complaint-server/models"
	"hostel-complaint-server/services"
)

// AuthMiddleware validates the bearer token and resolves the caller against
// the user registry. The role set on the context comes from the registry
// record, not the token, so a stale token cannot outlive a role change.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authorization header required",
				"message": "Please provide a valid token",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token format",
				"message": "Token must be in format: Bearer <token>",
			})
			c.Abort()
			return
		}

		authenticate(c, tokenString)
	}
}

// WebSocketAuthMiddleware reads the token from the query string, since
// browser WebSocket clients cannot set an Authorization header.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Token required",
				"message": "Please provide a valid token in query parameters",
			})
			c.Abort()
			return
		}

		authenticate(c, tokenString)
	}
}

func authenticate(c *gin.Context, tokenString string) {
	claims, err := services.NewJWTService().ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid token",
			"message": "Token is invalid or expired",
		})
		c.Abort()
		return
	}

	var user models.User
	if err := database.DB.Where("lower(address) = lower(?)", claims.Address).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "User not found",
			"message": "User associated with token not found",
		})
		c.Abort()
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "User inactive",
			"message": "User account is deactivated",
		})
		c.Abort()
		return
	}

	c.Set("user", user)
	c.Set("address", user.Address)
	c.Set("role", user.Role)

	c.Next()
}

// RequireRoles aborts with 403 unless the authenticated caller holds one of
// the given roles. Must run after AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Not authenticated",
				"message": "Authentication is required for this endpoint",
			})
			c.Abort()
			return
		}

		role := value.(models.UserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Insufficient role",
			"message": "Your role does not permit this operation",
		})
		c.Abort()
	}
}

// CurrentActor extracts the authenticated identity and role set by
// AuthMiddleware.
func CurrentActor(c *gin.Context) (string, models.UserRole) {
	address := c.GetString("address")
	role, _ := c.Get("role")
	userRole, _ := role.(models.UserRole)
	return address, userRole
}
