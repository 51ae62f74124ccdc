package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hostel-complaint-server/complaints"
	"hostel-complaint-server/config"
	"hostel-complaint-server/database"
	"hostel-complaint-server/ledger"
	"hostel-complaint-server/middleware"
	"hostel-complaint-server/models"
	"hostel-complaint-server/routes"
	ws "hostel-complaint-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		SeedDemoData()
	}

	// Select the ledger client: a remote gateway when LEDGER_URL is set,
	// otherwise the Postgres-backed ledger in this repo.
	var ledgerClient ledger.Client
	if url := config.AppConfig.Ledger.URL; url != "" {
		timeout := time.Duration(config.AppConfig.Ledger.TimeoutSeconds) * time.Second
		ledgerClient = ledger.NewHTTPClient(url, timeout)
		log.Printf("🔗 Using remote ledger gateway at %s", url)
	} else {
		pgLedger, err := ledger.NewPostgresLedger(database.DB)
		if err != nil {
			log.Fatal("Failed to initialize Postgres ledger:", err)
		}
		ledgerClient = pgLedger
		log.Println("🔗 Using Postgres-backed ledger")
	}

	coordinator := complaints.NewCoordinator(ledgerClient, config.AppConfig.Triage.WindowSeconds)

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	if origin := os.Getenv("CORS_ALLOWED_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Audit logging
	router.Use(middleware.AuditLogMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hostel Complaint Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Staff notification hub
	staffHub := ws.NewHub()
	go staffHub.Run()

	// API routes
	api := router.Group("/api/v1")
	{
		// Wifi credential check (public, tightly rate-limited)
		wifiRoutes := api.Group("/wifi")
		routes.RegisterWifiRoutes(wifiRoutes)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			complaintRoutes := protected.Group("/complaints")
			routes.RegisterComplaintRoutes(complaintRoutes, coordinator, staffHub)
			routes.RegisterAttachmentRoutes(complaintRoutes)

			announcementRoutes := protected.Group("/announcements")
			routes.RegisterAnnouncementRoutes(announcementRoutes)
		}

		// Staff WebSocket feed (token in query string)
		api.GET("/ws/staff",
			middleware.WebSocketAuthMiddleware(),
			middleware.RequireRoles(models.RoleLowerAdmin, models.RoleHigherAdmin),
			func(c *gin.Context) {
				address, role := middleware.CurrentActor(c)
				ws.ServeWebSocket(staffHub, c.Writer, c.Request, address, string(role))
			})
	}

	port := config.AppConfig.Server.Port

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
