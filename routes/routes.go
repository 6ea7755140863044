package routes

import (
	"net/http"
	"time"

	userRepo "lendvault/database/repository/user"
	"lendvault/handlers"
	"lendvault/middleware"
	"lendvault/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and logout endpoints.
func RegisterAuthRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", handlers.RegisterHandler)
		api.POST("/login", handlers.LoginHandler)

		// Protected routes (require authentication).
		api.Use(middleware.JWTAuthMiddleware(users))
		api.DELETE("/logout", handlers.LogoutHandler)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware(users))
		api.GET("/me", handlers.GetProfileHandler)
		api.PUT("/me", handlers.UpdateProfileHandler)
		api.DELETE("/me", handlers.DeleteAccountHandler)
		api.PUT("/me/fcm-token", handlers.UpdateFCMTokenHandler)
	}
}

// RegisterVaultRoutes registers the document vault endpoints.
func RegisterVaultRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/vault")
	{
		api.Use(middleware.JWTAuthMiddleware(users))
		api.GET("", handlers.GetVaultHandler)
		api.POST("/:code/upload", handlers.UploadDocumentHandler)
		api.GET("/:code/url", handlers.DownloadDocumentHandler)
	}
}

// RegisterBillingRoutes registers premium upgrade endpoints.
func RegisterBillingRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/billing")
	{
		api.Use(middleware.JWTAuthMiddleware(users))
		api.POST("/upgrade", handlers.CreateUpgradeIntentHandler)
		api.GET("/invoices", handlers.ListInvoicesHandler)
	}
}

// RegisterStaffRoutes registers advisor and underwriting endpoints.
func RegisterStaffRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/staff")
	{
		api.Use(middleware.JWTAuthMiddleware(users))
		api.Use(middleware.RequireRoles(models.RoleAdvisor, models.RoleUnderwriting))
		api.GET("/clients", handlers.ListClientsHandler)
		api.GET("/clients/:id/vault", handlers.GetClientVaultHandler)
		api.GET("/requirements", handlers.ListRequirementsHandler)
		api.POST("/requirements", handlers.CreateRequirementHandler)
		api.PATCH("/requirements/:code", handlers.RenameRequirementHandler)
	}
}

// RegisterWebhookRoutes registers the inbound webhooks. Neither carries a
// session: the CRM hook is gated by a shared secret, the Stripe hook by its
// payload signature.
func RegisterWebhookRoutes(r *gin.Engine, wh *handlers.CRMWebhookHandler) {
	api := r.Group("/api/webhooks")
	{
		api.POST("/crm", middleware.CRMWebhookAuth(), wh.HandleTagsChanged)
		api.POST("/stripe", handlers.StripeWebhookHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm LendVault"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, users userRepo.UserRepository, wh *handlers.CRMWebhookHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, users)
	RegisterUserRoutes(r, users)
	RegisterVaultRoutes(r, users)
	RegisterBillingRoutes(r, users)
	RegisterStaffRoutes(r, users)
	RegisterWebhookRoutes(r, wh)
}
