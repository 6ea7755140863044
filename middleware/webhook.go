package middleware

import (
	"crypto/subtle"
	"net/http"

	"lendvault/config"

	"github.com/gin-gonic/gin"
)

// CRMWebhookAuth validates the shared-secret header set by the CRM on its
// webhook calls. Requests with a missing or wrong secret are rejected before
// any payload parsing.
func CRMWebhookAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := config.AppConfig.CRMWebhookSecret
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Webhook secret not configured"})
			return
		}
		provided := c.GetHeader("X-Webhook-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook secret"})
			return
		}
		c.Next()
	}
}
