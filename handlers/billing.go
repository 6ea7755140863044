package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"lendvault/config"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// CreateUpgradeIntentHandler starts a premium upgrade payment for the caller.
func CreateUpgradeIntentHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	intent, err := billingService.CreateUpgradeIntent(userID.(string))
	if err != nil {
		logger.Error("Failed to create upgrade intent", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to start upgrade: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, intent)
}

// ListInvoicesHandler returns the caller's invoices.
func ListInvoicesHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoices, err := billingService.ListInvoices(userID.(string))
	if err != nil {
		logger.Error("Failed to list invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// StripeWebhookHandler processes payment events from Stripe. The signature
// is verified against the webhook signing secret before any state changes.
func StripeWebhookHandler(c *gin.Context) {
	logger := getLogger(c)

	const maxBodyBytes = int64(65536)
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			logger.Error("Failed to parse payment intent event", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event"})
			return
		}
		if event.Type == "payment_intent.succeeded" {
			err = billingService.ConfirmPayment(intent.ID)
		} else {
			err = billingService.FailPayment(intent.ID)
		}
		if err != nil {
			logger.Error("Failed to apply payment event",
				zap.String("paymentIntentID", intent.ID),
				zap.String("eventType", string(event.Type)),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply payment event"})
			return
		}
	default:
		logger.Info("Ignoring unhandled Stripe event", zap.String("type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
