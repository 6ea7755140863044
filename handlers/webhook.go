package handlers

import (
	"net/http"

	userRepo "lendvault/database/repository/user"
	"lendvault/models"
	"lendvault/services/vault"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CRMWebhookHandler receives tag-change notifications from the CRM and
// reconciles the affected user's dynamic document requirements.
type CRMWebhookHandler struct {
	Users userRepo.UserRepository
	Vault vault.VaultService
}

// NewCRMWebhookHandler creates a new CRMWebhookHandler instance.
func NewCRMWebhookHandler(users userRepo.UserRepository, vs vault.VaultService) *CRMWebhookHandler {
	return &CRMWebhookHandler{Users: users, Vault: vs}
}

// HandleTagsChanged processes a CRM webhook carrying a contact's full tag
// list. The payload is authoritative: the user's dynamic requirements are
// brought in line with whatever requested tags it contains, in delivery
// order (last write wins).
func (h *CRMWebhookHandler) HandleTagsChanged(c *gin.Context) {
	logger := getLogger(c)

	var payload models.CRMWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Error("Invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	usr, err := h.resolveUser(&payload)
	if err != nil {
		logger.Error("Failed to resolve webhook user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve contact"})
		return
	}
	if usr == nil {
		logger.Warn("Webhook for unknown contact",
			zap.String("contactID", payload.ContactID),
			zap.String("email", payload.Email))
		c.JSON(http.StatusNotFound, gin.H{"error": "No user matches this contact"})
		return
	}

	result, err := h.Vault.ReconcileTags(c.Request.Context(), usr, payload.Tags)
	if err != nil {
		logger.Error("Tag reconciliation failed",
			zap.String("userID", usr.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation failed"})
		return
	}

	logger.Info("Processed CRM tag webhook",
		zap.String("userID", usr.ID),
		zap.Int("activated", len(result.Activated)),
		zap.Int("deactivated", len(result.Deactivated)))
	c.JSON(http.StatusOK, result)
}

// resolveUser matches the webhook contact to a user, preferring the stored
// CRM contact ID and falling back to email.
func (h *CRMWebhookHandler) resolveUser(payload *models.CRMWebhookPayload) (*models.User, error) {
	if payload.ContactID != "" {
		usr, err := h.Users.GetByCRMContactID(payload.ContactID)
		if err != nil {
			return nil, err
		}
		if usr != nil {
			return usr, nil
		}
	}
	if payload.Email != "" {
		return h.Users.GetByEmail(payload.Email)
	}
	return nil, nil
}
