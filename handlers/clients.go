package handlers

import (
	"errors"
	"net/http"

	"lendvault/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListClientsHandler returns all client accounts. Staff only.
func ListClientsHandler(c *gin.Context) {
	logger := getLogger(c)

	clients, err := userService.ListClients()
	if err != nil {
		logger.Error("Failed to list clients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// GetClientVaultHandler returns a specific client's vault. Staff only.
func GetClientVaultHandler(c *gin.Context) {
	logger := getLogger(c)

	clientID := c.Param("id")
	usr, err := userService.GetUserByID(clientID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to load client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load client"})
		return
	}

	items, err := vaultService.ListVault(c.Request.Context(), usr.ID)
	if err != nil {
		logger.Error("Failed to list client vault", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vault"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": usr, "documents": items})
}
