package handlers

import (
	"errors"
	"net/http"

	"lendvault/models"
	"lendvault/services/vault"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListRequirementsHandler returns the full requirement catalog (staff only).
func ListRequirementsHandler(c *gin.Context) {
	logger := getLogger(c)

	docs, err := vaultService.ListRequirements()
	if err != nil {
		logger.Error("Failed to list requirements", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list requirements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requirements": docs})
}

// CreateRequirementHandler registers a new document definition.
func CreateRequirementHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Code  string `json:"code" binding:"required"`
		Label string `json:"label" binding:"required"`
		Core  bool   `json:"core"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	doc := &models.RequiredDocument{Code: req.Code, Label: req.Label, Core: req.Core}
	if err := vaultService.CreateRequirement(doc); err != nil {
		if errors.Is(err, vault.ErrDuplicateRequirement) {
			c.JSON(http.StatusConflict, gin.H{"error": "A requirement with this code already exists"})
			return
		}
		logger.Error("Failed to create requirement", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create requirement: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// RenameRequirementHandler updates a document definition's display label.
func RenameRequirementHandler(c *gin.Context) {
	logger := getLogger(c)

	code := c.Param("code")
	var req struct {
		Label string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := vaultService.RenameRequirement(code, req.Label); err != nil {
		if errors.Is(err, vault.ErrUnknownRequirement) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown document code"})
			return
		}
		logger.Error("Failed to rename requirement", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename requirement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Requirement updated"})
}
