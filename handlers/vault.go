package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"lendvault/services/vault"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetVaultHandler returns the caller's document checklist: every core
// requirement plus the dynamic ones currently requested for them.
func GetVaultHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	items, err := vaultService.ListVault(c.Request.Context(), userID.(string))
	if err != nil {
		logger.Error("Failed to list vault", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vault"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": items})
}

// UploadDocumentHandler accepts a multipart upload for a single requirement.
func UploadDocumentHandler(c *gin.Context) {
	logger := getLogger(c)

	usr, ok := currentUser(c)
	if !ok {
		return
	}

	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document code is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	// Stage the upload on disk; the stored name avoids collisions between
	// concurrent uploads of files with the same name.
	tempFilePath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		logger.Error("Failed to save uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}
	defer os.Remove(tempFilePath)

	item, err := vaultService.SaveUpload(c.Request.Context(), usr, code, tempFilePath, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, vault.ErrUnknownRequirement):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown document code"})
		case errors.Is(err, vault.ErrRequirementInactive):
			c.JSON(http.StatusConflict, gin.H{"error": "This document is not currently requested"})
		default:
			logger.Error("Failed to store document", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store document"})
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// DownloadDocumentHandler returns a signed, short-lived URL for an uploaded
// document.
func DownloadDocumentHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	code := c.Param("code")
	url, err := vaultService.DownloadURL(c.Request.Context(), userID.(string), code)
	if err != nil {
		switch {
		case errors.Is(err, vault.ErrUnknownRequirement):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown document code"})
		case errors.Is(err, vault.ErrNotUploaded):
			c.JSON(http.StatusNotFound, gin.H{"error": "No file uploaded for this document"})
		default:
			logger.Error("Failed to sign download URL", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download URL"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
