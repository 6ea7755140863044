package vaultRepo

import (
	"lendvault/models"
)

// RequirementRepository defines data access for document requirement definitions.
type RequirementRepository interface {
	// GetByCode retrieves a definition by its code. Returns (nil, nil) when absent.
	GetByCode(code string) (*models.RequiredDocument, error)
	// ListCore retrieves the fixed core definitions.
	ListCore() ([]models.RequiredDocument, error)
	// ListAll retrieves every definition, core and dynamic.
	ListAll() ([]models.RequiredDocument, error)
	// Create inserts a new definition.
	Create(doc *models.RequiredDocument) error
	// UpdateLabel changes the display label of a definition.
	UpdateLabel(code, label string) error
	// Count returns the number of stored definitions.
	Count() (int64, error)
}

// ClientDocumentRepository defines data access for per-user document rows.
type ClientDocumentRepository interface {
	// GetByUserAndCode retrieves the row joining a user to a requirement.
	// Returns (nil, nil) when no row exists.
	GetByUserAndCode(userID, code string) (*models.ClientDocument, error)
	// ListByUser retrieves every row for a user.
	ListByUser(userID string) ([]models.ClientDocument, error)
	// ListActiveDynamicByUser retrieves the user's active dynamic rows.
	ListActiveDynamicByUser(userID string) ([]models.ClientDocument, error)
	// Create inserts a new row.
	Create(doc *models.ClientDocument) error
	// SetActive flips the activation flag, stamping DeactivatedAt on deactivation.
	SetActive(id string, active bool) error
	// MarkUploaded records a completed upload on the row.
	MarkUploaded(id, storagePublicID, fileName string) error
}
