package vault

import (
	"context"

	vaultRepo "lendvault/database/repository/vault"
	"lendvault/models"
	"lendvault/services/storage"
	"lendvault/services/tasks"
)

// VaultService defines business logic for the client document vault.
type VaultService interface {
	// ListVault assembles the requirement list for a user: every core
	// definition plus the user's active dynamic rows, with upload state.
	ListVault(ctx context.Context, userID string) ([]models.VaultItem, error)
	// SaveUpload stores an uploaded file for a requirement and queues the
	// CRM side effects.
	SaveUpload(ctx context.Context, user *models.User, code, localFilePath, fileName string) (*models.VaultItem, error)
	// DownloadURL returns a signed, short-lived URL for an uploaded document.
	DownloadURL(ctx context.Context, userID, code string) (string, error)
	// ReconcileTags synchronizes the user's dynamic requirements against the
	// full tag list asserted by the CRM.
	ReconcileTags(ctx context.Context, user *models.User, tags []string) (*models.ReconcileResult, error)

	// Requirement catalog management (staff).
	ListRequirements() ([]models.RequiredDocument, error)
	CreateRequirement(doc *models.RequiredDocument) error
	RenameRequirement(code, label string) error
	// EnsureCoreRequirements seeds the fixed core set on an empty catalog.
	EnsureCoreRequirements() error
}

// DefaultVaultService is the production implementation.
type DefaultVaultService struct {
	Requirements vaultRepo.RequirementRepository
	Documents    vaultRepo.ClientDocumentRepository
	Storage      storage.StorageService
	Dispatcher   tasks.Dispatcher
}
