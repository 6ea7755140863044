package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lendvault/models"
	"lendvault/utils"

	"go.uber.org/zap"
)

// coreRequirements is the fixed document set every client must provide.
var coreRequirements = []models.RequiredDocument{
	{Code: "bank_statements", Label: "Last 4 Months of Bank Statements", Core: true},
	{Code: "business_tax_returns", Label: "Business Tax Returns (2 Years)", Core: true},
	{Code: "personal_tax_returns", Label: "Personal Tax Returns (2 Years)", Core: true},
	{Code: "profit_and_loss", Label: "Year-to-Date Profit & Loss Statement", Core: true},
	{Code: "balance_sheet", Label: "Current Balance Sheet", Core: true},
	{Code: "debt_schedule", Label: "Business Debt Schedule", Core: true},
	{Code: "drivers_license", Label: "Driver's License", Core: true},
	{Code: "voided_check", Label: "Voided Business Check", Core: true},
}

const vaultCacheTTL = 10 * time.Minute

// EnsureCoreRequirements seeds the fixed core set on an empty catalog.
func (s *DefaultVaultService) EnsureCoreRequirements() error {
	n, err := s.Requirements.Count()
	if err != nil {
		return fmt.Errorf("failed to inspect requirement catalog: %w", err)
	}
	if n > 0 {
		return nil
	}
	for i := range coreRequirements {
		doc := coreRequirements[i]
		if err := s.Requirements.Create(&doc); err != nil {
			return fmt.Errorf("failed to seed requirement %s: %w", doc.Code, err)
		}
	}
	utils.GetLogger().Info("Seeded core document requirements", zap.Int("count", len(coreRequirements)))
	return nil
}

// ListVault assembles the requirement list for a user: every core definition
// plus the user's active dynamic rows, each carrying the upload state and a
// short-lived download URL for uploaded files.
func (s *DefaultVaultService) ListVault(ctx context.Context, userID string) ([]models.VaultItem, error) {
	if items, ok := s.cachedVault(ctx, userID); ok {
		return items, nil
	}

	core, err := s.Requirements.ListCore()
	if err != nil {
		return nil, fmt.Errorf("failed to list core requirements: %w", err)
	}

	rows, err := s.Documents.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client documents: %w", err)
	}
	rowByCode := make(map[string]models.ClientDocument, len(rows))
	for _, r := range rows {
		rowByCode[r.Code] = r
	}

	var items []models.VaultItem
	for _, def := range core {
		items = append(items, s.buildItem(ctx, def, rowByCode[def.Code]))
	}
	for _, r := range rows {
		if !r.Dynamic || !r.Active {
			continue
		}
		def, err := s.Requirements.GetByCode(r.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve requirement %s: %w", r.Code, err)
		}
		if def == nil {
			// Orphaned row; surface it with a derived label rather than hiding it.
			def = &models.RequiredDocument{Code: r.Code, Label: labelFromCode(r.Code)}
		}
		items = append(items, s.buildItem(ctx, *def, r))
	}

	s.cacheVault(ctx, userID, items)
	return items, nil
}

func (s *DefaultVaultService) buildItem(ctx context.Context, def models.RequiredDocument, row models.ClientDocument) models.VaultItem {
	item := models.VaultItem{
		Code:   def.Code,
		Label:  def.Label,
		Core:   def.Core,
		Status: models.DocumentStatusPending,
	}
	if row.ID == "" {
		return item
	}
	item.Status = row.Status
	item.FileName = row.FileName
	item.UploadedAt = row.UploadedAt
	if row.Status == models.DocumentStatusUploaded && s.Storage != nil {
		if url, err := s.Storage.GetSecureDownloadURL(ctx, row.StoragePublicID, 15*time.Minute); err == nil {
			item.DownloadURL = url
		}
	}
	return item
}

// ListRequirements retrieves the full catalog.
func (s *DefaultVaultService) ListRequirements() ([]models.RequiredDocument, error) {
	return s.Requirements.ListAll()
}

// CreateRequirement inserts a staff-defined requirement into the catalog.
func (s *DefaultVaultService) CreateRequirement(doc *models.RequiredDocument) error {
	if doc.Code == "" || doc.Label == "" {
		return fmt.Errorf("code and label are required")
	}
	existing, err := s.Requirements.GetByCode(doc.Code)
	if err != nil {
		return fmt.Errorf("failed to check requirement catalog: %w", err)
	}
	if existing != nil {
		return ErrDuplicateRequirement
	}
	if !doc.Core && doc.Tag == "" {
		doc.Tag = models.RequestedTagPrefix + doc.Code
	}
	return s.Requirements.Create(doc)
}

// RenameRequirement changes the display label of a catalog entry.
func (s *DefaultVaultService) RenameRequirement(code, label string) error {
	if label == "" {
		return fmt.Errorf("label is required")
	}
	existing, err := s.Requirements.GetByCode(code)
	if err != nil {
		return fmt.Errorf("failed to check requirement catalog: %w", err)
	}
	if existing == nil {
		return ErrUnknownRequirement
	}
	return s.Requirements.UpdateLabel(code, label)
}

// cachedVault returns the cached listing when present.
func (s *DefaultVaultService) cachedVault(ctx context.Context, userID string) ([]models.VaultItem, bool) {
	cache := utils.CacheClient
	if cache == nil {
		return nil, false
	}
	data, err := cache.Get(ctx, utils.VaultCachePrefix+userID).Result()
	if err != nil {
		return nil, false
	}
	var items []models.VaultItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, false
	}
	return items, true
}

func (s *DefaultVaultService) cacheVault(ctx context.Context, userID string, items []models.VaultItem) {
	cache := utils.CacheClient
	if cache == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, utils.VaultCachePrefix+userID, data, vaultCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache vault listing", zap.Error(err))
	}
}
