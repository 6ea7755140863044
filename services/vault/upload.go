package vault

import (
	"context"
	"fmt"
	"time"

	"lendvault/models"
	"lendvault/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaveUpload stores an uploaded file for a requirement, marks the client's
// row uploaded, and queues the CRM side effects: the file is attached to the
// contact and the requested_* tag is swapped for received_*.
func (s *DefaultVaultService) SaveUpload(ctx context.Context, user *models.User, code, localFilePath, fileName string) (*models.VaultItem, error) {
	def, err := s.Requirements.GetByCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up requirement %s: %w", code, err)
	}
	if def == nil {
		return nil, ErrUnknownRequirement
	}

	row, err := s.Documents.GetByUserAndCode(user.ID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up client document %s: %w", code, err)
	}
	if row == nil {
		if !def.Core {
			// Dynamic requirements only accept uploads once requested via CRM.
			return nil, ErrRequirementInactive
		}
		row = &models.ClientDocument{
			ID:      uuid.New().String(),
			UserID:  user.ID,
			Code:    code,
			Dynamic: false,
			Active:  true,
			Status:  models.DocumentStatusPending,
		}
		if err := s.Documents.Create(row); err != nil {
			return nil, fmt.Errorf("failed to create client document %s: %w", code, err)
		}
	}
	if !row.Active {
		return nil, ErrRequirementInactive
	}

	destFolder := "vault/" + user.ID
	publicID, err := s.Storage.UploadFile(ctx, localFilePath, destFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	if err := s.Documents.MarkUploaded(row.ID, publicID, fileName); err != nil {
		// The file landed in storage but the row is stale; clean up the orphan.
		if delErr := s.Storage.DeleteFile(ctx, publicID); delErr != nil {
			utils.GetLogger().Warn("Failed to remove orphaned upload", zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	s.invalidateVaultCache(user.ID)
	s.pushUploadToCRM(ctx, user, code, publicID, fileName)

	now := time.Now()
	item := models.VaultItem{
		Code:       def.Code,
		Label:      def.Label,
		Core:       def.Core,
		Status:     models.DocumentStatusUploaded,
		FileName:   fileName,
		UploadedAt: &now,
	}
	if url, err := s.Storage.GetSecureDownloadURL(ctx, publicID, 15*time.Minute); err == nil {
		item.DownloadURL = url
	}
	return &item, nil
}

// pushUploadToCRM queues the outward sync of one uploaded document. Best-effort.
func (s *DefaultVaultService) pushUploadToCRM(ctx context.Context, user *models.User, code, publicID, fileName string) {
	if s.Dispatcher == nil || user.CRMContactID == "" {
		return
	}

	// The CRM fetches the file by signed URL; give it a longer window.
	url, err := s.Storage.GetSecureDownloadURL(ctx, publicID, 24*time.Hour)
	if err != nil {
		utils.GetLogger().Warn("Failed to sign CRM download URL", zap.Error(err))
		return
	}

	s.Dispatcher.AttachFile(models.CRMFileTaskPayload{
		ContactID: user.CRMContactID,
		FileName:  fileName,
		URL:       url,
	})
	s.Dispatcher.PushTags(models.CRMTagsTaskPayload{
		ContactID:  user.CRMContactID,
		AddTags:    []string{models.ReceivedTagPrefix + code},
		RemoveTags: []string{models.RequestedTagPrefix + code},
	})
}

// DownloadURL returns a signed, short-lived URL for an uploaded document.
func (s *DefaultVaultService) DownloadURL(ctx context.Context, userID, code string) (string, error) {
	row, err := s.Documents.GetByUserAndCode(userID, code)
	if err != nil {
		return "", fmt.Errorf("failed to look up client document %s: %w", code, err)
	}
	if row == nil || row.Status != models.DocumentStatusUploaded {
		return "", ErrNotUploaded
	}
	url, err := s.Storage.GetSecureDownloadURL(ctx, row.StoragePublicID, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("failed to sign download URL: %w", err)
	}
	return url, nil
}
