// File: lendvault/services/vault/reconcile.go
package vault

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lendvault/models"
	"lendvault/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconcileTags synchronizes the user's dynamic document requirements against
// the full tag list asserted by the CRM.
//
// For every "requested_<code>" tag: a missing definition is created on the
// fly, and the user's row is created or reactivated. Active dynamic rows whose
// tag is absent from the payload are deactivated. Core rows and upload state
// are never touched, and repeated deliveries of the same payload are no-ops.
func (s *DefaultVaultService) ReconcileTags(ctx context.Context, user *models.User, tags []string) (*models.ReconcileResult, error) {
	logger := utils.GetLogger().With(zap.String("userID", user.ID))

	requested := requestedCodes(tags)
	result := &models.ReconcileResult{
		Activated:          []string{},
		Deactivated:        []string{},
		CreatedDefinitions: []string{},
	}

	for code := range requested {
		def, err := s.Requirements.GetByCode(code)
		if err != nil {
			return nil, fmt.Errorf("reconcile: failed to look up requirement %s: %w", code, err)
		}
		if def == nil {
			def = &models.RequiredDocument{
				Code:  code,
				Label: labelFromCode(code),
				Core:  false,
				Tag:   models.RequestedTagPrefix + code,
			}
			if err := s.Requirements.Create(def); err != nil {
				return nil, fmt.Errorf("reconcile: failed to create requirement %s: %w", code, err)
			}
			result.CreatedDefinitions = append(result.CreatedDefinitions, code)
			logger.Info("Created dynamic requirement from CRM tag", zap.String("code", code))
		}
		if def.Core {
			// Core requirements always apply; a requested_* tag adds nothing.
			continue
		}

		row, err := s.Documents.GetByUserAndCode(user.ID, code)
		if err != nil {
			return nil, fmt.Errorf("reconcile: failed to look up client document %s: %w", code, err)
		}
		switch {
		case row == nil:
			row = &models.ClientDocument{
				ID:      uuid.New().String(),
				UserID:  user.ID,
				Code:    code,
				Dynamic: true,
				Active:  true,
				Status:  models.DocumentStatusPending,
			}
			if err := s.Documents.Create(row); err != nil {
				return nil, fmt.Errorf("reconcile: failed to create client document %s: %w", code, err)
			}
			result.Activated = append(result.Activated, code)
		case !row.Active:
			if err := s.Documents.SetActive(row.ID, true); err != nil {
				return nil, fmt.Errorf("reconcile: failed to reactivate client document %s: %w", code, err)
			}
			result.Activated = append(result.Activated, code)
		}
		// Already active: nothing to do.
	}

	active, err := s.Documents.ListActiveDynamicByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("reconcile: failed to list active dynamic documents: %w", err)
	}
	for _, row := range active {
		if _, still := requested[row.Code]; still {
			continue
		}
		if err := s.Documents.SetActive(row.ID, false); err != nil {
			return nil, fmt.Errorf("reconcile: failed to deactivate client document %s: %w", row.Code, err)
		}
		result.Deactivated = append(result.Deactivated, row.Code)
	}

	s.invalidateVaultCache(user.ID)
	s.notifyActivated(user, result.Activated)

	logger.Info("Reconciled CRM tags",
		zap.Int("activated", len(result.Activated)),
		zap.Int("deactivated", len(result.Deactivated)),
		zap.Int("createdDefinitions", len(result.CreatedDefinitions)))

	return result, nil
}

// notifyActivated queues one push per newly requested document. Best-effort.
func (s *DefaultVaultService) notifyActivated(user *models.User, codes []string) {
	if s.Dispatcher == nil || user.FCMToken == "" {
		return
	}
	for _, code := range codes {
		label := labelFromCode(code)
		if def, err := s.Requirements.GetByCode(code); err == nil && def != nil {
			label = def.Label
		}
		s.Dispatcher.Push(models.PushTaskPayload{
			Token: user.FCMToken,
			Title: "New document requested",
			Body:  fmt.Sprintf("Your advisor has requested: %s", label),
		})
	}
}

// invalidateVaultCache drops the cached vault listing for a user.
func (s *DefaultVaultService) invalidateVaultCache(userID string) {
	cache := utils.CacheClient
	if cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.Del(ctx, utils.VaultCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("Failed to invalidate vault cache", zap.Error(err))
	}
}

// requestedCodes extracts the requirement codes from requested_* tags.
// Other tags are ignored.
func requestedCodes(tags []string) map[string]struct{} {
	codes := make(map[string]struct{})
	for _, tag := range tags {
		if !strings.HasPrefix(tag, models.RequestedTagPrefix) {
			continue
		}
		code := strings.TrimPrefix(tag, models.RequestedTagPrefix)
		if code == "" {
			continue
		}
		codes[code] = struct{}{}
	}
	return codes
}

// labelFromCode derives a human label from a snake_case requirement code.
func labelFromCode(code string) string {
	words := strings.Split(code, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
