package user

import (
	"fmt"

	"lendvault/models"
	"lendvault/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetUserByID retrieves a user by its unique ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return usr, nil
}

// UpdateUser updates the mutable profile fields and queues a CRM contact
// re-sync so the external record follows.
func (s *DefaultUserService) UpdateUser(userID string, req models.UserUpdateRequest) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	updateFields := bson.M{}
	if req.Name != "" {
		updateFields["name"] = req.Name
		usr.Name = req.Name
	}
	if req.PhoneNumber != "" {
		updateFields["phone_number"] = req.PhoneNumber
		usr.PhoneNumber = req.PhoneNumber
	}
	if req.Company != "" {
		updateFields["company"] = req.Company
		usr.Company = req.Company
	}
	if len(updateFields) == 0 {
		return nil, fmt.Errorf("no valid update fields provided")
	}

	if err := s.Repo.UpdateSetDocument(userID, updateFields); err != nil {
		utils.GetLogger().Error("UpdateUser: update failed", zap.String("id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update user")
	}

	if s.Dispatcher != nil {
		s.Dispatcher.SyncContact(models.CRMContactTaskPayload{
			UserID: usr.ID,
			Contact: models.CRMContact{
				ID:          usr.CRMContactID,
				Email:       usr.Email,
				Name:        usr.Name,
				PhoneNumber: usr.PhoneNumber,
				Company:     usr.Company,
			},
		})
	}

	return usr, nil
}

// DeleteUser removes a user record.
func (s *DefaultUserService) DeleteUser(userID string) error {
	if err := s.Repo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	dropCachedAuthToken(userID)
	return nil
}

// UpdateFCMToken stores the push notification device token.
func (s *DefaultUserService) UpdateFCMToken(userID, token string) error {
	if token == "" {
		return fmt.Errorf("fcm token is required")
	}
	return s.Repo.UpdateSetDocument(userID, bson.M{"fcm_token": token})
}

// PromoteToPremium upgrades a client account after a confirmed payment and
// queues the corresponding CRM tag swap.
func (s *DefaultUserService) PromoteToPremium(userID string) error {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if models.IsStaff(usr.Role) {
		return fmt.Errorf("staff accounts cannot be promoted")
	}
	if usr.Role == models.RolePremium {
		return nil
	}

	if err := s.Repo.UpdateSetDocument(userID, bson.M{"role": models.RolePremium}); err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}
	dropCachedAuthToken(userID)

	if s.Dispatcher != nil && usr.CRMContactID != "" {
		s.Dispatcher.PushTags(models.CRMTagsTaskPayload{
			ContactID:  usr.CRMContactID,
			AddTags:    []string{"plan_premium"},
			RemoveTags: []string{"plan_free"},
		})
	}
	return nil
}

// ListClients retrieves all client accounts.
func (s *DefaultUserService) ListClients() ([]models.User, error) {
	return s.Repo.ListByRoles(models.RoleFree, models.RolePremium)
}
