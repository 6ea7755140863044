package user

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"lendvault/models"
	"lendvault/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser validates the signup payload, creates the user record with the
// "free" role, links a CRM contact and returns an authenticated session.
//
// The CRM upsert is best-effort: a failure leaves the user without a contact
// link (re-established on the next profile update) rather than failing signup.
func (s *DefaultUserService) RegisterUser(reg models.UserRegistration) (*AuthResponse, error) {
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}
	if err := VerifyPasswordComplexity(reg.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(reg.Email)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	userObj := models.User{
		ID:           uuid.New().String(),
		Name:         reg.Name,
		Email:        reg.Email,
		PhoneNumber:  reg.PhoneNumber,
		Company:      reg.Company,
		Role:         models.RoleFree,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// Link the CRM contact before persisting so the id lands on the record.
	if s.CRM != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		contactID, err := s.CRM.UpsertContact(ctx, models.CRMContact{
			Email:       userObj.Email,
			Name:        userObj.Name,
			PhoneNumber: userObj.PhoneNumber,
			Company:     userObj.Company,
		})
		if err != nil {
			utils.GetLogger().Warn("RegisterUser: CRM contact upsert failed",
				zap.String("email", userObj.Email), zap.Error(err))
		} else {
			userObj.CRMContactID = contactID
		}
	}

	token, err := utils.GenerateToken(userObj.ID, userObj.Email, userObj.Role, 24*time.Hour)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	userObj.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(&userObj); err != nil {
		utils.GetLogger().Error("RegisterUser: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	// Initial tagging is queued and best-effort.
	if s.Dispatcher != nil && userObj.CRMContactID != "" {
		s.Dispatcher.PushTags(models.CRMTagsTaskPayload{
			ContactID: userObj.CRMContactID,
			AddTags:   []string{"client", "plan_" + userObj.Role},
		})
	}

	cacheAuthToken(userObj.ID, userObj.TokenHash)

	return &AuthResponse{
		ID:    userObj.ID,
		Token: token,
		Name:  userObj.Name,
		Email: userObj.Email,
		Role:  userObj.Role,
	}, nil
}

// VerifyPasswordComplexity enforces the minimum password policy.
func VerifyPasswordComplexity(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain both letters and digits")
	}
	return nil
}
