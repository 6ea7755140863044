package user

import (
	userRepo "lendvault/database/repository/user"
	"lendvault/models"
	"lendvault/services/crm"
	"lendvault/services/tasks"
)

// UserService defines business logic for user operations.
type UserService interface {
	// RegisterUser validates the signup payload, creates the user record,
	// links a CRM contact and returns an authenticated session.
	RegisterUser(reg models.UserRegistration) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and returns ID and token.
	AuthenticateUser(email, password string) (*AuthResponse, error)
	// RevokeAuthToken revokes the user's authentication token (for logout).
	RevokeAuthToken(userID string) error
	// GetUserByID retrieves a user (safe view) by its unique ID.
	GetUserByID(userID string) (*models.User, error)
	// UpdateUser updates an existing user's profile and re-syncs the CRM contact.
	UpdateUser(userID string, req models.UserUpdateRequest) (*models.User, error)
	// DeleteUser removes a user record.
	DeleteUser(userID string) error
	// UpdateFCMToken stores the push notification device token.
	UpdateFCMToken(userID, token string) error
	// PromoteToPremium upgrades a client account after a confirmed payment.
	PromoteToPremium(userID string) error
	// ListClients retrieves all client accounts (staff only).
	ListClients() ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo       userRepo.UserRepository
	CRM        crm.Client
	Dispatcher tasks.Dispatcher
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
