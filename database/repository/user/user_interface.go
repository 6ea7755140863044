package userRepo

import (
	"lendvault/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns (nil, nil)
	// when no user exists.
	GetByEmail(email string) (*models.User, error)
	// GetByCRMContactID retrieves a user by its linked CRM contact id.
	// Returns (nil, nil) when no user is linked to that contact.
	GetByCRMContactID(contactID string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// UpdateSetDocument applies a $set update to the user with the given ID.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	// ListByRoles retrieves all users holding one of the given roles.
	ListByRoles(roles ...string) ([]models.User, error)
}
