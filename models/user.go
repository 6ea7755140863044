// File: lendvault/models/user.go
package models

import (
	"time"
)

// Platform roles. Clients start as "free" and may be promoted to "premium";
// staff accounts are provisioned as "advisor" or "underwriting".
const (
	RoleFree         = "free"
	RolePremium      = "premium"
	RoleAdvisor      = "advisor"
	RoleUnderwriting = "underwriting"
)

// User represents a platform account (client or staff).
type User struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	PhoneNumber  string `bson:"phone_number" json:"phoneNumber,omitempty"`
	Company      string `bson:"company" json:"company,omitempty"`
	Role         string `bson:"role" json:"role"`
	PasswordHash string `bson:"password_hash" json:"-"`
	// Password carries the plaintext only on inbound registration payloads.
	Password string `bson:"-" json:"password,omitempty"`

	// CRMContactID links the user to the external CRM contact record.
	CRMContactID string `bson:"crm_contact_id" json:"crmContactId,omitempty"`

	// TokenHash is the SHA-256 hash of the currently issued auth token.
	TokenHash string `bson:"token_hash" json:"-"`

	// FCMToken is the device token used for push notifications.
	FCMToken string `bson:"fcm_token" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// UserRegistration is the inbound signup payload.
type UserRegistration struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Company     string `json:"company"`
}

// UserUpdateRequest carries the mutable profile fields.
type UserUpdateRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Company     string `json:"company"`
}

// IsStaff reports whether the role belongs to internal staff.
func IsStaff(role string) bool {
	return role == RoleAdvisor || role == RoleUnderwriting
}
