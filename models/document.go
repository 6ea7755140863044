// File: lendvault/models/document.go
package models

import "time"

// RequestedTagPrefix marks CRM tags that request a document from a client.
// "requested_bank_statements" asks for the requirement with code "bank_statements".
const RequestedTagPrefix = "requested_"

// ReceivedTagPrefix is applied outward once a requested document is uploaded.
const ReceivedTagPrefix = "received_"

// Upload states for a client document row.
const (
	DocumentStatusPending  = "pending"
	DocumentStatusUploaded = "uploaded"
)

// RequiredDocument is a document type definition. Core definitions apply to
// every client; dynamic ones are created at runtime from CRM tags.
type RequiredDocument struct {
	Code      string    `bson:"code" json:"code"`
	Label     string    `bson:"label" json:"label"`
	Core      bool      `bson:"core" json:"core"`
	Tag       string    `bson:"tag" json:"tag,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ClientDocument joins a user to a required document, carrying the per-user
// activation flag and the upload state. Rows for dynamic requirements are
// created and deactivated by webhook-driven reconciliation; rows for core
// requirements appear lazily on first upload.
type ClientDocument struct {
	ID      string `bson:"id" json:"id"`
	UserID  string `bson:"user_id" json:"userId"`
	Code    string `bson:"code" json:"code"`
	Dynamic bool   `bson:"dynamic" json:"dynamic"`
	Active  bool   `bson:"active" json:"active"`

	Status          string     `bson:"status" json:"status"`
	StoragePublicID string     `bson:"storage_public_id" json:"-"`
	FileName        string     `bson:"file_name" json:"fileName,omitempty"`
	UploadedAt      *time.Time `bson:"uploaded_at,omitempty" json:"uploadedAt,omitempty"`
	DeactivatedAt   *time.Time `bson:"deactivated_at,omitempty" json:"deactivatedAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// VaultItem is the client-facing view of one requirement: the definition
// merged with the user's upload state.
type VaultItem struct {
	Code        string     `json:"code"`
	Label       string     `json:"label"`
	Core        bool       `json:"core"`
	Status      string     `json:"status"`
	FileName    string     `json:"fileName,omitempty"`
	UploadedAt  *time.Time `json:"uploadedAt,omitempty"`
	DownloadURL string     `json:"downloadURL,omitempty"`
}

// ReconcileResult summarises one reconciliation pass over a webhook payload.
type ReconcileResult struct {
	Activated          []string `json:"activated"`
	Deactivated        []string `json:"deactivated"`
	CreatedDefinitions []string `json:"createdDefinitions"`
}
