package crm

import (
	"context"

	"lendvault/models"
)

// Client defines the outbound operations against the external CRM.
type Client interface {
	// UpsertContact creates or updates a contact and returns its CRM id.
	UpsertContact(ctx context.Context, contact models.CRMContact) (string, error)
	// AddTags applies tags to a contact.
	AddTags(ctx context.Context, contactID string, tags []string) error
	// RemoveTags removes tags from a contact.
	RemoveTags(ctx context.Context, contactID string, tags []string) error
	// AttachFile links an uploaded document to the contact by URL.
	AttachFile(ctx context.Context, contactID, fileName, url string) error
}
