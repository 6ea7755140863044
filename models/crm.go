// File: lendvault/models/crm.go
package models

// CRMContact mirrors the contact record held in the external CRM.
type CRMContact struct {
	ID          string   `json:"id,omitempty"`
	Email       string   `json:"email"`
	Name        string   `json:"name,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Company     string   `json:"company,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// CRMWebhookPayload is the inbound body of the CRM tag webhook. The CRM sends
// the full current tag list for the contact on every delivery.
type CRMWebhookPayload struct {
	ContactID string   `json:"contactId"`
	Email     string   `json:"email"`
	Tags      []string `json:"tags"`
}

// CRMContactTaskPayload is the queued payload for contact upserts.
type CRMContactTaskPayload struct {
	UserID  string     `json:"userId"`
	Contact CRMContact `json:"contact"`
}

// CRMTagsTaskPayload is the queued payload for tag add/remove side calls.
type CRMTagsTaskPayload struct {
	ContactID  string   `json:"contactId"`
	AddTags    []string `json:"addTags,omitempty"`
	RemoveTags []string `json:"removeTags,omitempty"`
}

// CRMFileTaskPayload is the queued payload for attaching an uploaded document
// to the CRM contact by URL.
type CRMFileTaskPayload struct {
	ContactID string `json:"contactId"`
	FileName  string `json:"fileName"`
	URL       string `json:"url"`
}

// PushTaskPayload is the queued payload for an FCM push notification.
type PushTaskPayload struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
}
