// File: lendvault/services/crm/client.go
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lendvault/models"
	"lendvault/utils"

	"go.uber.org/zap"
)

// RESTClient implements Client against the CRM's JSON REST API.
type RESTClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewRESTClient creates a CRM client for the given base URL and API key.
func NewRESTClient(baseURL, apiKey string) *RESTClient {
	return &RESTClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type contactResponse struct {
	ID string `json:"id"`
}

// UpsertContact creates or updates a contact and returns its CRM id.
func (c *RESTClient) UpsertContact(ctx context.Context, contact models.CRMContact) (string, error) {
	var resp contactResponse
	if err := c.do(ctx, http.MethodPost, "/contacts", contact, &resp); err != nil {
		return "", fmt.Errorf("crm: contact upsert failed: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("crm: contact upsert returned no id")
	}
	return resp.ID, nil
}

// AddTags applies tags to a contact.
func (c *RESTClient) AddTags(ctx context.Context, contactID string, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	body := map[string][]string{"tags": tags}
	path := fmt.Sprintf("/contacts/%s/tags", contactID)
	if err := c.do(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("crm: add tags failed: %w", err)
	}
	return nil
}

// RemoveTags removes tags from a contact.
func (c *RESTClient) RemoveTags(ctx context.Context, contactID string, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	body := map[string][]string{"tags": tags}
	path := fmt.Sprintf("/contacts/%s/tags", contactID)
	if err := c.do(ctx, http.MethodDelete, path, body, nil); err != nil {
		return fmt.Errorf("crm: remove tags failed: %w", err)
	}
	return nil
}

// AttachFile links an uploaded document to the contact by URL. The CRM fetches
// the file itself; only name and location travel over the wire.
func (c *RESTClient) AttachFile(ctx context.Context, contactID, fileName, url string) error {
	body := map[string]string{"name": fileName, "url": url}
	path := fmt.Sprintf("/contacts/%s/files", contactID)
	if err := c.do(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("crm: attach file failed: %w", err)
	}
	return nil
}

// do issues one JSON request and decodes the response into out when non-nil.
func (c *RESTClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		utils.GetLogger().Warn("CRM call rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
