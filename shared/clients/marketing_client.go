package clients

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"elevatia-backend/shared/config"
)

// MarketingClient proxies email-list subscriptions to the Kit form endpoint.
// Fire-and-forget: the caller only learns success or failure, never Kit's
// subscriber state.
type MarketingClient struct {
	baseURL    string
	formID     string
	httpClient *http.Client
}

// NewMarketingClient creates a client from configuration
func NewMarketingClient() *MarketingClient {
	cfg := config.GetConfig()
	return &MarketingClient{
		baseURL: cfg.KitBaseURL,
		formID:  cfg.KitFormID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Subscribe submits an email address to the configured Kit form
func (c *MarketingClient) Subscribe(email string) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("email_address", email); err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}

	url := fmt.Sprintf("%s/forms/%s/subscriptions", c.baseURL, c.formID)
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("subscription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("subscription rejected with status %d", resp.StatusCode)
	}

	return nil
}
