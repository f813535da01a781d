package delivery

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookDeliverer POSTs readings as JSON to an HTTP endpoint.
type WebhookDeliverer struct {
	url    string
	client *http.Client
}

// NewWebhookDeliverer creates a deliverer for the given URL. The client
// timeout bounds the whole attempt; there is exactly one per boot.
func NewWebhookDeliverer(url string) *WebhookDeliverer {
	return &WebhookDeliverer{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Deliver posts one reading. Any non-2xx status is a failure.
func (d *WebhookDeliverer) Deliver(r Reading) error {
	payload, err := FormatPayload(r)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	resp, err := d.client.Post(d.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("post reading: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("endpoint returned %s", resp.Status)
	}
	return nil
}

// Close is a no-op; the HTTP client holds no persistent connection worth
// tearing down on a node that is about to suspend.
func (d *WebhookDeliverer) Close() error {
	return nil
}
