// Package sheets talks to the spreadsheet-backed web service that is the
// system of record for live property listings. It is a best-effort relay:
// no retries, no caching.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client fetches the listings feed and forwards status mutations.
type Client struct {
	feedURL    string
	updateURL  string
	httpClient *http.Client
}

// NewClient constructs a listings client. feedURL serves the read path,
// updateURL the mutation path.
func NewClient(feedURL, updateURL string) *Client {
	return &Client{
		feedURL:    strings.TrimSpace(feedURL),
		updateURL:  strings.TrimSpace(updateURL),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch retrieves the listings feed and returns the upstream JSON body
// verbatim. Non-2xx statuses and non-JSON responses are errors.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return nil, fmt.Errorf("upstream response was not JSON (content-type %q)", contentType)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	return body, nil
}

type updateRequest struct {
	Action     string `json:"action"`
	Referencia string `json:"referencia"`
	Column     string `json:"column"`
	NewValue   string `json:"newValue"`
}

type updateResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Update forwards a single-cell mutation for the listing identified by
// referencia. There is no read-after-write guarantee; callers re-fetch the
// feed to observe the effect.
func (c *Client) Update(ctx context.Context, referencia, column, newValue string) error {
	payload, err := json.Marshal(updateRequest{
		Action:     "update",
		Referencia: referencia,
		Column:     column,
		NewValue:   newValue,
	})
	if err != nil {
		return fmt.Errorf("encode update: %w", err)
	}
	correlationID := uuid.NewString()
	slog.Info("listing_update",
		"correlation_id", correlationID,
		"referencia", referencia,
		"column", column,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.updateURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	var result updateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode update response: %w", err)
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "update rejected by upstream"
		}
		slog.Warn("listing_update_failed", "correlation_id", correlationID, "reason", msg)
		return fmt.Errorf("update listing: %s", msg)
	}
	return nil
}
