// Package client is the HTTP client side of the extraction endpoint: it
// submits one encoded image and normalizes the reply.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/22331a1268-rgb/read-sum-magic/internal/models"
	"github.com/22331a1268-rgb/read-sum-magic/internal/scoresheet"
)

// Client talks to a running extraction server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Extract submits one data URL to the server and returns the normalized
// result. A transport failure or a body carrying an error field both come
// back as errors; the caller decides how to handle a failed image.
func (c *Client) Extract(ctx context.Context, imageDataURL string) (models.ExtractionResult, error) {
	requestBody, err := json.Marshal(map[string]string{
		"imageBase64": imageDataURL,
	})
	if err != nil {
		return models.ExtractionResult{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/extract", bytes.NewBuffer(requestBody))
	if err != nil {
		return models.ExtractionResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return models.ExtractionResult{}, fmt.Errorf("failed to call extraction endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ExtractionResult{}, fmt.Errorf("failed to read response body: %w", err)
	}

	// The endpoint reports failures as {"error": ...} with a non-2xx status;
	// ParseResult surfaces the error field either way.
	result, err := scoresheet.ParseResult(body)
	if err != nil {
		if resp.StatusCode != http.StatusOK {
			return models.ExtractionResult{}, fmt.Errorf("extraction endpoint returned status %d: %w", resp.StatusCode, err)
		}
		return models.ExtractionResult{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return models.ExtractionResult{}, fmt.Errorf("extraction endpoint returned status %d", resp.StatusCode)
	}
	return result, nil
}
