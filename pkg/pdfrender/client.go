package pdfrender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"scouting-agent-be/pkg/agent/state"
)

// Client talks to the external PDF rendering service. The service accepts a
// scouting report and returns the URL of the rendered document.
type Client struct {
	BaseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type renderRequest struct {
	Report *state.ScoutingReport `json:"report"`
}

type renderResponse struct {
	PdfUrl string `json:"pdf_url"`
}

// Render submits a report and blocks until the document is ready.
func (c *Client) Render(ctx context.Context, report *state.ScoutingReport) (string, error) {
	payload, err := json.Marshal(renderRequest{Report: report})
	if err != nil {
		return "", fmt.Errorf("marshal render request: %w", err)
	}

	url := c.BaseURL + "/render"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("renderer error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var out renderResponse
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if out.PdfUrl == "" {
		return "", fmt.Errorf("renderer returned no pdf_url")
	}
	return out.PdfUrl, nil
}
