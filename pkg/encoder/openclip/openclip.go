// Package openclip implements pkg/encoder's Encoder against an OpenCLIP
// sidecar service that wraps the pretrained model behind a small HTTP API.
package openclip

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/papercomputeco/lenscap/pkg/encoder"
)

const (
	// DefaultModel is the default OpenCLIP architecture.
	DefaultModel = "ViT-B-32"

	// DefaultPretrained is the default pretrained weights identifier.
	DefaultPretrained = "laion2b_s34b_b79k"

	// DefaultDevice is the default compute device.
	DefaultDevice = "cpu"

	// DefaultBaseURL is the default sidecar URL.
	DefaultBaseURL = "http://localhost:8093"
)

// Client talks to an OpenCLIP sidecar service.
type Client struct {
	baseURL    string
	model      string
	pretrained string
	device     string
	httpClient *http.Client
}

// Config holds configuration for the OpenCLIP client.
type Config struct {
	// BaseURL is the sidecar URL. Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Model is the OpenCLIP architecture (e.g. "ViT-B-32").
	Model string

	// Pretrained is the pretrained weights identifier
	// (e.g. "laion2b_s34b_b79k").
	Pretrained string

	// Device is the compute device the sidecar should run on ("cpu", "cuda").
	Device string
}

// embedRequest is the request body for both sidecar embedding endpoints.
// Exactly one of Text or Image is set.
type embedRequest struct {
	Model      string `json:"model"`
	Pretrained string `json:"pretrained"`
	Device     string `json:"device,omitempty"`
	Text       string `json:"text,omitempty"`
	Image      string `json:"image,omitempty"`
}

// embedResponse is the sidecar's response.
type embedResponse struct {
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error,omitempty"`
}

// NewClient creates a new OpenCLIP sidecar client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	pretrained := cfg.Pretrained
	if pretrained == "" {
		pretrained = DefaultPretrained
	}

	device := cfg.Device
	if device == "" {
		device = DefaultDevice
	}

	return &Client{
		baseURL:    baseURL,
		model:      model,
		pretrained: pretrained,
		device:     device,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// EncodeImage reads the image at path and returns its embedding.
// The image bytes are sent base64-encoded; decoding and preprocessing
// happen inside the sidecar.
func (c *Client) EncodeImage(ctx context.Context, path string) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading image: %v", encoder.ErrEncoding, err)
	}

	return c.embed(ctx, "/embed/image", embedRequest{
		Model:      c.model,
		Pretrained: c.pretrained,
		Device:     c.device,
		Image:      base64.StdEncoding.EncodeToString(data),
	})
}

// EncodeText returns the embedding for the given text.
func (c *Client) EncodeText(ctx context.Context, text string) ([]float32, error) {
	return c.embed(ctx, "/embed/text", embedRequest{
		Model:      c.model,
		Pretrained: c.pretrained,
		Device:     c.device,
		Text:       text,
	})
}

func (c *Client) embed(ctx context.Context, endpoint string, reqBody embedRequest) ([]float32, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", encoder.ErrEncoding, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", encoder.ErrEncoding, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: sending request: %v", encoder.ErrEncoding, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: sidecar returned status %d: %s", encoder.ErrEncoding, resp.StatusCode, string(body))
	}

	var embedResp embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", encoder.ErrEncoding, err)
	}

	if embedResp.Error != "" {
		return nil, fmt.Errorf("%w: %s", encoder.ErrEncoding, embedResp.Error)
	}

	if len(embedResp.Embedding) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned", encoder.ErrEncoding)
	}

	// Downstream dot products assume unit norm.
	return encoder.Normalize(embedResp.Embedding), nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

// Ensure Client implements encoder.Encoder
var _ encoder.Encoder = (*Client)(nil)
