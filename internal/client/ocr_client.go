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

	"plate-service/internal/config"
	"plate-service/internal/model"
)

type detectRequest struct {
	ImageRef string `json:"image_ref"`
}

type detectedLine struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type detectResponse struct {
	Lines []detectedLine `json:"lines"`
}

// OCRClient calls the external text-detection service and maps its line
// output to fragments the recognizer consumes.
type OCRClient struct {
	baseURL       string
	internalToken string
	httpClient    *http.Client
}

func NewOCRClient(cfg *config.Config) *OCRClient {
	timeout := cfg.OCR.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &OCRClient{
		baseURL:       cfg.OCR.ServiceURL,
		internalToken: cfg.OCR.InternalToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// DetectText asks the provider for all text visible in the referenced image.
// Network errors are retried with backoff; lines with empty text or an
// unusable confidence are discarded without failing the call.
func (c *OCRClient) DetectText(ctx context.Context, imageRef string) ([]model.TextFragment, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("OCR service URL is not configured")
	}
	if strings.TrimSpace(imageRef) == "" {
		return nil, fmt.Errorf("empty image reference")
	}

	payload, err := json.Marshal(detectRequest{ImageRef: imageRef})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := c.baseURL + "/internal/ocr/detect"

	newRequest := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.internalToken != "" {
			req.Header.Set("X-Internal-Token", c.internalToken)
		}
		return req, nil
	}

	var resp *http.Response
	var lastErr error
	maxRetries := 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := newRequest()
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		resp, lastErr = c.httpClient.Do(req)
		if lastErr == nil {
			break
		}
		if attempt == maxRetries-1 {
			return nil, fmt.Errorf("failed to execute request after %d attempts: %w", maxRetries, lastErr)
		}
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
	if resp == nil {
		return nil, fmt.Errorf("failed to execute request: %w", lastErr)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCR service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response detectResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	fragments := make([]model.TextFragment, 0, len(response.Lines))
	for i, line := range response.Lines {
		if strings.TrimSpace(line.Text) == "" {
			continue
		}
		conf := line.Confidence
		// Some providers report confidence in [0,1].
		if conf > 0 && conf <= 1 {
			conf *= 100
		}
		if conf < 0 || conf > 100 {
			continue
		}
		fragments = append(fragments, model.TextFragment{
			Text:       line.Text,
			Confidence: conf,
			Order:      i,
		})
	}

	return fragments, nil
}
