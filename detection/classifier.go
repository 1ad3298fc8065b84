package detection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

// Result is what the external classifier returns for one image.
type Result struct {
	Class          string  `json:"class"`
	Confidence     float64 `json:"confidence"`
	ProcessingTime float64 `json:"processing_time"`
}

// ErrClassificationFailed is the single failure surface for the classifier:
// callers get no partial result, only this error.
var ErrClassificationFailed = errors.New("classification failed")

// Client talks to the road-damage classifier service. The model itself is a
// black box; we only care about the label, confidence (0-100) and latency.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Classify uploads the image and returns the detector's verdict.
func (c *Client) Classify(ctx context.Context, image []byte, filename string) (Result, error) {
	if c.URL == "" {
		return Result{}, fmt.Errorf("%w: classifier URL not configured", ErrClassificationFailed)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}
	if _, err := part.Write(image); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, &body)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: model returned status %s", ErrClassificationFailed, resp.Status)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}
	return result, nil
}
