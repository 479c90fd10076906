package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"time"

	"youthmind-portal/internal/apperr"
)

// maxErrorBody caps how much of an upstream error body is echoed back to
// the operator for diagnosis.
const maxErrorBody = 200

// Config tunes the client; zero values fall back to the defaults the
// portal has always used (10s health probe, 30s requests, 10m training).
type Config struct {
	BaseURL        string
	HealthTimeout  time.Duration
	RequestTimeout time.Duration
	TrainTimeout   time.Duration
}

// Client talks to the external model service. Every operation runs a
// short health probe first and aborts without touching the main endpoint
// when the service is down.
type Client struct {
	baseURL string
	health  *http.Client
	api     *http.Client
	train   *http.Client
	stream  *http.Client
}

func New(cfg Config) *Client {
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = 10 * time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.TrainTimeout <= 0 {
		cfg.TrainTimeout = 10 * time.Minute
	}
	return &Client{
		baseURL: cfg.BaseURL,
		health:  &http.Client{Timeout: cfg.HealthTimeout},
		api:     &http.Client{Timeout: cfg.RequestTimeout},
		train:   &http.Client{Timeout: cfg.TrainTimeout},
		// Training duration is unpredictable; the stream client imposes
		// no timeout and relies on context cancellation instead.
		stream: &http.Client{},
	}
}

// Health probes GET /health. Anything but a 200 means the model service
// is not ready.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}
	resp, err := c.health.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.UpstreamUnavailable,
			"Model service is not responding. Please ensure the model server is running.", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return apperr.Newf(apperr.UpstreamUnavailable,
			"Model service is not responding (health returned HTTP %d). Please ensure the model server is running.",
			resp.StatusCode)
	}
	return nil
}

// Predict relays the six validated features to POST /predict and returns
// the upstream JSON body unmodified.
func (c *Client) Predict(ctx context.Context, features map[string]float64) ([]byte, error) {
	if err := c.Health(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prediction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.passthrough(c.api, req)
}

// Models relays GET /models and returns the upstream JSON body unmodified.
func (c *Client) Models(ctx context.Context) ([]byte, error) {
	if err := c.Health(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create models request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.passthrough(c.api, req)
}

// Train uploads the CSV at csvPath to POST /train as multipart form data
// and returns the upstream JSON body unmodified. The call blocks for as
// long as synchronous training takes, bounded by the train timeout.
func (c *Client) Train(ctx context.Context, csvPath string) ([]byte, error) {
	if err := c.Health(ctx); err != nil {
		return nil, err
	}

	body, contentType, err := csvFormBody(csvPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/train", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create training request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	return c.passthrough(c.train, req)
}

// passthrough executes req and returns the raw body on a 200 with valid
// JSON. The body is deliberately not reshaped so upstream schema changes
// flow through untouched.
func (c *Client) passthrough(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, "Connection error to model service", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, "Failed to read model service response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Newf(apperr.UpstreamProtocol,
			"Model service returned HTTP %d. Response: %s", resp.StatusCode, truncate(body, maxErrorBody))
	}
	if !json.Valid(body) {
		return nil, apperr.New(apperr.UpstreamProtocol, "Invalid JSON response from model service")
	}
	return body, nil
}

// csvFormBody builds a multipart body with the CSV attached as the "file"
// field, typed text/csv the way the model service expects.
func csvFormBody(csvPath string) (io.Reader, string, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", apperr.Wrap(apperr.NotFound, "CSV file not found", err)
		}
		return nil, "", fmt.Errorf("failed to open training CSV: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreatePart(csvPartHeader(filepath.Base(csvPath)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("failed to attach training CSV: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form body: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

func csvPartHeader(filename string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", "text/csv")
	return h
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
