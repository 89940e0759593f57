package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/lfmartins/calendario/internal/model"
	"github.com/lfmartins/calendario/internal/upload"
)

// HTTPClient talks to the calendario HTTP/JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a client targeting the given base URL
// (e.g. "http://localhost:8080").
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// statusResponse is the generic {status, message} success body.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// eventoResponse wraps a single event in a success body.
type eventoResponse struct {
	Status string      `json:"status"`
	Evento model.Event `json:"evento"`
}

// Data returns the full document.
func (c *HTTPClient) Data(ctx context.Context) (*model.Document, error) {
	var doc model.Document
	if err := c.doJSON(ctx, http.MethodGet, "/api/data", nil, &doc); err != nil {
		return nil, err
	}
	doc.Normalize()
	return &doc, nil
}

// Config returns the config object.
func (c *HTTPClient) Config(ctx context.Context) (map[string]any, error) {
	var cfg map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "/api/config", nil, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetConfig replaces the config object wholesale.
func (c *HTTPClient) SetConfig(ctx context.Context, cfg map[string]any) error {
	return c.doJSON(ctx, http.MethodPost, "/api/config", cfg, nil)
}

// ListEventos returns all events in stored order.
func (c *HTTPClient) ListEventos(ctx context.Context) ([]model.Event, error) {
	var eventos []model.Event
	if err := c.doJSON(ctx, http.MethodGet, "/api/eventos", nil, &eventos); err != nil {
		return nil, err
	}
	return eventos, nil
}

// CreateEvento creates a new event and returns it with its assigned id.
func (c *HTTPClient) CreateEvento(ctx context.Context, fields model.Event) (model.Event, error) {
	var resp eventoResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/eventos", fields, &resp); err != nil {
		return nil, err
	}
	return resp.Evento, nil
}

// UpdateEvento replaces the event with the given id.
func (c *HTTPClient) UpdateEvento(ctx context.Context, id int, fields model.Event) (model.Event, error) {
	var resp eventoResponse
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/eventos/%d", id), fields, &resp); err != nil {
		return nil, err
	}
	return resp.Evento, nil
}

// DeleteEvento deletes the event with the given id (idempotent).
func (c *HTTPClient) DeleteEvento(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/eventos/%d", id), nil, nil)
}

// Health checks the server's health endpoint.
func (c *HTTPClient) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/health", nil, nil)
}

// Upload sends a file as a multipart form and returns the stored name and URL.
func (c *HTTPClient) Upload(ctx context.Context, filename string, r io.Reader) (*upload.Result, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("copying file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, apiError(resp.StatusCode, respBody)
	}

	var out upload.Result
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &out, nil
}

// Fetch retrieves a stored upload's raw bytes.
func (c *HTTPClient) Fetch(ctx context.Context, uploadURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+strings.TrimLeft(uploadURL, "/"), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, apiError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// apiError extracts the {status:"error", message} shape when present.
func apiError(status int, body []byte) error {
	var errResp statusResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
		return &APIError{StatusCode: status, Message: errResp.Message}
	}
	return &APIError{StatusCode: status, Message: string(body)}
}
