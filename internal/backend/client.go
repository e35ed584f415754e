package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// APIError is the normalized failure shape for backend requests. Message
// carries the server-supplied message when one is present and a generic
// fallback otherwise; Body holds the raw error payload for callers that need
// more than the message.
type APIError struct {
	Status  int
	Message string
	Err     string
	Body    map[string]interface{}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend request failed (%d): %s", e.Status, e.Message)
}

// File is one file part of a multipart registration payload
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Client talks to the remote registration backend. It is stateless and safe
// for concurrent use.
type Client struct {
	http *resty.Client
}

// NewClient creates a backend client. Relative paths passed to requests are
// resolved against baseURL; absolute URLs are used as-is.
func NewClient(baseURL string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient}
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		Get(path)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	return c.decode(resp, out)
}

// PostForm issues a multipart POST with text fields and an ordered list of
// file parts under the shared "files" key. The multipart boundary is left to
// the transport; no JSON content type is forced.
func (c *Client) PostForm(ctx context.Context, path string, fields map[string]string, files []File, out interface{}) error {
	req := c.http.R().
		SetContext(ctx).
		SetMultipartFormData(fields)

	for _, f := range files {
		req.SetMultipartField("files", f.Filename, f.ContentType, bytes.NewReader(f.Content))
	}

	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	return c.decode(resp, out)
}

// decode turns a response into either the parsed success payload or an
// *APIError. Error bodies that are not valid JSON degrade to an empty object
// so the error path itself can never fail.
func (c *Client) decode(resp *resty.Response, out interface{}) error {
	if resp.IsError() {
		return normalizeError(resp.StatusCode(), resp.Body())
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

func normalizeError(status int, body []byte) *APIError {
	payload := map[string]interface{}{}
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Debug().Int("status", status).Msg("Backend returned non-JSON error body")
		payload = map[string]interface{}{}
	}

	apiErr := &APIError{
		Status:  status,
		Message: "Request failed",
		Body:    payload,
	}
	if sc, ok := payload["statusCode"].(float64); ok {
		apiErr.Status = int(sc)
	}
	if msg, ok := payload["message"].(string); ok && msg != "" {
		apiErr.Message = msg
	}
	if e, ok := payload["error"].(string); ok {
		apiErr.Err = e
	}
	return apiErr
}

// IsNotFound reports whether err is a backend not-found failure
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}
