package box

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoTokenSource is returned by New when no credentials are supplied.
var ErrNoTokenSource = errors.New("box: token source is required")

// APIError is a non-2xx response from the Box API.
type APIError struct {
	StatusCode  int            `json:"status"`
	Code        string         `json:"code"`
	Message     string         `json:"message"`
	RequestID   string         `json:"request_id"`
	HelpURL     string         `json:"help_url,omitempty"`
	ContextInfo map[string]any `json:"context_info,omitempty"`

	// Method and Path identify the failed call.
	Method string `json:"-"`
	Path   string `json:"-"`
	Body   []byte `json:"-"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("box: %s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("box: %s %s: %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// Retryable reports whether the request may succeed if sent again.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	apiErr := &APIError{}
	if len(body) > 0 {
		// Box error bodies are JSON; anything else keeps only the status.
		_ = json.Unmarshal(body, apiErr)
	}
	apiErr.StatusCode = status
	apiErr.Method = method
	apiErr.Path = path
	apiErr.Body = body
	return apiErr
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsNotFound reports whether err is a 404 from Box.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsConflict reports whether err is a 409 from Box, e.g. an item with the
// same name already exists.
func IsConflict(err error) bool {
	return IsStatus(err, http.StatusConflict)
}
