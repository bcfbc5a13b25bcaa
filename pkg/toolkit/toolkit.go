// Package toolkit exposes Box operations as plain functions for agents.
//
// Every function takes a context, an authenticated *box.Client and simple
// arguments, and returns the Box response reshaped into a map. Empty
// results are reported as {"message": ...} rather than errors. Box API
// failures are logged on the client's logger and returned wrapped in
// *Error.
package toolkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

var (
	// ErrInvalidArgument is wrapped by every argument validation failure.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a lookup by name finds nothing that
	// callers would want to act on, such as the Favorites collection.
	ErrNotFound = errors.New("not found")
)

// Error describes a failed toolkit operation.
type Error struct {
	Op  string
	Err error
	Msg string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// invalid wraps a validation failure.
func invalid(op string, err error) error {
	return &Error{Op: op, Err: ErrInvalidArgument, Msg: err.Error()}
}

// apiFailure logs a Box call failure and wraps it.
func apiFailure(client *box.Client, op string, err error) error {
	logger := client.Logger()

	var apiErr *box.APIError
	if errors.As(err, &apiErr) {
		logger.Error("box api error",
			"op", op,
			"status", apiErr.StatusCode,
			"code", apiErr.Code,
			"request_id", apiErr.RequestID,
			"message", apiErr.Message)
	} else {
		logger.Error("box call failed", "op", op, "error", err)
	}
	return &Error{Op: op, Err: err}
}

// required validates that every named argument is non-empty.
func required(op string, args map[string]any) error {
	errs := validation.Errors{}
	for name, v := range args {
		errs[name] = validation.Validate(v, validation.Required)
	}
	if err := errs.Filter(); err != nil {
		return invalid(op, err)
	}
	return nil
}

// message is the result used for informational outcomes.
func message(format string, args ...any) map[string]any {
	return map[string]any{"message": fmt.Sprintf(format, args...)}
}

// rawDocument is implemented by Box responses that kept their JSON.
type rawDocument interface {
	RawJSON() json.RawMessage
}

// toMap reshapes a Box response into a plain map. Responses decoded by
// the client are passed through from their JSON so fields the box
// package does not model are kept.
func toMap(v any) (map[string]any, error) {
	var data []byte
	if r, ok := v.(rawDocument); ok && len(r.RawJSON()) > 0 {
		data = r.RawJSON()
	} else {
		var err error
		if data, err = json.Marshal(v); err != nil {
			return nil, fmt.Errorf("error encoding response: %w", err)
		}
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	return m, nil
}

// toMaps reshapes a slice of Box objects.
func toMaps[T any](items []T) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(items))
	for i := range items {
		m, err := toMap(&items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// wrap reshapes v and stores it under key.
func wrap(key string, v any) (map[string]any, error) {
	m, err := toMap(v)
	if err != nil {
		return nil, err
	}
	return map[string]any{key: m}, nil
}

// wrapList reshapes items and stores them under key.
func wrapList[T any](key string, items []T) (map[string]any, error) {
	ms, err := toMaps(items)
	if err != nil {
		return nil, err
	}
	return map[string]any{key: ms}, nil
}

// userLocation returns the current user's timezone, or UTC when Box does
// not report a usable one.
func userLocation(ctx context.Context, client *box.Client) *time.Location {
	user, err := client.CurrentUser(ctx, "timezone")
	if err != nil || user.Timezone == "" {
		if err != nil {
			client.Logger().Debug("falling back to UTC", "error", err)
		}
		return time.UTC
	}
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// parseDateTime parses a date or date-time. Values without a zone are
// interpreted in the current user's timezone.
func parseDateTime(ctx context.Context, client *box.Client, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseIn(value, userLocation(ctx, client))
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q: %w", value, err)
	}
	return t, nil
}

func boolPtr(b bool) *bool {
	return &b
}
