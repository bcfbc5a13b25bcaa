package toolkit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

// newTestClient returns a client whose API and upload endpoints point at
// mux.
func newTestClient(t *testing.T, mux *http.ServeMux) *box.Client {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &box.Config{
		BaseURL:    srv.URL,
		UploadURL:  srv.URL + "/upload",
		TokenURL:   srv.URL + "/oauth2/token",
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
		Timeout:    5 * time.Second,
	}
	client, err := box.New(cfg, box.DeveloperToken("test-token"), box.WithLogger(hclog.NewNullLogger()))
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"type": "error", "status": 404, "code": "not_found", "message": "Not Found",
	})
}

// readBody decodes a JSON request body.
func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, jsonDecode(r, &body))
	return body
}

func jsonDecode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func handleUser(mux *http.ServeMux, timezone string) {
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"type": "user", "id": "1", "timezone": timezone})
	})
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "error with message",
			err: &Error{
				Op:  "FolderFavoritesAdd",
				Err: ErrNotFound,
				Msg: "Favorites collection not found",
			},
			expected: "FolderFavoritesAdd: Favorites collection not found: not found",
		},
		{
			name: "error without message",
			err: &Error{
				Op:  "FileInfo",
				Err: errors.New("connection reset"),
			},
			expected: "FileInfo: connection reset",
		},
		{
			name: "invalid argument",
			err: &Error{
				Op:  "FileRename",
				Err: ErrInvalidArgument,
				Msg: "new_name: cannot be blank.",
			},
			expected: "FileRename: new_name: cannot be blank.: invalid argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	apiErr := &box.APIError{StatusCode: http.StatusNotFound, Code: "not_found"}
	err := error(&Error{Op: "FileInfo", Err: apiErr})

	assert.True(t, box.IsNotFound(err))
	assert.ErrorIs(t, &Error{Op: "FileCopy", Err: ErrInvalidArgument}, ErrInvalidArgument)
	assert.Nil(t, (&Error{Op: "x"}).Unwrap())
}

func TestRequired(t *testing.T) {
	err := required("FileCopy", map[string]any{
		"file_id":               "",
		"destination_folder_id": "0",
		"file_ids":              []string{},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "file_id: cannot be blank")
	assert.Contains(t, err.Error(), "file_ids: cannot be blank")
	assert.NotContains(t, err.Error(), "destination_folder_id")

	assert.NoError(t, required("FileInfo", map[string]any{"file_id": "1"}))
}

func TestParseDateTime(t *testing.T) {
	mux := http.NewServeMux()
	handleUser(mux, "America/New_York")
	client := newTestClient(t, mux)
	ctx := context.Background()

	t.Run("naive value uses the user's timezone", func(t *testing.T) {
		got, err := parseDateTime(ctx, client, "2025-12-31 10:00:00")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, 12, 31, 15, 0, 0, 0, time.UTC)), got.String())
	})

	t.Run("explicit offset is kept", func(t *testing.T) {
		got, err := parseDateTime(ctx, client, "2025-06-01T08:00:00Z")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parseDateTime(ctx, client, "next tuesday-ish")
		assert.Error(t, err)
	})
}

func TestUserLocation_FallsBackToUTC(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w)
	})
	client := newTestClient(t, mux)

	assert.Equal(t, time.UTC, userLocation(context.Background(), client))
}
