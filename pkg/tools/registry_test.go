package tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/boxkit/pkg/box"
	"github.com/hashicorp-forge/boxkit/pkg/toolkit"
)

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

func TestDefault_Names(t *testing.T) {
	r := Default()

	for _, name := range []string{
		"file_info",
		"file_copy",
		"file_text_extract",
		"folder_items_list",
		"folder_locate_by_name",
		"metadata_set_instance_on_file",
		"task_assign_user",
		"shared_link_folder_create",
		"hub_list",
		"search",
	} {
		_, ok := r.Get(name)
		assert.True(t, ok, "missing tool %s", name)
	}

	tools := r.List()
	require.NotEmpty(t, tools)
	for i := 1; i < len(tools); i++ {
		assert.Less(t, tools[i-1].Name, tools[i].Name)
	}
	for _, tool := range tools {
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.NotNil(t, tool.InputSchema, tool.Name)
	}
}

func TestDefault_Schema(t *testing.T) {
	r := Default()

	tool, ok := r.Get("file_copy")
	require.True(t, ok)

	s := tool.InputSchema
	assert.Equal(t, "object", s.Type)
	assert.ElementsMatch(t, []string{"file_id", "destination_folder_id"}, s.Required)

	prop, ok := s.Properties.Get("file_id")
	require.True(t, ok)
	assert.Equal(t, "string", prop.Type)
	assert.Equal(t, "ID of the Box file", prop.Description)

	_, ok = s.Properties.Get("new_name")
	assert.True(t, ok)

	tool, ok = r.Get("folder_items_list")
	require.True(t, ok)
	prop, ok = tool.InputSchema.Properties.Get("limit")
	require.True(t, ok)
	assert.Equal(t, "integer", prop.Type)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	tool := define("WhoAmI", "Get the authenticated user.",
		func(ctx context.Context, client *box.Client, _ noArgs) (map[string]any, error) {
			return nil, nil
		})

	require.NoError(t, r.Register(tool))
	err := r.Register(tool)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	err = r.Register(&Tool{Name: "broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete")
}

func TestRegistry_Call(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"type": "file", "id": r.PathValue("id"), "name": "report.pdf",
		})
	})
	mux.HandleFunc("GET /folders/{id}/items", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, map[string]any{
			"total_count": 1,
			"entries":     []map[string]any{{"type": "file", "id": "7", "name": "a.txt"}},
		})
	})
	client := newTestClient(t, mux)
	r := Default()
	ctx := context.Background()

	t.Run("file info", func(t *testing.T) {
		result, err := r.Call(ctx, client, "file_info", map[string]any{"file_id": "123"})
		require.NoError(t, err)
		info, ok := result["file_info"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "123", info["id"])
		assert.Equal(t, "report.pdf", info["name"])
	})

	t.Run("weakly typed limit", func(t *testing.T) {
		result, err := r.Call(ctx, client, "folder_items_list", map[string]any{
			"folder_id": "0",
			"limit":     "5",
		})
		require.NoError(t, err)
		assert.Contains(t, result, "folder_items")
	})

	t.Run("unknown tool", func(t *testing.T) {
		_, err := r.Call(ctx, client, "file_teleport", nil)
		assert.ErrorIs(t, err, ErrToolNotFound)
	})

	t.Run("unknown argument", func(t *testing.T) {
		_, err := r.Call(ctx, client, "file_info", map[string]any{"file_id": "1", "fileid": "1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, toolkit.ErrInvalidArgument)

		var tkErr *toolkit.Error
		require.True(t, errors.As(err, &tkErr))
		assert.Equal(t, "FileInfo", tkErr.Op)
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := r.Call(ctx, client, "file_info", nil)
		assert.ErrorIs(t, err, toolkit.ErrInvalidArgument)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := r.Call(ctx, client, "folder_items_list", map[string]any{
			"folder_id": "0",
			"limit":     map[string]any{"n": 1},
		})
		assert.ErrorIs(t, err, toolkit.ErrInvalidArgument)
	})
}

func TestCallResult(t *testing.T) {
	ok := map[string]any{"message": "done"}
	assert.Equal(t, ok, CallResult(ok, nil))

	failed := CallResult(nil, errors.New("boom"))
	assert.Equal(t, map[string]any{"error": "boom"}, failed)
}

func TestSharedLinkArgs_Options(t *testing.T) {
	no := false
	yes := true

	opts := sharedLinkArgs{}.options()
	assert.False(t, opts.DisallowDownload)
	assert.False(t, opts.DisallowPreview)

	opts = sharedLinkArgs{Access: "open", CanDownload: &no, CanPreview: &yes}.options()
	assert.Equal(t, "open", opts.Access)
	assert.True(t, opts.DisallowDownload)
	assert.False(t, opts.DisallowPreview)
}
