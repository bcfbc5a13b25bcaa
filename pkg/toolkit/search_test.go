package toolkit

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("query") == "nothing" {
			writeJSON(w, http.StatusOK, map[string]any{"entries": []any{}})
			return
		}
		assert.Equal(t, "pdf,docx", q.Get("file_extensions"))
		assert.Equal(t, "name,file_content", q.Get("content_types"))
		assert.Equal(t, "10,11", q.Get("ancestor_folder_ids"))
		assert.Equal(t, "file", q.Get("type"))
		assert.Equal(t, "50", q.Get("limit"))
		writeJSON(w, http.StatusOK, map[string]any{"total_count": 1, "entries": []any{
			map[string]any{"type": "file", "id": "1", "name": "contract.pdf"},
		}})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := Search(ctx, client, "contract", SearchOptions{
		FileExtensions:    []string{"pdf", "docx"},
		Where:             []string{"name", "file_content"},
		AncestorFolderIDs: []string{"10", "11"},
		Type:              "file",
		Limit:             50,
	})
	require.NoError(t, err)
	results := result["results"].([]map[string]any)
	require.Len(t, results, 1)
	assert.Equal(t, "contract.pdf", results[0]["name"])

	result, err = Search(ctx, client, "nothing", SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "No results found.", result["message"])

	tests := []struct {
		name string
		opts SearchOptions
	}{
		{name: "bad where", opts: SearchOptions{Where: []string{"owner"}}},
		{name: "bad type", opts: SearchOptions{Type: "hub"}},
		{name: "limit too large", opts: SearchOptions{Limit: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Search(ctx, client, "contract", tt.opts)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}

	_, err = Search(ctx, client, "", SearchOptions{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWhoAmI(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"type": "user", "id": "42", "name": "Test User", "login": "user@example.com",
		})
	})
	client := newTestClient(t, mux)

	result, err := WhoAmI(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, "42", result["id"])
	assert.Equal(t, "user@example.com", result["login"])

	_, err = WhoAmI(context.Background(), newTestClient(t, http.NewServeMux()))
	var tkErr *Error
	require.ErrorAs(t, err, &tkErr)
	assert.Equal(t, "WhoAmI", tkErr.Op)
}
