package toolkit

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderItemsList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /folders/{id}/items", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("usemarker"))
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))

		switch r.PathValue("id") + "|" + r.URL.Query().Get("marker") {
		case "0|":
			writeJSON(w, http.StatusOK, map[string]any{
				"entries":     []any{map[string]any{"type": "folder", "id": "1", "name": "Docs"}},
				"next_marker": "page2",
			})
		case "0|page2":
			writeJSON(w, http.StatusOK, map[string]any{
				"entries": []any{map[string]any{"type": "file", "id": "2", "name": "root.txt"}},
			})
		case "1|":
			writeJSON(w, http.StatusOK, map[string]any{
				"entries": []any{
					map[string]any{"type": "file", "id": "3", "name": "nested.txt"},
					map[string]any{"type": "folder", "id": "4", "name": "Empty"},
				},
			})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"entries": []any{}})
		}
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	t.Run("flat", func(t *testing.T) {
		result, err := FolderItemsList(ctx, client, "0", false, 0)
		require.NoError(t, err)
		items := result["folder_items"].([]map[string]any)
		require.Len(t, items, 2)
		assert.Equal(t, "Docs", items[0]["name"])
		assert.NotContains(t, items[0], "items")
		assert.Equal(t, "root.txt", items[1]["name"])
	})

	t.Run("recursive", func(t *testing.T) {
		result, err := FolderItemsList(ctx, client, "0", true, 0)
		require.NoError(t, err)
		items := result["folder_items"].([]map[string]any)
		require.Len(t, items, 2)

		children := items[0]["items"].([]map[string]any)
		require.Len(t, children, 2)
		assert.Equal(t, "nested.txt", children[0]["name"])
		assert.NotContains(t, children[1], "items")
	})

	t.Run("empty", func(t *testing.T) {
		result, err := FolderItemsList(ctx, client, "4", false, 0)
		require.NoError(t, err)
		assert.Equal(t, "No items found in folder.", result["message"])
	})

	t.Run("limit out of range", func(t *testing.T) {
		_, err := FolderItemsList(ctx, client, "0", false, 5000)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestFolderCreateAndDelete(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /folders", func(w http.ResponseWriter, r *http.Request) {
		body := readBody(t, r)
		assert.Equal(t, "Reports", body["name"])
		assert.Equal(t, map[string]any{"id": "0"}, body["parent"])
		writeJSON(w, http.StatusCreated, map[string]any{"type": "folder", "id": "55", "name": "Reports"})
	})
	mux.HandleFunc("DELETE /folders/55", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("recursive"))
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := FolderCreate(ctx, client, "Reports", "")
	require.NoError(t, err)
	assert.Equal(t, "55", result["folder"].(map[string]any)["id"])

	result, err = FolderDelete(ctx, client, "55", true)
	require.NoError(t, err)
	assert.Equal(t, "Folder 55 deleted successfully.", result["message"])

	_, err = FolderDelete(ctx, client, "0", true)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFolderUpdates(t *testing.T) {
	var bodies []map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /folders/12", func(w http.ResponseWriter, r *http.Request) {
		bodies = append(bodies, readBody(t, r))
		writeJSON(w, http.StatusOK, map[string]any{"type": "folder", "id": "12"})
	})
	mux.HandleFunc("POST /folders/12/copy", func(w http.ResponseWriter, r *http.Request) {
		body := readBody(t, r)
		assert.Equal(t, map[string]any{"id": "7"}, body["parent"])
		assert.NotContains(t, body, "name")
		writeJSON(w, http.StatusCreated, map[string]any{"type": "folder", "id": "13"})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := FolderCopy(ctx, client, "12", "7", "")
	require.NoError(t, err)
	assert.Equal(t, "13", result["folder"].(map[string]any)["id"])

	_, err = FolderMove(ctx, client, "12", "7")
	require.NoError(t, err)
	_, err = FolderRename(ctx, client, "12", "Archive")
	require.NoError(t, err)
	_, err = FolderSetDescription(ctx, client, "12", "old stuff")
	require.NoError(t, err)
	_, err = FolderSetCollaboration(ctx, client, "12", true, false)
	require.NoError(t, err)
	_, err = FolderSetUploadEmail(ctx, client, "12", "open")
	require.NoError(t, err)
	_, err = FolderSetUploadEmail(ctx, client, "12", "")
	require.NoError(t, err)
	_, err = FolderUpdate(ctx, client, "12", FolderUpdateOptions{Name: "X", ParentFolderID: "9"})
	require.NoError(t, err)

	require.Len(t, bodies, 7)
	assert.Equal(t, map[string]any{"parent": map[string]any{"id": "7"}}, bodies[0])
	assert.Equal(t, map[string]any{"name": "Archive"}, bodies[1])
	assert.Equal(t, map[string]any{"description": "old stuff"}, bodies[2])
	assert.Equal(t, map[string]any{
		"can_non_owners_invite":             true,
		"can_non_owners_view_collaborators": false,
	}, bodies[3])
	assert.Equal(t, map[string]any{"folder_upload_email": map[string]any{"access": "open"}}, bodies[4])
	assert.Equal(t, map[string]any{"folder_upload_email": nil}, bodies[5])
	assert.Equal(t, map[string]any{"name": "X", "parent": map[string]any{"id": "9"}}, bodies[6])

	_, err = FolderSetUploadEmail(ctx, client, "12", "everyone")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = FolderUpdate(ctx, client, "12", FolderUpdateOptions{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFolderFavorites(t *testing.T) {
	var collections []any
	mux := http.NewServeMux()
	mux.HandleFunc("GET /collections", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"entries": []any{
			map[string]any{"type": "collection", "id": "fav-1", "name": "Favorites"},
		}})
	})
	mux.HandleFunc("GET /folders/12", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "id,type,name,collections", r.URL.Query().Get("fields"))
		writeJSON(w, http.StatusOK, map[string]any{
			"type": "folder", "id": "12",
			"collections": []any{
				map[string]any{"type": "collection", "id": "fav-1"},
				map[string]any{"type": "collection", "id": "other"},
			},
		})
	})
	mux.HandleFunc("PUT /folders/12", func(w http.ResponseWriter, r *http.Request) {
		body := readBody(t, r)
		collections = append(collections, body["collections"])
		writeJSON(w, http.StatusOK, map[string]any{"type": "folder", "id": "12"})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	_, err := FolderFavoritesAdd(ctx, client, "12")
	require.NoError(t, err)
	_, err = FolderFavoritesRemove(ctx, client, "12")
	require.NoError(t, err)

	assert.Equal(t, []any{
		[]any{map[string]any{"id": "fav-1", "type": "collection"}},
		[]any{map[string]any{"id": "other", "type": "collection"}},
	}, collections)
}

func TestFolderFavorites_NoCollection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /collections", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"entries": []any{}})
	})
	client := newTestClient(t, mux)

	_, err := FolderFavoritesAdd(context.Background(), client, "12")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFolderLocateByName(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "folder", q.Get("type"))
		assert.Equal(t, "name", q.Get("content_types"))
		assert.Equal(t, "0", q.Get("ancestor_folder_ids"))
		writeJSON(w, http.StatusOK, map[string]any{"entries": []any{
			map[string]any{"type": "folder", "id": "1", "name": "Invoices"},
			map[string]any{"type": "folder", "id": "2", "name": "Invoices 2024"},
			map[string]any{"type": "folder", "id": "3", "name": "invoices"},
		}})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := FolderLocateByName(ctx, client, "INVOICES", "0")
	require.NoError(t, err)
	folders := result["folders"].([]map[string]any)
	require.Len(t, folders, 2)
	assert.Equal(t, "1", folders[0]["id"])
	assert.Equal(t, "3", folders[1]["id"])

	result, err = FolderLocateByName(ctx, client, "Receipts", "0")
	require.NoError(t, err)
	assert.Contains(t, result["message"], "Receipts")
}

func TestFolderInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /folders/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "11" {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"type": "folder", "id": "11", "name": "Contracts"})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := FolderInfo(ctx, client, "11")
	require.NoError(t, err)
	assert.Equal(t, "Contracts", result["folder"].(map[string]any)["name"])

	_, err = FolderInfo(ctx, client, "12")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidArgument)
}
