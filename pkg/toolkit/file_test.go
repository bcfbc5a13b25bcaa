package toolkit

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

func TestFileInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "123" {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"type": "file", "id": "123", "name": "HAB-1-01.docx"})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := FileInfo(ctx, client, "123")
	require.NoError(t, err)
	info := result["file_info"].(map[string]any)
	assert.Equal(t, "123", info["id"])
	assert.Equal(t, "HAB-1-01.docx", info["name"])

	_, err = FileInfo(ctx, client, "0000000000")
	require.Error(t, err)
	assert.True(t, box.IsNotFound(err))

	_, err = FileInfo(ctx, client, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFileInfo_KeepsEveryField(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"type":                  "file",
			"id":                    "7",
			"name":                  "a.txt",
			"size":                  0,
			"description":           "",
			"version_number":        "3",
			"is_package":            false,
			"comment_count":         0,
			"uploader_display_name": "Ana",
			"classification":        map[string]any{"name": "Confidential"},
		})
	})
	client := newTestClient(t, mux)

	result, err := FileInfo(context.Background(), client, "7")
	require.NoError(t, err)
	info := result["file_info"].(map[string]any)
	assert.Equal(t, float64(0), info["size"])
	assert.Equal(t, "", info["description"])
	assert.Equal(t, "3", info["version_number"])
	assert.Equal(t, false, info["is_package"])
	assert.Equal(t, float64(0), info["comment_count"])
	assert.Equal(t, "Ana", info["uploader_display_name"])
	assert.Equal(t, map[string]any{"name": "Confidential"}, info["classification"])
}

func TestThumbnailOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    ThumbnailOptions
		wantErr bool
	}{
		{name: "zero value", opts: ThumbnailOptions{}},
		{name: "in range", opts: ThumbnailOptions{Extension: "jpg", MinHeight: 32, MaxWidth: 320}},
		{name: "too small", opts: ThumbnailOptions{MinWidth: 16}, wantErr: true},
		{name: "too large", opts: ThumbnailOptions{MaxHeight: 640}, wantErr: true},
		{name: "bad extension", opts: ThumbnailOptions{Extension: "gif"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileThumbnail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/1/thumbnail.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://cdn.example.com/1.png")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("GET /files/2/thumbnail.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	})
	mux.HandleFunc("GET /files/3/thumbnail.png", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := FileThumbnailURL(ctx, client, "1", ThumbnailOptions{})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/1.png", result["thumbnail_url"])

	result, err = FileThumbnailDownload(ctx, client, "2", ThumbnailOptions{Extension: "jpg"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, result["thumbnail_content"])
	assert.Equal(t, "image/jpeg", result["mime_type"])

	result, err = FileThumbnailDownload(ctx, client, "3", ThumbnailOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Thumbnail not available for this file.", result["message"])

	_, err = FileThumbnailURL(ctx, client, "1", ThumbnailOptions{MinHeight: 10})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFileCopyMoveRename(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /files/10/copy", func(w http.ResponseWriter, r *http.Request) {
		body := readBody(t, r)
		assert.Equal(t, map[string]any{"type": "folder", "id": "20"}, body["parent"])
		assert.Equal(t, "copy.txt", body["name"])
		writeJSON(w, http.StatusCreated, map[string]any{"type": "file", "id": "11", "name": "copy.txt"})
	})
	mux.HandleFunc("PUT /files/10", func(w http.ResponseWriter, r *http.Request) {
		body := readBody(t, r)
		file := map[string]any{"type": "file", "id": "10", "name": "a.txt"}
		if parent, ok := body["parent"]; ok {
			file["parent"] = parent
		}
		if name, ok := body["name"]; ok {
			file["name"] = name
		}
		writeJSON(w, http.StatusOK, file)
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := FileCopy(ctx, client, "10", "20", "copy.txt", "")
	require.NoError(t, err)
	assert.Equal(t, "11", result["copied_file"].(map[string]any)["id"])

	result, err = FileMove(ctx, client, "10", "30")
	require.NoError(t, err)
	moved := result["moved_file"].(map[string]any)
	assert.Equal(t, "30", moved["parent"].(map[string]any)["id"])

	result, err = FileRename(ctx, client, "10", "b.txt")
	require.NoError(t, err)
	assert.Equal(t, "b.txt", result["renamed_file"].(map[string]any)["name"])

	_, err = FileRename(ctx, client, "10", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFileDelete(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /files/10", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, mux)

	result, err := FileDelete(context.Background(), client, "10")
	require.NoError(t, err)
	assert.Equal(t, "File 10 deleted successfully.", result["message"])
}

func TestFileRetentionDate(t *testing.T) {
	mux := http.NewServeMux()
	handleUser(mux, "Europe/Lisbon")
	var sent []any
	mux.HandleFunc("PUT /files/5", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "id,type,name,disposition_at", r.URL.Query().Get("fields"))
		body := readBody(t, r)
		sent = append(sent, body["disposition_at"])
		resp := map[string]any{"type": "file", "id": "5"}
		if body["disposition_at"] != nil {
			resp["disposition_at"] = body["disposition_at"]
		}
		writeJSON(w, http.StatusOK, resp)
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	_, err := FileRetentionDateSet(ctx, client, "5", "2030-07-01 12:00:00")
	require.NoError(t, err)
	_, err = FileRetentionDateClear(ctx, client, "5")
	require.NoError(t, err)

	require.Len(t, sent, 2)
	at, err := time.Parse(time.RFC3339, sent[0].(string))
	require.NoError(t, err)
	// Lisbon is UTC+1 in July.
	assert.True(t, at.Equal(time.Date(2030, 7, 1, 11, 0, 0, 0, time.UTC)), at.String())
	assert.Nil(t, sent[1])

	_, err = FileRetentionDateSet(ctx, client, "5", "not a date")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFileLockUnlock(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /files/7", func(w http.ResponseWriter, r *http.Request) {
		body := readBody(t, r)
		if body["lock"] == nil {
			writeJSON(w, http.StatusOK, map[string]any{"type": "file", "id": "7"})
			return
		}
		lock := body["lock"].(map[string]any)
		assert.Equal(t, "lock", lock["access"])
		assert.Equal(t, true, lock["is_download_prevented"])
		assert.NotContains(t, lock, "expires_at")
		writeJSON(w, http.StatusOK, map[string]any{
			"type": "file", "id": "7",
			"lock": map[string]any{"type": "lock", "id": "99", "is_download_prevented": true},
		})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := FileLock(ctx, client, "7", "", true)
	require.NoError(t, err)
	locked := result["locked_file"].(map[string]any)
	assert.Equal(t, "99", locked["lock"].(map[string]any)["id"])

	result, err = FileUnlock(ctx, client, "7")
	require.NoError(t, err)
	assert.NotContains(t, result["unlocked_file"].(map[string]any), "lock")
}

func TestFileSetDownload(t *testing.T) {
	var permissions []any
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /files/8", func(w http.ResponseWriter, r *http.Request) {
		body := readBody(t, r)
		permissions = append(permissions, body["permissions"])
		writeJSON(w, http.StatusOK, map[string]any{"type": "file", "id": "8"})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	for _, fn := range []func(context.Context, *box.Client, string) (map[string]any, error){
		FileSetDownloadOpen, FileSetDownloadCompany, FileSetDownloadReset,
	} {
		result, err := fn(ctx, client, "8")
		require.NoError(t, err)
		assert.Contains(t, result, "updated_file")
	}

	assert.Equal(t, []any{
		map[string]any{"can_download": "open"},
		map[string]any{"can_download": "company"},
		nil,
	}, permissions)
}

func TestFileTags(t *testing.T) {
	tags := []string{"invoice"}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/9", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"type": "file", "id": "9", "tags": tags})
	})
	mux.HandleFunc("PUT /files/9", func(w http.ResponseWriter, r *http.Request) {
		body := readBody(t, r)
		tags = tags[:0]
		for _, tag := range body["tags"].([]any) {
			tags = append(tags, tag.(string))
		}
		writeJSON(w, http.StatusOK, map[string]any{"type": "file", "id": "9", "tags": tags})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := FileTagList(ctx, client, "9")
	require.NoError(t, err)
	assert.Equal(t, []string{"invoice"}, result["tags"])

	_, err = FileTagAdd(ctx, client, "9", "paid")
	require.NoError(t, err)
	_, err = FileTagAdd(ctx, client, "9", "paid")
	require.NoError(t, err)
	assert.Equal(t, []string{"invoice", "paid"}, tags)

	_, err = FileTagRemove(ctx, client, "9", "missing")
	require.NoError(t, err)
	_, err = FileTagRemove(ctx, client, "9", "invoice")
	require.NoError(t, err)
	_, err = FileTagRemove(ctx, client, "9", "paid")
	require.NoError(t, err)
	assert.Empty(t, tags)

	result, err = FileTagList(ctx, client, "9")
	require.NoError(t, err)
	assert.Equal(t, "No tags found for this file.", result["message"])
}

func TestFileSetDescription(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /files/3", func(w http.ResponseWriter, r *http.Request) {
		body := readBody(t, r)
		writeJSON(w, http.StatusOK, map[string]any{
			"type": "file", "id": "3", "description": body["description"],
		})
	})
	client := newTestClient(t, mux)

	result, err := FileSetDescription(context.Background(), client, "3", "Signed copy")
	require.NoError(t, err)
	assert.Equal(t, "Signed copy", result["updated_file"].(map[string]any)["description"])
}
