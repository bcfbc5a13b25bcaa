package toolkit

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolling(t *testing.T) {
	t.Helper()
	prev := RepresentationPollInterval
	RepresentationPollInterval = time.Millisecond
	t.Cleanup(func() { RepresentationPollInterval = prev })
}

func representationBody(r *http.Request, state string) map[string]any {
	hint := r.Header.Get("X-Rep-Hints")
	kind := hint[1 : len(hint)-1]
	base := "http://" + r.Host
	return map[string]any{
		"type": "file", "id": r.PathValue("id"), "name": "doc.pdf",
		"representations": map[string]any{"entries": []any{map[string]any{
			"representation": kind,
			"info":           map[string]any{"url": base + "/info/" + r.PathValue("id")},
			"status":         map[string]any{"state": state},
			"content": map[string]any{
				"url_template": base + "/content/" + kind + "/{+asset_path}",
			},
		}}},
	}
}

func TestFileTextExtract(t *testing.T) {
	fastPolling(t)

	var (
		infoCalls  atomic.Int32
		noneChecks atomic.Int32
	)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "name,representations", r.URL.Query().Get("fields"))
		markdown := r.Header.Get("X-Rep-Hints") == "[markdown]"

		switch r.PathValue("id") {
		case "md":
			writeJSON(w, http.StatusOK, representationBody(r, "success"))
		case "txt":
			if markdown {
				writeJSON(w, http.StatusOK, representationBody(r, "impossible"))
				return
			}
			writeJSON(w, http.StatusOK, representationBody(r, "success"))
		case "new":
			if noneChecks.Add(1) == 1 {
				writeJSON(w, http.StatusOK, representationBody(r, "none"))
				return
			}
			writeJSON(w, http.StatusOK, representationBody(r, "success"))
		case "slow":
			writeJSON(w, http.StatusOK, representationBody(r, "pending"))
		case "bin":
			writeJSON(w, http.StatusOK, map[string]any{
				"type": "file", "id": "bin",
				"representations": map[string]any{"entries": []any{}},
			})
		default:
			writeNotFound(w)
		}
	})
	mux.HandleFunc("GET /info/{id}", func(w http.ResponseWriter, r *http.Request) {
		infoCalls.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	mux.HandleFunc("GET /content/{kind}/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# " + r.PathValue("kind")))
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	t.Run("markdown", func(t *testing.T) {
		result, err := FileTextExtract(ctx, client, "md")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"content": "# markdown"}, result)
	})

	t.Run("falls back to extracted text", func(t *testing.T) {
		result, err := FileTextExtract(ctx, client, "txt")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"content": "# extracted_text"}, result)
	})

	t.Run("requests generation then rechecks", func(t *testing.T) {
		result, err := FileTextExtract(ctx, client, "new")
		require.NoError(t, err)
		assert.Equal(t, "# markdown", result["content"])
		assert.Equal(t, int32(1), infoCalls.Load())
	})

	t.Run("still pending", func(t *testing.T) {
		result, err := FileTextExtract(ctx, client, "slow")
		require.NoError(t, err)
		assert.Equal(t, "pending", result["status"])
		assert.Equal(t, "markdown representation is still being generated. Please try again later.",
			result["message"])
	})

	t.Run("no representation offered", func(t *testing.T) {
		result, err := FileTextExtract(ctx, client, "bin")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"error":  "extracted_text representation is impossible for this file.",
			"status": "impossible",
		}, result)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FileTextExtract(ctx, client, "gone")
		assert.Error(t, err)
	})
}

func TestFileTextExtract_Canceled(t *testing.T) {
	prev := RepresentationPollInterval
	RepresentationPollInterval = time.Hour
	t.Cleanup(func() { RepresentationPollInterval = prev })

	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, representationBody(r, "pending"))
	})
	client := newTestClient(t, mux)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := FileTextExtract(ctx, client, "slow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
