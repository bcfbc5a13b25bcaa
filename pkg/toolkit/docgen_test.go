package toolkit

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocGenTemplates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /docgen_templates", func(w http.ResponseWriter, r *http.Request) {
		body := readBody(t, r)
		assert.Equal(t, map[string]any{"type": "file", "id": "77"}, body["file"])
		writeJSON(w, http.StatusOK, map[string]any{
			"file": map[string]any{"type": "file", "id": "77"}, "file_name": "letter.docx",
		})
	})
	mux.HandleFunc("GET /docgen_templates", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("marker") == "end" {
			writeJSON(w, http.StatusOK, map[string]any{"entries": []any{}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"entries": []any{map[string]any{
				"file": map[string]any{"type": "file", "id": "77"}, "file_name": "letter.docx",
			}},
			"next_marker": "end",
		})
	})
	mux.HandleFunc("GET /docgen_templates/77", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"file_name": "letter.docx"})
	})
	mux.HandleFunc("GET /docgen_templates/77/tags", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "v2", r.URL.Query().Get("template_version_id"))
		writeJSON(w, http.StatusOK, map[string]any{"entries": []any{
			map[string]any{"tag_content": "{{name}}", "tag_type": "text", "json_paths": []any{"name"}},
		}})
	})
	mux.HandleFunc("GET /docgen_template_jobs/77", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"entries": []any{
			map[string]any{"type": "docgen_job", "id": "j1", "status": "completed"},
		}})
	})
	mux.HandleFunc("DELETE /docgen_templates/77", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := DocGenTemplateCreate(ctx, client, "77")
	require.NoError(t, err)
	assert.Equal(t, "letter.docx", result["file_name"])

	result, err = DocGenTemplateList(ctx, client, "", 0)
	require.NoError(t, err)
	assert.Len(t, result["templates"], 1)
	assert.Equal(t, "end", result["next_marker"])

	result, err = DocGenTemplateList(ctx, client, "end", 0)
	require.NoError(t, err)
	assert.Equal(t, "No templates found.", result["message"])

	result, err = DocGenTemplateGet(ctx, client, "77")
	require.NoError(t, err)
	assert.Equal(t, "letter.docx", result["file_name"])

	result, err = DocGenTemplateListTags(ctx, client, "77", "v2", "", 0)
	require.NoError(t, err)
	tags := result["entries"].([]any)
	require.Len(t, tags, 1)
	assert.Equal(t, "{{name}}", tags[0].(map[string]any)["tag_content"])

	result, err = DocGenTemplateListJobs(ctx, client, "77", "", 0)
	require.NoError(t, err)
	assert.Len(t, result["entries"], 1)

	result, err = DocGenTemplateDelete(ctx, client, "77")
	require.NoError(t, err)
	assert.Equal(t, "Template 77 deleted successfully.", result["message"])
}

func TestDocGenBatchCreate(t *testing.T) {
	var batches []map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /docgen_batches", func(w http.ResponseWriter, r *http.Request) {
		batches = append(batches, readBody(t, r))
		writeJSON(w, http.StatusAccepted, map[string]any{"type": "docgen_batch", "id": "b1"})
	})
	mux.HandleFunc("GET /docgen_jobs/j1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"type": "docgen_job", "id": "j1", "status": "submitted"})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	documents := []map[string]any{
		{"generated_file_name": "letter-ana", "user_input": map[string]any{"name": "Ana"}},
	}
	result, err := DocGenBatchCreate(ctx, client, "77", "5", "", documents)
	require.NoError(t, err)
	assert.Equal(t, "b1", result["batch"].(map[string]any)["id"])

	require.Len(t, batches, 1)
	assert.Equal(t, map[string]any{
		"file":               map[string]any{"type": "file", "id": "77"},
		"input_source":       "api",
		"destination_folder": map[string]any{"type": "folder", "id": "5"},
		"output_type":        "pdf",
		"document_generation_data": []any{map[string]any{
			"generated_file_name": "letter-ana",
			"user_input":          map[string]any{"name": "Ana"},
		}},
	}, batches[0])

	_, err = DocGenBatchCreate(ctx, client, "77", "5", "html", documents)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = DocGenBatchCreate(ctx, client, "77", "5", "docx", []map[string]any{{"user_input": map[string]any{}}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	result, err = DocGenJobGet(ctx, client, "j1")
	require.NoError(t, err)
	assert.Equal(t, "submitted", result["status"])
}
