package toolkit

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCreate(t *testing.T) {
	var created []map[string]any
	mux := http.NewServeMux()
	handleUser(mux, "UTC")
	mux.HandleFunc("POST /tasks", func(w http.ResponseWriter, r *http.Request) {
		body := readBody(t, r)
		created = append(created, body)
		writeJSON(w, http.StatusCreated, map[string]any{
			"type": "task", "id": "t1", "action": body["action"], "is_completed": false,
		})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := TaskReviewCreate(ctx, client, "5", TaskOptions{
		DueAt:                "2030-01-15",
		Message:              "Please approve",
		RequiresAllAssignees: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "review", result["task"].(map[string]any)["action"])

	_, err = TaskCompleteCreate(ctx, client, "5", TaskOptions{})
	require.NoError(t, err)

	require.Len(t, created, 2)
	assert.Equal(t, map[string]any{"type": "file", "id": "5"}, created[0]["item"])
	assert.Equal(t, "all_assignees", created[0]["completion_rule"])
	assert.Equal(t, "Please approve", created[0]["message"])
	due, err := time.Parse(time.RFC3339, created[0]["due_at"].(string))
	require.NoError(t, err)
	assert.True(t, due.Equal(time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)), due.String())

	assert.Equal(t, "complete", created[1]["action"])
	assert.Equal(t, "any_assignee", created[1]["completion_rule"])
	assert.NotContains(t, created[1], "due_at")

	_, err = TaskReviewCreate(ctx, client, "5", TaskOptions{DueAt: "whenever"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTaskLifecycle(t *testing.T) {
	var updates []map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/{id}/tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "empty" {
			writeJSON(w, http.StatusOK, map[string]any{"total_count": 0, "entries": []any{}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"total_count": 1, "entries": []any{
			map[string]any{"type": "task", "id": "t1", "action": "review"},
		}})
	})
	mux.HandleFunc("GET /tasks/t1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"type": "task", "id": "t1", "message": "hi"})
	})
	mux.HandleFunc("PUT /tasks/t1", func(w http.ResponseWriter, r *http.Request) {
		updates = append(updates, readBody(t, r))
		writeJSON(w, http.StatusOK, map[string]any{"type": "task", "id": "t1"})
	})
	mux.HandleFunc("DELETE /tasks/t1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /task_assignments", func(w http.ResponseWriter, r *http.Request) {
		body := readBody(t, r)
		assert.Equal(t, map[string]any{"type": "task", "id": "t1"}, body["task"])
		writeJSON(w, http.StatusCreated, map[string]any{
			"type": "task_assignment", "id": "a1",
			"assigned_to": map[string]any{"type": "user", "id": "u1", "login": body["assign_to"].(map[string]any)["login"]},
		})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	result, err := TasksFileList(ctx, client, "5")
	require.NoError(t, err)
	assert.Len(t, result["tasks"], 1)

	result, err = TasksFileList(ctx, client, "empty")
	require.NoError(t, err)
	assert.Equal(t, "No tasks found for the specified file.", result["message"])

	result, err = TaskDetails(ctx, client, "t1")
	require.NoError(t, err)
	assert.Equal(t, "hi", result["task"].(map[string]any)["message"])

	_, err = TaskUpdate(ctx, client, "t1", TaskOptions{Message: "updated"})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, map[string]any{"completion_rule": "any_assignee", "message": "updated"}, updates[0])

	result, err = TaskAssignUser(ctx, client, "t1", "", "someone@example.com")
	require.NoError(t, err)
	assignment := result["task_assignment"].(map[string]any)
	assert.Equal(t, "someone@example.com", assignment["assigned_to"].(map[string]any)["login"])

	_, err = TaskAssignUser(ctx, client, "t1", "", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	result, err = TaskRemove(ctx, client, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Task removed successfully.", result["message"])
}
