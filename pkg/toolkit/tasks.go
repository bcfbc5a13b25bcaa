package toolkit

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

// TaskOptions are the optional attributes of a task.
type TaskOptions struct {
	// DueAt is a date or date-time. Values without a zone are in the
	// current user's timezone.
	DueAt string

	Message string

	// RequiresAllAssignees makes the task complete only once every
	// assignee has acted on it.
	RequiresAllAssignees bool
}

func (o TaskOptions) completionRule() string {
	if o.RequiresAllAssignees {
		return box.CompletionRuleAllAssignees
	}
	return box.CompletionRuleAnyAssignee
}

func (o TaskOptions) dueAt(ctx context.Context, client *box.Client) (*time.Time, error) {
	if o.DueAt == "" {
		return nil, nil
	}
	at, err := parseDateTime(ctx, client, o.DueAt)
	if err != nil {
		return nil, fmt.Errorf("due_at: %w", err)
	}
	return &at, nil
}

// TaskReviewCreate creates a task asking the assignees to approve or
// reject a file.
func TaskReviewCreate(ctx context.Context, client *box.Client, fileID string, opts TaskOptions) (map[string]any, error) {
	return createTask(ctx, client, "TaskReviewCreate", fileID, box.TaskActionReview, opts)
}

// TaskCompleteCreate creates a task asking the assignees to mark a file
// as done.
func TaskCompleteCreate(ctx context.Context, client *box.Client, fileID string, opts TaskOptions) (map[string]any, error) {
	return createTask(ctx, client, "TaskCompleteCreate", fileID, box.TaskActionComplete, opts)
}

func createTask(
	ctx context.Context, client *box.Client, op, fileID, action string, opts TaskOptions,
) (map[string]any, error) {
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}
	dueAt, err := opts.dueAt(ctx, client)
	if err != nil {
		return nil, invalid(op, err)
	}

	task, err := client.CreateTask(ctx, box.CreateTaskRequest{
		Item:           box.ItemMini{Type: "file", ID: fileID},
		Action:         action,
		Message:        opts.Message,
		DueAt:          dueAt,
		CompletionRule: opts.completionRule(),
	})
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("task", task)
}

// TasksFileList lists the tasks of a file.
func TasksFileList(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	const op = "TasksFileList"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	page, err := client.ListFileTasks(ctx, fileID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if len(page.Entries) == 0 {
		return message("No tasks found for the specified file."), nil
	}
	return wrapList("tasks", page.Entries)
}

// TaskDetails returns a task.
func TaskDetails(ctx context.Context, client *box.Client, taskID string) (map[string]any, error) {
	const op = "TaskDetails"
	if err := required(op, map[string]any{"task_id": taskID}); err != nil {
		return nil, err
	}

	task, err := client.GetTask(ctx, taskID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("task", task)
}

// TaskRemove deletes a task.
func TaskRemove(ctx context.Context, client *box.Client, taskID string) (map[string]any, error) {
	const op = "TaskRemove"
	if err := required(op, map[string]any{"task_id": taskID}); err != nil {
		return nil, err
	}

	if err := client.DeleteTask(ctx, taskID); err != nil {
		return nil, apiFailure(client, op, err)
	}
	return message("Task removed successfully."), nil
}

// TaskUpdate changes a task's due date, message and completion rule.
func TaskUpdate(ctx context.Context, client *box.Client, taskID string, opts TaskOptions) (map[string]any, error) {
	const op = "TaskUpdate"
	if err := required(op, map[string]any{"task_id": taskID}); err != nil {
		return nil, err
	}
	dueAt, err := opts.dueAt(ctx, client)
	if err != nil {
		return nil, invalid(op, err)
	}

	body := map[string]any{"completion_rule": opts.completionRule()}
	if dueAt != nil {
		body["due_at"] = dueAt
	}
	if opts.Message != "" {
		body["message"] = opts.Message
	}

	task, err := client.UpdateTask(ctx, taskID, body)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("task", task)
}

// TaskAssignUser assigns a task to a user by id, or by login when userID
// is empty.
func TaskAssignUser(ctx context.Context, client *box.Client, taskID, userID, login string) (map[string]any, error) {
	const op = "TaskAssignUser"
	if err := required(op, map[string]any{"task_id": taskID}); err != nil {
		return nil, err
	}
	if userID == "" && login == "" {
		return nil, invalid(op, fmt.Errorf("user_id or login is required"))
	}

	assignment, err := client.AssignTask(ctx, taskID, userID, login)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("task_assignment", assignment)
}
