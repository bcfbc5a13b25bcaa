package tools

import (
	"context"

	"github.com/hashicorp-forge/boxkit/pkg/box"
	"github.com/hashicorp-forge/boxkit/pkg/toolkit"
)

type taskCreateArgs struct {
	FileID               string `json:"file_id" jsonschema_description:"ID of the Box file"`
	DueAt                string `json:"due_at,omitempty" jsonschema_description:"Date or date-time; naive values use the user's timezone"`
	Message              string `json:"message,omitempty"`
	RequiresAllAssignees bool   `json:"requires_all_assignees_to_complete,omitempty"`
}

func (a taskCreateArgs) options() toolkit.TaskOptions {
	return toolkit.TaskOptions{
		DueAt:                a.DueAt,
		Message:              a.Message,
		RequiresAllAssignees: a.RequiresAllAssignees,
	}
}

type taskArgs struct {
	TaskID string `json:"task_id"`
}

type taskUpdateArgs struct {
	TaskID               string `json:"task_id"`
	DueAt                string `json:"due_at,omitempty" jsonschema_description:"Date or date-time; naive values use the user's timezone"`
	Message              string `json:"message,omitempty"`
	RequiresAllAssignees bool   `json:"requires_all_assignees_to_complete,omitempty"`
}

type taskAssignArgs struct {
	TaskID string `json:"task_id"`
	UserID string `json:"user_id,omitempty"`
	Login  string `json:"login,omitempty" jsonschema_description:"Used when user_id is empty"`
}

func taskTools() []*Tool {
	return []*Tool{
		define("TaskReviewCreate", "Ask the assignees to approve or reject a file.",
			func(ctx context.Context, client *box.Client, a taskCreateArgs) (map[string]any, error) {
				return toolkit.TaskReviewCreate(ctx, client, a.FileID, a.options())
			}),
		define("TaskCompleteCreate", "Ask the assignees to mark a file as done.",
			func(ctx context.Context, client *box.Client, a taskCreateArgs) (map[string]any, error) {
				return toolkit.TaskCompleteCreate(ctx, client, a.FileID, a.options())
			}),
		fileOp("TasksFileList", "List the tasks of a file.", toolkit.TasksFileList),
		define("TaskDetails", "Get a task.",
			func(ctx context.Context, client *box.Client, a taskArgs) (map[string]any, error) {
				return toolkit.TaskDetails(ctx, client, a.TaskID)
			}),
		define("TaskRemove", "Delete a task.",
			func(ctx context.Context, client *box.Client, a taskArgs) (map[string]any, error) {
				return toolkit.TaskRemove(ctx, client, a.TaskID)
			}),
		define("TaskUpdate", "Change the due date, message or completion rule of a task.",
			func(ctx context.Context, client *box.Client, a taskUpdateArgs) (map[string]any, error) {
				return toolkit.TaskUpdate(ctx, client, a.TaskID, toolkit.TaskOptions{
					DueAt:                a.DueAt,
					Message:              a.Message,
					RequiresAllAssignees: a.RequiresAllAssignees,
				})
			}),
		define("TaskAssignUser", "Assign a task to a user.",
			func(ctx context.Context, client *box.Client, a taskAssignArgs) (map[string]any, error) {
				return toolkit.TaskAssignUser(ctx, client, a.TaskID, a.UserID, a.Login)
			}),
	}
}
