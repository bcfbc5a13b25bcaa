package box

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Task actions and completion rules.
const (
	TaskActionReview   = "review"
	TaskActionComplete = "complete"

	CompletionRuleAllAssignees = "all_assignees"
	CompletionRuleAnyAssignee  = "any_assignee"
)

// Task is a task on a file.
type Task struct {
	Raw

	Type                     string                `json:"type"`
	ID                       string                `json:"id"`
	Item                     *ItemMini             `json:"item,omitempty"`
	DueAt                    *time.Time            `json:"due_at,omitempty"`
	Action                   string                `json:"action,omitempty"`
	Message                  string                `json:"message,omitempty"`
	TaskAssignmentCollection *Page[TaskAssignment] `json:"task_assignment_collection,omitempty"`
	IsCompleted              bool                  `json:"is_completed"`
	CreatedBy                *UserMini             `json:"created_by,omitempty"`
	CreatedAt                *time.Time            `json:"created_at,omitempty"`
	CompletionRule           string                `json:"completion_rule,omitempty"`
}

// TaskAssignment assigns a task to a user.
type TaskAssignment struct {
	Raw

	Type            string     `json:"type"`
	ID              string     `json:"id"`
	Item            *ItemMini  `json:"item,omitempty"`
	AssignedTo      *UserMini  `json:"assigned_to,omitempty"`
	AssignedBy      *UserMini  `json:"assigned_by,omitempty"`
	Message         string     `json:"message,omitempty"`
	ResolutionState string     `json:"resolution_state,omitempty"`
	AssignedAt      *time.Time `json:"assigned_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	RemindedAt      *time.Time `json:"reminded_at,omitempty"`
}

// CreateTaskRequest is the body of a task creation.
type CreateTaskRequest struct {
	Item           ItemMini   `json:"item"`
	Action         string     `json:"action,omitempty"`
	Message        string     `json:"message,omitempty"`
	DueAt          *time.Time `json:"due_at,omitempty"`
	CompletionRule string     `json:"completion_rule,omitempty"`
}

// CreateTask creates a task on a file.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.Post(ctx, "/tasks", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListFileTasks returns every task on a file.
func (c *Client) ListFileTasks(ctx context.Context, fileID string) (*Page[Task], error) {
	var page Page[Task]
	path := fmt.Sprintf("/files/%s/tasks", url.PathEscape(fileID))
	if err := c.Get(ctx, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTask returns a task.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	if err := c.Get(ctx, "/tasks/"+url.PathEscape(taskID), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask changes task attributes.
func (c *Client) UpdateTask(ctx context.Context, taskID string, body map[string]any) (*Task, error) {
	var task Task
	if err := c.Put(ctx, "/tasks/"+url.PathEscape(taskID), nil, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.Delete(ctx, "/tasks/"+url.PathEscape(taskID), nil)
}

// AssignTask assigns a task to a user by id or, when userID is empty, by
// login.
func (c *Client) AssignTask(ctx context.Context, taskID, userID, login string) (*TaskAssignment, error) {
	assignTo := map[string]string{}
	if userID != "" {
		assignTo["id"] = userID
	} else {
		assignTo["login"] = login
	}
	body := map[string]any{
		"task":      map[string]string{"type": "task", "id": taskID},
		"assign_to": assignTo,
	}

	var assignment TaskAssignment
	if err := c.Post(ctx, "/task_assignments", nil, body, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}
