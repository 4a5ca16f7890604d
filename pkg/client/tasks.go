package client

import (
	"context"
	"fmt"
	"net/http"
)

type TaskService struct {
	client *Client
}

func (s *TaskService) List(ctx context.Context, opts *TaskListOptions) (*Page[Task], error) {
	return list[Task](ctx, s.client, "tasks", opts)
}

// Mine lists the tasks assigned to the signed-in user.
func (s *TaskService) Mine(ctx context.Context, opts *TaskListOptions) (*Page[Task], error) {
	return list[Task](ctx, s.client, "tasks/my-tasks", opts)
}

func (s *TaskService) ByProject(ctx context.Context, projectID uint, opts *TaskListOptions) (*Page[Task], error) {
	return list[Task](ctx, s.client, fmt.Sprintf("tasks/project/%d", projectID), opts)
}

func (s *TaskService) Get(ctx context.Context, id uint) (*Task, error) {
	return s.send(ctx, http.MethodGet, fmt.Sprintf("tasks/%d", id), nil)
}

func (s *TaskService) Create(ctx context.Context, req *CreateTaskRequest) (*Task, error) {
	return s.send(ctx, http.MethodPost, "tasks", req)
}

func (s *TaskService) Update(ctx context.Context, id uint, req *UpdateTaskRequest) (*Task, error) {
	return s.send(ctx, http.MethodPut, fmt.Sprintf("tasks/%d", id), req)
}

// Complete marks the task done. Other fields are left untouched.
func (s *TaskService) Complete(ctx context.Context, id uint) (*Task, error) {
	return s.send(ctx, http.MethodPut, fmt.Sprintf("tasks/%d/complete", id), nil)
}

func (s *TaskService) Delete(ctx context.Context, id uint) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("tasks/%d", id), nil, nil, nil)
}

// AddComment returns the task with its updated comment list.
func (s *TaskService) AddComment(ctx context.Context, id uint, content string) (*Task, error) {
	body := map[string]string{"content": content}
	return s.send(ctx, http.MethodPost, fmt.Sprintf("tasks/%d/comments", id), body)
}

func (s *TaskService) send(ctx context.Context, method, path string, body interface{}) (*Task, error) {
	var task Task
	if err := s.client.do(ctx, method, path, nil, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
