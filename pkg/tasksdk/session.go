package tasksdk

import (
	"context"
	"fmt"
	"net/http"
)

// Session performs task operations as the user its token belongs to.
type Session struct {
	client *SDKClient
	token  string
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// CreateTask creates a task. Status defaults to "todo" server-side.
func (s *Session) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/tasks", s.token, req)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decodeJSON(resp, &task, http.StatusCreated); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks returns one page of the caller's tasks.
func (s *Session) ListTasks(ctx context.Context, opts ListOptions) (*TaskPage, error) {
	path := "/tasks"
	if q := opts.Values().Encode(); q != "" {
		path += "?" + q
	}

	resp, err := s.client.doRequest(ctx, http.MethodGet, path, nil, s.authHeader())
	if err != nil {
		return nil, err
	}

	var page TaskPage
	if err := decodeJSON(resp, &page, http.StatusOK); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Session) GetTask(ctx context.Context, id int64) (*Task, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, taskPath(id), nil, s.authHeader())
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decodeJSON(resp, &task, http.StatusOK); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update; nil fields are left unchanged.
func (s *Session) UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest) (*Task, error) {
	resp, err := s.client.doJSON(ctx, http.MethodPut, taskPath(id), s.token, req)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decodeJSON(resp, &task, http.StatusOK); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Session) DeleteTask(ctx context.Context, id int64) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, taskPath(id), nil, s.authHeader())
	if err != nil {
		return err
	}

	var msg Message
	return decodeJSON(resp, &msg, http.StatusOK)
}

func (s *Session) authHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer " + s.token}
}

func taskPath(id int64) string {
	return fmt.Sprintf("/tasks/%d", id)
}
