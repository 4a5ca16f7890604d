package client

import (
	"context"
	"fmt"
	"net/http"
)

type ProjectService struct {
	client *Client
}

func (s *ProjectService) List(ctx context.Context, opts *ProjectListOptions) (*Page[Project], error) {
	return list[Project](ctx, s.client, "projects", opts)
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*Project, error) {
	return s.send(ctx, http.MethodGet, fmt.Sprintf("projects/%d", id), nil)
}

func (s *ProjectService) Create(ctx context.Context, req *CreateProjectRequest) (*Project, error) {
	return s.send(ctx, http.MethodPost, "projects", req)
}

func (s *ProjectService) Update(ctx context.Context, id uint, req *UpdateProjectRequest) (*Project, error) {
	return s.send(ctx, http.MethodPut, fmt.Sprintf("projects/%d", id), req)
}

func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("projects/%d", id), nil, nil, nil)
}

// AddMember adds a user to the project and returns the updated project.
// Adding an existing member is a 409.
func (s *ProjectService) AddMember(ctx context.Context, id uint, member MemberInput) (*Project, error) {
	return s.send(ctx, http.MethodPost, fmt.Sprintf("projects/%d/members", id), member)
}

func (s *ProjectService) RemoveMember(ctx context.Context, id, userID uint) (*Project, error) {
	return s.send(ctx, http.MethodDelete, fmt.Sprintf("projects/%d/members/%d", id, userID), nil)
}

func (s *ProjectService) send(ctx context.Context, method, path string, body interface{}) (*Project, error) {
	var project Project
	if err := s.client.do(ctx, method, path, nil, body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}
