package client

import (
	"context"
	"fmt"
	"net/http"
)

type StoryService struct {
	client *Client
}

func (s *StoryService) List(ctx context.Context, opts *StoryListOptions) (*Page[Story], error) {
	return list[Story](ctx, s.client, "story", opts)
}

// Count returns how many stories match opts. Paging fields are ignored.
func (s *StoryService) Count(ctx context.Context, opts *StoryListOptions) (int64, error) {
	var out count
	if err := s.client.do(ctx, http.MethodGet, "story/count", opts, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (s *StoryService) Get(ctx context.Context, id uint) (*Story, error) {
	return s.send(ctx, http.MethodGet, fmt.Sprintf("story/%d", id), nil)
}

// Create lets the server allocate the next storyId.
func (s *StoryService) Create(ctx context.Context, req *StoryRequest) (*Story, error) {
	return s.send(ctx, http.MethodPost, "story", req)
}

func (s *StoryService) Update(ctx context.Context, id uint, req *UpdateStoryRequest) (*Story, error) {
	return s.send(ctx, http.MethodPut, fmt.Sprintf("story/%d", id), req)
}

func (s *StoryService) Delete(ctx context.Context, id uint) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("story/%d", id), nil, nil, nil)
}

func (s *StoryService) send(ctx context.Context, method, path string, body interface{}) (*Story, error) {
	var story Story
	if err := s.client.do(ctx, method, path, nil, body, &story); err != nil {
		return nil, err
	}
	return &story, nil
}
