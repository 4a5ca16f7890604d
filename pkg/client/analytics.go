package client

import (
	"context"
	"net/http"
)

type AnalyticsService struct {
	client *Client
}

func (s *AnalyticsService) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	if err := s.client.do(ctx, http.MethodGet, "analytics", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tasks defaults to the last seven days when opts has no range.
func (s *AnalyticsService) Tasks(ctx context.Context, opts *AnalyticsOptions) (*TaskAnalytics, error) {
	var out TaskAnalytics
	if err := s.client.do(ctx, http.MethodGet, "analytics/tasks", opts, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AnalyticsService) Projects(ctx context.Context) ([]ProjectProgress, error) {
	out := []ProjectProgress{}
	if err := s.client.do(ctx, http.MethodGet, "analytics/projects", nil, nil, &out); err != nil {
		return []ProjectProgress{}, err
	}
	return out, nil
}

func (s *AnalyticsService) UserEngagement(ctx context.Context, opts *AnalyticsOptions) ([]UserEngagement, error) {
	out := []UserEngagement{}
	if err := s.client.do(ctx, http.MethodGet, "analytics/user-engagement", opts, nil, &out); err != nil {
		return []UserEngagement{}, err
	}
	return out, nil
}
