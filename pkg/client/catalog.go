package client

import (
	"context"
	"fmt"
	"net/http"
)

type LabelService struct {
	client *Client
}

func (s *LabelService) List(ctx context.Context, opts *CatalogListOptions) (*Page[Label], error) {
	return list[Label](ctx, s.client, "labels", opts)
}

func (s *LabelService) Get(ctx context.Context, id uint) (*Label, error) {
	var label Label
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("labels/%d", id), nil, nil, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

func (s *LabelService) Create(ctx context.Context, req *LabelRequest) (*Label, error) {
	var label Label
	if err := s.client.do(ctx, http.MethodPost, "labels", nil, req, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

func (s *LabelService) Update(ctx context.Context, id uint, req *UpdateLabelRequest) (*Label, error) {
	var label Label
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("labels/%d", id), nil, req, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

func (s *LabelService) Delete(ctx context.Context, id uint) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("labels/%d", id), nil, nil, nil)
}

type CategoryService struct {
	client *Client
}

func (s *CategoryService) List(ctx context.Context, opts *CatalogListOptions) (*Page[Category], error) {
	return list[Category](ctx, s.client, "categories", opts)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("categories/%d", id), nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, req *CategoryRequest) (*Category, error) {
	var category Category
	if err := s.client.do(ctx, http.MethodPost, "categories", nil, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, req *UpdateCategoryRequest) (*Category, error) {
	var category Category
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("categories/%d", id), nil, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes the category; tasks that used it become uncategorized.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("categories/%d", id), nil, nil, nil)
}
