package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
)

type StoryHandler struct {
	storyService *services.StoryService
}

func NewStoryHandler(storyService *services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// List returns paginated stories
// GET /api/story
func (h *StoryHandler) List(c *gin.Context) {
	var req services.StoryListRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.storyService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "stories fetched successfully", page)
}

// Count returns the number of matching stories
// GET /api/story/count
func (h *StoryHandler) Count(c *gin.Context) {
	var req services.StoryListRequest
	if !bindQuery(c, &req) {
		return
	}

	count, err := h.storyService.Count(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "story count fetched successfully", gin.H{"count": count})
}

// GetByID returns a story by ID
// GET /api/story/:id
func (h *StoryHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "story")
	if !ok {
		return
	}

	story, err := h.storyService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "story fetched successfully", story)
}

// Create allocates the next storyId
// POST /api/story
func (h *StoryHandler) Create(c *gin.Context) {
	var req services.CreateStoryRequest
	if !bindJSON(c, &req) {
		return
	}

	story, err := h.storyService.Create(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "story created successfully", story)
}

// Update applies a partial update to a story
// PUT /api/story/:id
func (h *StoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "story")
	if !ok {
		return
	}

	var req services.UpdateStoryRequest
	if !bindJSON(c, &req) {
		return
	}

	story, err := h.storyService.Update(middleware.GetActor(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "story updated successfully", story)
}

// Delete deletes a story
// DELETE /api/story/:id
func (h *StoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "story")
	if !ok {
		return
	}

	if err := h.storyService.Delete(middleware.GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "story deleted successfully", nil)
}
