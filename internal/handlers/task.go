package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List returns paginated tasks visible to the caller
// GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	var req services.TaskListRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.taskService.List(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "tasks fetched successfully", page)
}

// ByProject returns a project's tasks
// GET /api/tasks/project/:id
func (h *TaskHandler) ByProject(c *gin.Context) {
	projectID, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	var req services.TaskListRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.taskService.ByProject(middleware.GetActor(c), projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "project tasks fetched successfully", page)
}

// MyTasks returns tasks assigned to the caller
// GET /api/tasks/my-tasks
func (h *TaskHandler) MyTasks(c *gin.Context) {
	var req services.TaskListRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.taskService.MyTasks(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "tasks fetched successfully", page)
}

// GetByID returns a task by ID
// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "task fetched successfully", task)
}

// Create creates a task
// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req services.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Create(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "task created successfully", task)
}

// Update applies a partial update
// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	var req services.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Update(middleware.GetActor(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "task updated successfully", task)
}

// Complete marks a task done
// PUT /api/tasks/:id/complete
func (h *TaskHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.taskService.MarkComplete(middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "task marked as complete", task)
}

// Delete deletes a task
// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	if err := h.taskService.Delete(middleware.GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "task deleted successfully", nil)
}

// AddComment adds a comment to a task
// POST /api/tasks/:id/comments
func (h *TaskHandler) AddComment(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	var req services.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.AddComment(middleware.GetActor(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "comment added successfully", task)
}
