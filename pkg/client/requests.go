package client

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest identifies the user by Username or Email.
type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type MemberInput struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role,omitempty"`
}

type CreateProjectRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	StartDate   *time.Time    `json:"startDate,omitempty"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
	Priority    string        `json:"priority,omitempty"`
	Status      string        `json:"status,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Members     []MemberInput `json:"members,omitempty"`
}

type UpdateProjectRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
}

type AssigneeInput struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role,omitempty"`
}

type CreateTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status,omitempty"`
	Priority    string          `json:"priority,omitempty"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	ProjectID   *uint           `json:"projectId,omitempty"`
	CategoryID  *uint           `json:"categoryId,omitempty"`
	Labels      []uint          `json:"labels,omitempty"`
	Subtasks    []Subtask       `json:"subtasks,omitempty"`
	Assignees   []AssigneeInput `json:"assignees,omitempty"`
}

// UpdateTaskRequest only sends the fields that are set.
type UpdateTaskRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Priority    *string          `json:"priority,omitempty"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
	ProjectID   *uint            `json:"projectId,omitempty"`
	CategoryID  *uint            `json:"categoryId,omitempty"`
	Labels      *[]uint          `json:"labels,omitempty"`
	Subtasks    *[]Subtask       `json:"subtasks,omitempty"`
	Assignees   *[]AssigneeInput `json:"assignees,omitempty"`
}

type StoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

type UpdateStoryRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type LabelRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
	ProjectID   *uint  `json:"projectId,omitempty"`
}

type UpdateLabelRequest struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	ProjectID   *uint  `json:"projectId,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SendMessageRequest sets exactly one of RecipientID or ProjectID.
type SendMessageRequest struct {
	RecipientID *uint  `json:"recipientId,omitempty"`
	ProjectID   *uint  `json:"projectId,omitempty"`
	Content     string `json:"content"`
}
