package client

import "time"

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// Page is one page of a list endpoint. Items is never nil.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type User struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Avatar    string     `json:"avatar"`
	Bio       string     `json:"bio"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type AuthResult struct {
	Token    string    `json:"token"`
	ExpireAt time.Time `json:"expireAt"`
	User     *User     `json:"user"`
}

type Member struct {
	UserID   uint      `json:"userId"`
	User     *User     `json:"user,omitempty"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type Project struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags"`
	Members     []Member   `json:"members"`
	CreatedBy   uint       `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Subtask struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Assignee struct {
	UserID     uint      `json:"userId"`
	User       *User     `json:"user,omitempty"`
	Role       string    `json:"role"`
	AssignedAt time.Time `json:"assignedAt,omitempty"`
}

type Comment struct {
	ID        uint      `json:"id"`
	TaskID    uint      `json:"taskId"`
	UserID    uint      `json:"userId"`
	User      *User     `json:"user,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Task struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	ProjectID   *uint      `json:"projectId"`
	Project     *Project   `json:"project,omitempty"`
	CategoryID  *uint      `json:"categoryId"`
	Labels      []uint     `json:"labels"`
	Subtasks    []Subtask  `json:"subtasks"`
	Assignees   []Assignee `json:"assignees"`
	Comments    []Comment  `json:"comments"`
	CreatedBy   uint       `json:"createdBy"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Story struct {
	ID          uint      `json:"id"`
	StoryID     int64     `json:"storyId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedBy   uint      `json:"createdBy"`
	Creator     *User     `json:"creator,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Label struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	ProjectID   *uint     `json:"projectId"`
	CreatedBy   uint      `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	ProjectID   *uint     `json:"projectId"`
	CreatedBy   uint      `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Notification struct {
	ID          uint      `json:"id"`
	RecipientID uint      `json:"recipientId"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	TaskID      *uint     `json:"taskId"`
	ProjectID   *uint     `json:"projectId"`
	Read        bool      `json:"read"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Message struct {
	ID          uint      `json:"id"`
	SenderID    uint      `json:"senderId"`
	Sender      *User     `json:"sender,omitempty"`
	RecipientID *uint     `json:"recipientId"`
	ProjectID   *uint     `json:"projectId"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Overview struct {
	TotalTasks     int64            `json:"totalTasks"`
	ByStatus       map[string]int64 `json:"byStatus"`
	ByPriority     map[string]int64 `json:"byPriority"`
	Overdue        int64            `json:"overdue"`
	DueSoon        int64            `json:"dueSoon"`
	TotalProjects  int64            `json:"totalProjects"`
	ActiveProjects int64            `json:"activeProjects"`
	CompletionRate float64          `json:"completionRate"`
}

type DayCount struct {
	Date      string `json:"date"`
	Created   int64  `json:"created"`
	Completed int64  `json:"completed"`
}

type TaskAnalytics struct {
	From       string           `json:"from"`
	To         string           `json:"to"`
	Created    int64            `json:"created"`
	Completed  int64            `json:"completed"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByPriority map[string]int64 `json:"byPriority"`
	Trend      []DayCount       `json:"trend"`
}

type ProjectProgress struct {
	ProjectID  uint    `json:"projectId"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	Members    int64   `json:"members"`
	TotalTasks int64   `json:"totalTasks"`
	Done       int64   `json:"done"`
	InProgress int64   `json:"inProgress"`
	Overdue    int64   `json:"overdue"`
	Progress   float64 `json:"progress"`
}

type UserEngagement struct {
	UserID       uint   `json:"userId"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Assigned     int64  `json:"assigned"`
	Completed    int64  `json:"completed"`
	Comments     int64  `json:"comments"`
	MessagesSent int64  `json:"messagesSent"`
}
