package client

import "time"

// Query options. Empty fields are left out of the query string; dates are
// sent as YYYY-MM-DD.

type ListOptions struct {
	Page  int `url:"page,omitempty"`
	Limit int `url:"limit,omitempty"`
}

type DateRange struct {
	DateFrom time.Time `url:"dateFrom,omitempty" layout:"2006-01-02"`
	DateTo   time.Time `url:"dateTo,omitempty" layout:"2006-01-02"`
}

type TaskListOptions struct {
	ListOptions
	DateRange
	Status   string `url:"status,omitempty"`
	Priority string `url:"priority,omitempty"`
	Assignee uint   `url:"assignee,omitempty"`
	Project  uint   `url:"project,omitempty"`
	Category uint   `url:"category,omitempty"`
	Search   string `url:"search,omitempty"`
}

type ProjectListOptions struct {
	ListOptions
	DateRange
	Status   string `url:"status,omitempty"`
	Priority string `url:"priority,omitempty"`
	Search   string `url:"search,omitempty"`
}

type StoryListOptions struct {
	ListOptions
	DateRange
	Status string `url:"status,omitempty"`
	Search string `url:"search,omitempty"`
}

type CatalogListOptions struct {
	ListOptions
	Project uint   `url:"project,omitempty"`
	Search  string `url:"search,omitempty"`
}

type UserListOptions struct {
	ListOptions
	Role   string `url:"role,omitempty"`
	Search string `url:"search,omitempty"`
}

type NotificationListOptions struct {
	ListOptions
	DateRange
	Type     string `url:"type,omitempty"`
	Read     *bool  `url:"read,omitempty"`
	Archived bool   `url:"archived,omitempty"`
}

type MessageListOptions struct {
	ListOptions
	DateRange
	Unread bool   `url:"unread,omitempty"`
	Search string `url:"search,omitempty"`
}

type AnalyticsOptions struct {
	DateRange
}
