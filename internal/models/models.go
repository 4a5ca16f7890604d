package models

// Global user roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// Roles a user may hold inside a single project.
const (
	ProjectRoleAdmin  = "admin"
	ProjectRoleMember = "member"
)

// Priority constants, shared by projects and tasks.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Project status constants
const (
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusArchived  = "archived"
)

// Notification types
const (
	NotificationComment    = "comment"
	NotificationAssignment = "assignment"
	NotificationReminder   = "reminder"
	NotificationSystem     = "system"
)

// DefaultAssigneeRole is used when an assignee is added without a role label.
const DefaultAssigneeRole = "responsible"

var (
	UserRoles         = []string{RoleAdmin, RoleManager, RoleMember}
	ProjectRoles      = []string{ProjectRoleAdmin, ProjectRoleMember}
	Priorities        = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	ProjectStatuses   = []string{ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusArchived}
	NotificationTypes = []string{NotificationComment, NotificationAssignment, NotificationReminder, NotificationSystem}
)

// IsElevatedRole reports whether role carries global admin or manager rights.
func IsElevatedRole(role string) bool {
	return role == RoleAdmin || role == RoleManager
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// IsValidPriority reports whether p is a known priority.
func IsValidPriority(p string) bool { return contains(Priorities, p) }

// IsValidUserRole reports whether r is a known global role.
func IsValidUserRole(r string) bool { return contains(UserRoles, r) }

// IsValidProjectRole reports whether r is a known project member role.
func IsValidProjectRole(r string) bool { return contains(ProjectRoles, r) }
