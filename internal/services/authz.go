package services

import (
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

// Actor is the authenticated caller an operation runs on behalf of.
type Actor struct {
	UserID   uint
	Username string
	Role     string
}

// Elevated reports whether the actor holds global admin or manager rights.
func (a *Actor) Elevated() bool {
	return a != nil && models.IsElevatedRole(a.Role)
}

// IsAdmin reports whether the actor is a global admin.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == models.RoleAdmin
}

var (
	errNotProjectMember = response.NewForbidden("you are not a member of this project")
	errNotProjectAdmin  = response.NewForbidden("only project admins can manage this project")
	errElevatedOnly     = response.NewForbidden("admin or manager role required")
)

// projectRole returns the caller's role in the project, or "" if not a member.
func projectRole(db *gorm.DB, projectID, userID uint) (string, error) {
	var members []models.ProjectMember
	if err := db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Limit(1).Find(&members).Error; err != nil {
		return "", err
	}
	if len(members) == 0 {
		return "", nil
	}
	return members[0].Role, nil
}

// memberProjectIDs selects the ids of every project the user belongs to.
func memberProjectIDs(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", userID)
}

// requireProjectMember allows project members and elevated callers.
func requireProjectMember(db *gorm.DB, actor *Actor, projectID uint) error {
	if actor.Elevated() {
		return nil
	}
	role, err := projectRole(db, projectID, actor.UserID)
	if err != nil {
		return err
	}
	if role == "" {
		return errNotProjectMember
	}
	return nil
}

// requireProjectAdmin allows project admin-role members and elevated callers.
func requireProjectAdmin(db *gorm.DB, actor *Actor, projectID uint) error {
	if actor.Elevated() {
		return nil
	}
	role, err := projectRole(db, projectID, actor.UserID)
	if err != nil {
		return err
	}
	if role != models.ProjectRoleAdmin {
		if role == "" {
			return errNotProjectMember
		}
		return errNotProjectAdmin
	}
	return nil
}

func requireElevated(actor *Actor) error {
	if !actor.Elevated() {
		return errElevatedOnly
	}
	return nil
}

// canViewTask: elevated, creator, assignee, or member of the task's project.
// Assignees must be loaded.
func canViewTask(db *gorm.DB, actor *Actor, task *models.Task) (bool, error) {
	if actor.Elevated() || task.CreatedBy == actor.UserID || task.IsAssignee(actor.UserID) {
		return true, nil
	}
	if task.ProjectID == nil {
		return false, nil
	}
	role, err := projectRole(db, *task.ProjectID, actor.UserID)
	return role != "", err
}

// canEditTask: creator, project admin-role member, or elevated.
func canEditTask(db *gorm.DB, actor *Actor, task *models.Task) (bool, error) {
	if actor.Elevated() || task.CreatedBy == actor.UserID {
		return true, nil
	}
	if task.ProjectID == nil {
		return false, nil
	}
	role, err := projectRole(db, *task.ProjectID, actor.UserID)
	return role == models.ProjectRoleAdmin, err
}

// visibleTasks restricts a task query to what the actor may see.
func visibleTasks(db, query *gorm.DB, actor *Actor) *gorm.DB {
	if actor.Elevated() {
		return query
	}
	assigned := db.Model(&models.TaskAssignee{}).Select("task_id").Where("user_id = ?", actor.UserID)
	return query.Where("(tasks.created_by = ? OR tasks.id IN (?) OR tasks.project_id IN (?))",
		actor.UserID, assigned, memberProjectIDs(db, actor.UserID))
}
