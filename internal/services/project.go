package services

import (
	"time"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/logger"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectListRequest struct {
	PageRequest
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Search   string `form:"search"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

type MemberInput struct {
	UserID uint   `json:"userId" binding:"required"`
	Role   string `json:"role"`
}

type CreateProjectRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
	Priority    string        `json:"priority"`
	Status      string        `json:"status"`
	Tags        []string      `json:"tags"`
	Members     []MemberInput `json:"members"`
}

type UpdateProjectRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	Tags        *[]string  `json:"tags"`
}

func preloadMembers(db *gorm.DB) *gorm.DB {
	return db.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Members.User")
}

// List returns the projects visible to the actor: all for elevated callers,
// otherwise those the actor is a member of.
func (s *ProjectService) List(actor *Actor, req *ProjectListRequest) (*Page[models.Project], error) {
	query := s.db.Model(&models.Project{})
	if !actor.Elevated() {
		query = query.Where("id IN (?)", memberProjectIDs(s.db, actor.UserID))
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Priority != "" {
		if !models.IsValidPriority(req.Priority) {
			return nil, response.NewBadRequestf("unknown priority filter %q", req.Priority)
		}
		query = query.Where("priority = ?", req.Priority)
	}
	query = applySearch(query, req.Search, "title", "description")

	query, err := applyDateRange(query, "created_at", req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}

	return paginate[models.Project](query, req.PageRequest, "created_at DESC", preloadMembers)
}

func (s *ProjectService) load(id uint) (*models.Project, error) {
	var project models.Project
	if err := preloadMembers(s.db).First(&project, id).Error; err != nil {
		return nil, notFound(err, "project")
	}
	return &project, nil
}

// GetByID returns a project the actor may view.
func (s *ProjectService) GetByID(actor *Actor, id uint) (*models.Project, error) {
	project, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !actor.Elevated() && project.MemberRole(actor.UserID) == "" {
		return nil, errNotProjectMember
	}
	return project, nil
}

// Create stores a new project. The creator always becomes its first admin member.
func (s *ProjectService) Create(actor *Actor, req *CreateProjectRequest) (*models.Project, error) {
	project := models.Project{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   utc(req.StartDate),
		EndDate:     utc(req.EndDate),
		Priority:    req.Priority,
		Status:      req.Status,
		Tags:        req.Tags,
		CreatedBy:   actor.UserID,
	}
	if project.Priority == "" {
		project.Priority = models.PriorityMedium
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusActive
	}
	if project.Tags == nil {
		project.Tags = []string{}
	}
	if err := validateProject(&project); err != nil {
		return nil, err
	}

	members := []models.ProjectMember{{UserID: actor.UserID, Role: models.ProjectRoleAdmin}}
	seen := map[uint]bool{actor.UserID: true}
	for _, m := range req.Members {
		if seen[m.UserID] {
			continue
		}
		seen[m.UserID] = true
		role := m.Role
		if role == "" {
			role = models.ProjectRoleMember
		}
		if !models.IsValidProjectRole(role) {
			return nil, response.NewBadRequestf("unknown member role %q", role)
		}
		members = append(members, models.ProjectMember{UserID: m.UserID, Role: role})
	}
	for i := range members {
		members[i].Position = i
		if err := models.Validate(&members[i]); err != nil {
			return nil, err
		}
	}
	if err := ensureUsersExist(s.db, memberUserIDs(members[1:])); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].ProjectID = project.ID
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		return nil, conflict(err, "duplicate project member")
	}

	logger.Info().Uint("project_id", project.ID).Uint("user_id", actor.UserID).Msg("project created")
	return s.load(project.ID)
}

// Update applies a partial patch. Project admins and elevated callers only.
func (s *ProjectService) Update(actor *Actor, id uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := requireProjectAdmin(s.db, actor, id); err != nil {
		return nil, err
	}

	fields := make([]string, 0, 7)
	if req.Title != nil {
		project.Title = *req.Title
		fields = append(fields, "title")
	}
	if req.Description != nil {
		project.Description = *req.Description
		fields = append(fields, "description")
	}
	if req.StartDate != nil {
		project.StartDate = utc(req.StartDate)
		fields = append(fields, "start_date")
	}
	if req.EndDate != nil {
		project.EndDate = utc(req.EndDate)
		fields = append(fields, "end_date")
	}
	if req.Priority != nil {
		project.Priority = *req.Priority
		fields = append(fields, "priority")
	}
	if req.Status != nil {
		project.Status = *req.Status
		fields = append(fields, "status")
	}
	if req.Tags != nil {
		project.Tags = *req.Tags
		if project.Tags == nil {
			project.Tags = []string{}
		}
		fields = append(fields, "tags")
	}
	if len(fields) == 0 {
		return project, nil
	}

	if err := validateProject(project); err != nil {
		return nil, err
	}
	if err := s.db.Model(project).Select(fields).Omit("Members").Updates(project).Error; err != nil {
		return nil, err
	}
	return s.load(id)
}

// Delete removes the project together with its memberships and tasks.
func (s *ProjectService) Delete(actor *Actor, id uint) error {
	if _, err := s.load(id); err != nil {
		return err
	}
	if err := requireProjectAdmin(s.db, actor, id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember appends a user to the project's member list.
func (s *ProjectService) AddMember(actor *Actor, projectID uint, req *MemberInput) (*models.Project, error) {
	project, err := s.load(projectID)
	if err != nil {
		return nil, err
	}
	if err := requireProjectAdmin(s.db, actor, projectID); err != nil {
		return nil, err
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      req.Role,
		Position:  len(project.Members),
	}
	if member.Role == "" {
		member.Role = models.ProjectRoleMember
	}
	if !models.IsValidProjectRole(member.Role) {
		return nil, response.NewBadRequestf("unknown member role %q", member.Role)
	}
	if err := models.Validate(&member); err != nil {
		return nil, err
	}
	if project.MemberRole(req.UserID) != "" {
		return nil, response.NewConflict("user is already a member of this project")
	}
	if err := ensureUsersExist(s.db, []uint{req.UserID}); err != nil {
		return nil, err
	}

	if len(project.Members) > 0 {
		member.Position = project.Members[len(project.Members)-1].Position + 1
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, conflict(err, "user is already a member of this project")
	}
	return s.load(projectID)
}

// RemoveMember drops a user from the project. The last admin cannot be removed.
func (s *ProjectService) RemoveMember(actor *Actor, projectID, userID uint) (*models.Project, error) {
	project, err := s.load(projectID)
	if err != nil {
		return nil, err
	}
	if err := requireProjectAdmin(s.db, actor, projectID); err != nil {
		return nil, err
	}

	role := project.MemberRole(userID)
	if role == "" {
		return nil, response.NewNotFound("member not found")
	}
	if role == models.ProjectRoleAdmin {
		admins := 0
		for _, m := range project.Members {
			if m.Role == models.ProjectRoleAdmin {
				admins++
			}
		}
		if admins == 1 {
			return nil, response.NewBadRequest("a project must keep at least one admin")
		}
	}

	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error; err != nil {
		return nil, err
	}
	return s.load(projectID)
}

func validateProject(p *models.Project) error {
	if err := models.Validate(p); err != nil {
		return err
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return response.NewBadRequest("endDate must not be before startDate")
	}
	return nil
}

func memberUserIDs(members []models.ProjectMember) []uint {
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids
}

// ensureUsersExist rejects references to unknown or removed users.
func ensureUsersExist(db *gorm.DB, ids []uint) error {
	return ensureExist(db, &models.User{}, ids, "user")
}
