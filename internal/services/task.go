package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/logger"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskService struct {
	db         *gorm.DB
	dispatcher Dispatcher
}

func NewTaskService(db *gorm.DB, dispatcher Dispatcher) *TaskService {
	return &TaskService{db: db, dispatcher: dispatcher}
}

type TaskListRequest struct {
	PageRequest
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Assignee uint   `form:"assignee"`
	Project  uint   `form:"project"`
	Category uint   `form:"category"`
	Search   string `form:"search"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

type AssigneeInput struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
}

type CreateTaskRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	DueDate     *time.Time       `json:"dueDate"`
	ProjectID   *uint            `json:"projectId"`
	CategoryID  *uint            `json:"categoryId"`
	Labels      []uint           `json:"labels"`
	Subtasks    []models.Subtask `json:"subtasks"`
	Assignees   []AssigneeInput  `json:"assignees"`
}

// UpdateTaskRequest is a partial patch. A zero ProjectID or CategoryID clears
// the reference.
type UpdateTaskRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Status      *string           `json:"status"`
	Priority    *string           `json:"priority"`
	DueDate     *time.Time        `json:"dueDate"`
	ProjectID   *uint             `json:"projectId"`
	CategoryID  *uint             `json:"categoryId"`
	Labels      *[]uint           `json:"labels"`
	Subtasks    *[]models.Subtask `json:"subtasks"`
	Assignees   *[]AssigneeInput  `json:"assignees"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func preloadAssignees(db *gorm.DB) *gorm.DB {
	return db.Preload("Assignees", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Assignees.User")
}

func preloadTask(db *gorm.DB) *gorm.DB {
	return preloadAssignees(db).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.User")
}

func (s *TaskService) load(id uint) (*models.Task, error) {
	var task models.Task
	if err := preloadTask(s.db).First(&task, id).Error; err != nil {
		return nil, notFound(err, "task")
	}
	return &task, nil
}

func (s *TaskService) filter(query *gorm.DB, req *TaskListRequest) (*gorm.DB, error) {
	if req.Status != "" {
		if !models.IsValidStatus(req.Status) {
			return nil, response.NewBadRequestf("unknown status filter %q", req.Status)
		}
		query = query.Where("tasks.status = ?", req.Status)
	}
	if req.Priority != "" {
		if !models.IsValidPriority(req.Priority) {
			return nil, response.NewBadRequestf("unknown priority filter %q", req.Priority)
		}
		query = query.Where("tasks.priority = ?", req.Priority)
	}
	if req.Project != 0 {
		query = query.Where("tasks.project_id = ?", req.Project)
	}
	if req.Category != 0 {
		query = query.Where("tasks.category_id = ?", req.Category)
	}
	if req.Assignee != 0 {
		query = query.Where("tasks.id IN (?)",
			s.db.Model(&models.TaskAssignee{}).Select("task_id").Where("user_id = ?", req.Assignee))
	}
	query = applySearch(query, req.Search, "tasks.title", "tasks.description")
	return applyDateRange(query, "tasks.due_date", req.DateFrom, req.DateTo)
}

func (s *TaskService) page(query *gorm.DB, req *TaskListRequest) (*Page[models.Task], error) {
	query, err := s.filter(query, req)
	if err != nil {
		return nil, err
	}
	return paginate[models.Task](query, req.PageRequest, "tasks.created_at DESC, tasks.id DESC", preloadAssignees)
}

// List returns the tasks visible to the actor.
func (s *TaskService) List(actor *Actor, req *TaskListRequest) (*Page[models.Task], error) {
	return s.page(visibleTasks(s.db, s.db.Model(&models.Task{}), actor), req)
}

// ByProject lists a project's tasks for its members and elevated callers.
func (s *TaskService) ByProject(actor *Actor, projectID uint, req *TaskListRequest) (*Page[models.Task], error) {
	var project models.Project
	if err := s.db.Select("id").First(&project, projectID).Error; err != nil {
		return nil, notFound(err, "project")
	}
	if err := requireProjectMember(s.db, actor, projectID); err != nil {
		return nil, err
	}
	req.Project = projectID
	return s.page(s.db.Model(&models.Task{}), req)
}

// MyTasks lists the tasks assigned to the actor.
func (s *TaskService) MyTasks(actor *Actor, req *TaskListRequest) (*Page[models.Task], error) {
	req.Assignee = actor.UserID
	return s.page(s.db.Model(&models.Task{}), req)
}

func (s *TaskService) GetByID(actor *Actor, id uint) (*models.Task, error) {
	task, err := s.load(id)
	if err != nil {
		return nil, err
	}
	ok, err := canViewTask(s.db, actor, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewForbidden("you do not have access to this task")
	}
	return task, nil
}

func (s *TaskService) Create(actor *Actor, req *CreateTaskRequest) (*models.Task, error) {
	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     utc(req.DueDate),
		ProjectID:   nonZero(req.ProjectID),
		CategoryID:  nonZero(req.CategoryID),
		LabelIDs:    req.Labels,
		Subtasks:    req.Subtasks,
		CreatedBy:   actor.UserID,
	}
	if task.Status == "" {
		task.Status = models.DefaultTaskStatus
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.LabelIDs == nil {
		task.LabelIDs = []uint{}
	}
	if task.Subtasks == nil {
		task.Subtasks = []models.Subtask{}
	}

	assignees, err := buildAssignees(req.Assignees)
	if err != nil {
		return nil, err
	}
	task.Assignees = assignees

	if err := models.Validate(&task); err != nil {
		return nil, err
	}
	if err := s.checkReferences(actor, &task); err != nil {
		return nil, err
	}
	if task.Status == models.StatusDone {
		now := time.Now().UTC()
		task.CompletedAt = &now
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, conflict(err, "a user can only be assigned once")
	}

	logger.Info().Uint("task_id", task.ID).Uint("user_id", actor.UserID).Msg("task created")
	s.notifyAssigned(actor, &task, task.AssigneeIDs())
	return s.load(task.ID)
}

// Update applies a partial patch, enforcing the status workflow.
func (s *TaskService) Update(actor *Actor, id uint, req *UpdateTaskRequest) (*models.Task, error) {
	task, err := s.loadEditable(actor, id)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, 10)
	if req.Title != nil {
		task.Title = *req.Title
		fields = append(fields, "title")
	}
	if req.Description != nil {
		task.Description = *req.Description
		fields = append(fields, "description")
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
		fields = append(fields, "priority")
	}
	if req.DueDate != nil {
		task.DueDate = utc(req.DueDate)
		fields = append(fields, "due_date")
	}
	if req.Status != nil && *req.Status != task.Status {
		next := *req.Status
		if models.IsValidStatus(next) && !models.CanTransition(task.Status, next) {
			return nil, response.NewBadRequestf("cannot move a task from %s to %s", task.Status, next)
		}
		switch {
		case next == models.StatusDone:
			now := time.Now().UTC()
			task.CompletedAt = &now
		case task.Status == models.StatusDone:
			task.CompletedAt = nil
		}
		task.Status = next
		fields = append(fields, "status", "completed_at")
	}
	projectChanged := false
	if req.ProjectID != nil {
		next := nonZero(req.ProjectID)
		projectChanged = !sameRef(task.ProjectID, next)
		task.ProjectID = next
		fields = append(fields, "project_id")
	}
	if req.CategoryID != nil {
		task.CategoryID = nonZero(req.CategoryID)
		fields = append(fields, "category_id")
	}
	if req.Labels != nil {
		task.LabelIDs = *req.Labels
		if task.LabelIDs == nil {
			task.LabelIDs = []uint{}
		}
		fields = append(fields, "label_ids")
	}
	if req.Subtasks != nil {
		task.Subtasks = *req.Subtasks
		if task.Subtasks == nil {
			task.Subtasks = []models.Subtask{}
		}
		fields = append(fields, "subtasks")
	}

	previous := task.AssigneeIDs()
	if req.Assignees != nil {
		assignees, err := buildAssignees(*req.Assignees)
		if err != nil {
			return nil, err
		}
		task.Assignees = assignees
	}

	if err := models.Validate(task); err != nil {
		return nil, err
	}
	if projectChanged && task.ProjectID != nil {
		if err := s.checkProject(actor, *task.ProjectID); err != nil {
			return nil, err
		}
	}
	if err := s.checkRefs(task, req.CategoryID != nil || projectChanged, req.Labels != nil || projectChanged, req.Assignees != nil); err != nil {
		return nil, err
	}
	if len(fields) == 0 && req.Assignees == nil {
		return task, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(task).Select(fields).Omit(clause.Associations).Updates(task).Error; err != nil {
				return err
			}
		}
		if req.Assignees == nil {
			return nil
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}
		if len(task.Assignees) == 0 {
			return nil
		}
		for i := range task.Assignees {
			task.Assignees[i].TaskID = task.ID
		}
		return tx.Omit("User").Create(&task.Assignees).Error
	})
	if err != nil {
		return nil, conflict(err, "a user can only be assigned once")
	}

	if req.Assignees != nil {
		s.notifyAssigned(actor, task, newlyAdded(previous, task.AssigneeIDs()))
	}
	return s.load(id)
}

// MarkComplete moves the task to done and stamps completedAt. Only those two
// columns change; calling it on a done task is a no-op.
func (s *TaskService) MarkComplete(actor *Actor, id uint) (*models.Task, error) {
	task, err := s.loadEditable(actor, id)
	if err != nil {
		return nil, err
	}
	if task.Status == models.StatusDone {
		return task, nil
	}

	now := time.Now().UTC()
	if err := s.db.Model(&models.Task{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       models.StatusDone,
		"completed_at": now,
	}).Error; err != nil {
		return nil, err
	}
	return s.load(id)
}

func (s *TaskService) Delete(actor *Actor, id uint) error {
	if _, err := s.loadEditable(actor, id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}

// AddComment appends a comment and notifies every assignee except the author.
func (s *TaskService) AddComment(actor *Actor, id uint, req *CommentRequest) (*models.Task, error) {
	task, err := s.GetByID(actor, id)
	if err != nil {
		return nil, err
	}

	comment := models.TaskComment{TaskID: id, UserID: actor.UserID, Content: req.Content}
	if err := models.Validate(&comment); err != nil {
		return nil, err
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	recipients := excluding(task.AssigneeIDs(), actor.UserID)
	dispatchQuietly(s.dispatcher, &NotificationJob{
		RecipientIDs: recipients,
		Type:         models.NotificationComment,
		Message:      fmt.Sprintf("%s commented on %q", actor.Username, task.Title),
		TaskID:       &task.ID,
		ProjectID:    task.ProjectID,
	})
	return s.load(id)
}

func (s *TaskService) loadEditable(actor *Actor, id uint) (*models.Task, error) {
	task, err := s.load(id)
	if err != nil {
		return nil, err
	}
	ok, err := canEditTask(s.db, actor, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewForbidden("only the task creator, a project admin, or a manager can change this task")
	}
	return task, nil
}

// checkProject requires the project to exist and the actor to belong to it.
func (s *TaskService) checkProject(actor *Actor, projectID uint) error {
	var project models.Project
	if err := s.db.Select("id").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewBadRequest("referenced project does not exist")
		}
		return err
	}
	return requireProjectMember(s.db, actor, projectID)
}

func (s *TaskService) checkReferences(actor *Actor, task *models.Task) error {
	if task.ProjectID != nil {
		if err := s.checkProject(actor, *task.ProjectID); err != nil {
			return err
		}
	}
	return s.checkRefs(task, true, true, true)
}

func (s *TaskService) checkRefs(task *models.Task, category, labels, assignees bool) error {
	if category && task.CategoryID != nil {
		ids := []uint{*task.CategoryID}
		if err := ensureExist(s.db, &models.Category{}, ids, "category"); err != nil {
			return err
		}
		if err := ensureCatalogScope(s.db, &models.Category{}, ids, task.ProjectID, "category"); err != nil {
			return err
		}
	}
	if labels {
		if err := ensureExist(s.db, &models.Label{}, task.LabelIDs, "label"); err != nil {
			return err
		}
		if err := ensureCatalogScope(s.db, &models.Label{}, task.LabelIDs, task.ProjectID, "label"); err != nil {
			return err
		}
	}
	if assignees {
		return ensureUsersExist(s.db, task.AssigneeIDs())
	}
	return nil
}

func (s *TaskService) notifyAssigned(actor *Actor, task *models.Task, userIDs []uint) {
	dispatchQuietly(s.dispatcher, &NotificationJob{
		RecipientIDs: excluding(userIDs, actor.UserID),
		Type:         models.NotificationAssignment,
		Message:      fmt.Sprintf("%s assigned you to %q", actor.Username, task.Title),
		TaskID:       &task.ID,
		ProjectID:    task.ProjectID,
	})
}

// buildAssignees keeps input order, applies the default role and rejects
// duplicate users.
func buildAssignees(in []AssigneeInput) ([]models.TaskAssignee, error) {
	out := make([]models.TaskAssignee, 0, len(in))
	seen := make(map[uint]bool, len(in))
	for i, a := range in {
		if a.UserID != 0 && seen[a.UserID] {
			return nil, response.NewBadRequest("a user can only be assigned once")
		}
		seen[a.UserID] = true
		role := a.Role
		if role == "" {
			role = models.DefaultAssigneeRole
		}
		out = append(out, models.TaskAssignee{UserID: a.UserID, Role: role, Position: i})
	}
	return out, nil
}

// ensureExist rejects references to ids missing from model's table.
func ensureExist(db *gorm.DB, model interface{}, ids []uint, what string) error {
	if len(ids) == 0 {
		return nil
	}
	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	var count int64
	if err := db.Model(model).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != len(unique) {
		return response.NewBadRequestf("referenced %s does not exist", what)
	}
	return nil
}

func nonZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}

func sameRef(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func excluding(ids []uint, skip uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != skip {
			out = append(out, id)
		}
	}
	return out
}

func newlyAdded(before, after []uint) []uint {
	had := make(map[uint]bool, len(before))
	for _, id := range before {
		had[id] = true
	}
	var added []uint
	for _, id := range after {
		if !had[id] {
			added = append(added, id)
		}
	}
	return added
}
