package services

import (
	"math"
	"time"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// AnalyticsRequest selects an inclusive day range. The default is the last
// seven days including today.
type AnalyticsRequest struct {
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
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

type keyCount struct {
	Name  string
	Count int64
}

type idCount struct {
	ID    uint
	Count int64
}

func zeroed(keys []string) map[string]int64 {
	m := make(map[string]int64, len(keys))
	for _, k := range keys {
		m[k] = 0
	}
	return m
}

func (s *AnalyticsService) tasks(actor *Actor) *gorm.DB {
	return visibleTasks(s.db, s.db.Model(&models.Task{}), actor)
}

func (s *AnalyticsService) groupBy(query *gorm.DB, column string, keys []string) (map[string]int64, error) {
	var rows []keyCount
	if err := query.Select(column + " AS name, COUNT(*) AS count").Group(column).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := zeroed(keys)
	for _, r := range rows {
		out[r.Name] = r.Count
	}
	return out, nil
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// Overview summarises the tasks and projects visible to the actor.
func (s *AnalyticsService) Overview(actor *Actor) (*Overview, error) {
	var out Overview
	var err error

	if err = s.tasks(actor).Count(&out.TotalTasks).Error; err != nil {
		return nil, err
	}
	if out.ByStatus, err = s.groupBy(s.tasks(actor), "tasks.status", models.TaskStatuses); err != nil {
		return nil, err
	}
	if out.ByPriority, err = s.groupBy(s.tasks(actor), "tasks.priority", models.Priorities); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err = s.tasks(actor).
		Where("tasks.due_date < ? AND tasks.status <> ?", now, models.StatusDone).
		Count(&out.Overdue).Error; err != nil {
		return nil, err
	}
	if err = s.tasks(actor).
		Where("tasks.due_date >= ? AND tasks.due_date < ? AND tasks.status <> ?", now, now.AddDate(0, 0, 7), models.StatusDone).
		Count(&out.DueSoon).Error; err != nil {
		return nil, err
	}

	if err = s.projects(actor).Count(&out.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err = s.projects(actor).Where("status = ?", models.ProjectStatusActive).Count(&out.ActiveProjects).Error; err != nil {
		return nil, err
	}

	out.CompletionRate = percent(out.ByStatus[models.StatusDone], out.TotalTasks)
	return &out, nil
}

// Tasks reports creation and completion activity for a day range.
func (s *AnalyticsService) Tasks(actor *Actor, req *AnalyticsRequest) (*TaskAnalytics, error) {
	from, to, err := analyticsRange(req)
	if err != nil {
		return nil, err
	}
	end := to.AddDate(0, 0, 1)

	out := TaskAnalytics{From: from.Format(dayLayout), To: to.Format(dayLayout)}
	created := func() *gorm.DB {
		return s.tasks(actor).Where("tasks.created_at >= ? AND tasks.created_at < ?", from, end)
	}

	if out.ByStatus, err = s.groupBy(created(), "tasks.status", models.TaskStatuses); err != nil {
		return nil, err
	}
	if out.ByPriority, err = s.groupBy(created(), "tasks.priority", models.Priorities); err != nil {
		return nil, err
	}

	var createdAt []time.Time
	if err := created().Pluck("tasks.created_at", &createdAt).Error; err != nil {
		return nil, err
	}
	var completedAt []time.Time
	if err := s.tasks(actor).
		Where("tasks.completed_at >= ? AND tasks.completed_at < ?", from, end).
		Pluck("tasks.completed_at", &completedAt).Error; err != nil {
		return nil, err
	}

	days := int(end.Sub(from).Hours() / 24)
	out.Trend = make([]DayCount, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		d := from.AddDate(0, 0, i).Format(dayLayout)
		out.Trend[i].Date = d
		index[d] = i
	}
	for _, t := range createdAt {
		if i, ok := index[t.UTC().Format(dayLayout)]; ok {
			out.Trend[i].Created++
		}
	}
	for _, t := range completedAt {
		if i, ok := index[t.UTC().Format(dayLayout)]; ok {
			out.Trend[i].Completed++
		}
	}
	out.Created = int64(len(createdAt))
	out.Completed = int64(len(completedAt))
	return &out, nil
}

// Projects reports task progress per visible project.
func (s *AnalyticsService) Projects(actor *Actor) ([]ProjectProgress, error) {
	var projects []models.Project
	if err := s.projects(actor).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	out := make([]ProjectProgress, 0, len(projects))
	if len(projects) == 0 {
		return out, nil
	}

	ids := make([]uint, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	var statusRows []struct {
		ProjectID uint
		Status    string
		Count     int64
	}
	if err := s.db.Model(&models.Task{}).
		Select("project_id, status, COUNT(*) AS count").
		Where("project_id IN ?", ids).
		Group("project_id, status").
		Scan(&statusRows).Error; err != nil {
		return nil, err
	}

	var overdue, members []idCount
	if err := s.db.Model(&models.Task{}).
		Select("project_id AS id, COUNT(*) AS count").
		Where("project_id IN ? AND due_date < ? AND status <> ?", ids, time.Now().UTC(), models.StatusDone).
		Group("project_id").
		Scan(&overdue).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ProjectMember{}).
		Select("project_id AS id, COUNT(*) AS count").
		Where("project_id IN ?", ids).
		Group("project_id").
		Scan(&members).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*ProjectProgress, len(projects))
	for _, p := range projects {
		out = append(out, ProjectProgress{ProjectID: p.ID, Title: p.Title, Status: p.Status})
		byID[p.ID] = &out[len(out)-1]
	}
	for _, r := range statusRows {
		pp := byID[r.ProjectID]
		pp.TotalTasks += r.Count
		switch r.Status {
		case models.StatusDone:
			pp.Done += r.Count
		case models.StatusInProgress:
			pp.InProgress += r.Count
		}
	}
	for _, r := range overdue {
		byID[r.ID].Overdue = r.Count
	}
	for _, r := range members {
		byID[r.ID].Members = r.Count
	}
	for i := range out {
		out[i].Progress = percent(out[i].Done, out[i].TotalTasks)
	}
	return out, nil
}

// UserEngagement reports per-user activity for a day range. Non-elevated
// callers see themselves and the members of their projects.
func (s *AnalyticsService) UserEngagement(actor *Actor, req *AnalyticsRequest) ([]UserEngagement, error) {
	from, to, err := analyticsRange(req)
	if err != nil {
		return nil, err
	}
	end := to.AddDate(0, 0, 1)

	users := s.db.Model(&models.User{}).Where("is_active = ?", true)
	if !actor.Elevated() {
		peers := s.db.Model(&models.ProjectMember{}).Select("user_id").
			Where("project_id IN (?)", memberProjectIDs(s.db, actor.UserID))
		users = users.Where("(id = ? OR id IN (?))", actor.UserID, peers)
	}
	var list []models.User
	if err := users.Order("username ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]UserEngagement, 0, len(list))
	if len(list) == 0 {
		return out, nil
	}

	ids := make([]uint, len(list))
	for i, u := range list {
		ids[i] = u.ID
	}

	assignments := func() *gorm.DB {
		return s.db.Table("task_assignees").
			Joins("JOIN tasks ON tasks.id = task_assignees.task_id AND tasks.deleted_at IS NULL").
			Select("task_assignees.user_id AS id, COUNT(*) AS count").
			Where("task_assignees.user_id IN ?", ids).
			Group("task_assignees.user_id")
	}

	var assigned, completed, comments, messages []idCount
	if err := assignments().Scan(&assigned).Error; err != nil {
		return nil, err
	}
	if err := assignments().
		Where("tasks.status = ? AND tasks.completed_at >= ? AND tasks.completed_at < ?", models.StatusDone, from, end).
		Scan(&completed).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.TaskComment{}).
		Select("user_id AS id, COUNT(*) AS count").
		Where("user_id IN ? AND created_at >= ? AND created_at < ?", ids, from, end).
		Group("user_id").
		Scan(&comments).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Message{}).
		Select("sender_id AS id, COUNT(*) AS count").
		Where("sender_id IN ? AND created_at >= ? AND created_at < ?", ids, from, end).
		Group("sender_id").
		Scan(&messages).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*UserEngagement, len(list))
	for _, u := range list {
		out = append(out, UserEngagement{UserID: u.ID, Username: u.Username, Name: u.Name})
		byID[u.ID] = &out[len(out)-1]
	}
	for _, r := range assigned {
		byID[r.ID].Assigned = r.Count
	}
	for _, r := range completed {
		byID[r.ID].Completed = r.Count
	}
	for _, r := range comments {
		byID[r.ID].Comments = r.Count
	}
	for _, r := range messages {
		byID[r.ID].MessagesSent = r.Count
	}
	return out, nil
}

func (s *AnalyticsService) projects(actor *Actor) *gorm.DB {
	query := s.db.Model(&models.Project{})
	if !actor.Elevated() {
		query = query.Where("id IN (?)", memberProjectIDs(s.db, actor.UserID))
	}
	return query
}

func analyticsRange(req *AnalyticsRequest) (time.Time, time.Time, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	from, to := today.AddDate(0, 0, -6), today

	if start, err := parseDay("dateFrom", req.DateFrom); err != nil {
		return from, to, err
	} else if start != nil {
		from = *start
	}
	if end, err := parseDay("dateTo", req.DateTo); err != nil {
		return from, to, err
	} else if end != nil {
		to = *end
	}
	if to.Before(from) {
		return from, to, response.NewBadRequest("dateTo must not be before dateFrom")
	}
	if to.Sub(from) > 366*24*time.Hour {
		return from, to, response.NewBadRequest("date range cannot exceed one year")
	}
	return from, to, nil
}
