package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type taskFixture struct {
	db       *gorm.DB
	svc      *TaskService
	projects *ProjectService
	notes    *NotificationService
	disp     *recordingDispatcher
	owner    *Actor
	alice    *Actor
	bob      *Actor
	outsider *Actor
	project  *models.Project
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	db := newTestDB(t)
	notes := NewNotificationService(db)
	disp := &recordingDispatcher{deliver: notes.Deliver}

	f := &taskFixture{
		db:       db,
		svc:      NewTaskService(db, disp),
		projects: NewProjectService(db),
		notes:    notes,
		disp:     disp,
		owner:    createUser(t, db, "owner", models.RoleMember),
		alice:    createUser(t, db, "alice", models.RoleMember),
		bob:      createUser(t, db, "bob", models.RoleMember),
		outsider: createUser(t, db, "outsider", models.RoleMember),
	}

	project, err := f.projects.Create(f.owner, &CreateProjectRequest{
		Title:   "Board",
		Members: []MemberInput{{UserID: f.alice.UserID}, {UserID: f.bob.UserID}},
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	f.project = project
	return f
}

func (f *taskFixture) create(t *testing.T, req *CreateTaskRequest) *models.Task {
	t.Helper()
	task, err := f.svc.Create(f.owner, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return task
}

func TestTaskCreate_DefaultsStatusAndPriority(t *testing.T) {
	f := newTaskFixture(t)

	task := f.create(t, &CreateTaskRequest{Title: "Write docs"})
	if task.Status != models.StatusTodo {
		t.Errorf("Status = %q, expected todo", task.Status)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, expected medium", task.Priority)
	}
	if task.ProjectID != nil {
		t.Error("unassigned task should have no project")
	}
	if task.CompletedAt != nil {
		t.Error("open task should have no completedAt")
	}
}

func TestTaskCreate_StatusAlwaysOneOfFiveStates(t *testing.T) {
	f := newTaskFixture(t)

	for _, status := range models.TaskStatuses {
		task := f.create(t, &CreateTaskRequest{Title: "t-" + status, Status: status})
		if task.Status != status {
			t.Errorf("Status = %q, expected %q", task.Status, status)
		}
		if (status == models.StatusDone) != (task.CompletedAt != nil) {
			t.Errorf("status %s: completedAt = %v", status, task.CompletedAt)
		}
	}

	_, err := f.svc.Create(f.owner, &CreateTaskRequest{Title: "bad", Status: "blocked"})
	expectKind(t, err, response.KindValidation)
}

func TestTaskCreate_InvalidReferences(t *testing.T) {
	f := newTaskFixture(t)

	tests := []struct {
		name string
		req  *CreateTaskRequest
	}{
		{"missing title", &CreateTaskRequest{}},
		{"unknown project", &CreateTaskRequest{Title: "t", ProjectID: uintPtr(999)}},
		{"unknown assignee", &CreateTaskRequest{Title: "t", Assignees: []AssigneeInput{{UserID: 999}}}},
		{"duplicate assignee", &CreateTaskRequest{Title: "t", Assignees: []AssigneeInput{{UserID: f.alice.UserID}, {UserID: f.alice.UserID}}}},
		{"unknown label", &CreateTaskRequest{Title: "t", Labels: []uint{42}}},
		{"unknown category", &CreateTaskRequest{Title: "t", CategoryID: uintPtr(42)}},
		{"bad priority", &CreateTaskRequest{Title: "t", Priority: "whenever"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(f.owner, tt.req)
			expectKind(t, err, response.KindValidation)
		})
	}
}

func TestTaskCreate_InForeignProjectForbidden(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.svc.Create(f.outsider, &CreateTaskRequest{Title: "sneaky", ProjectID: &f.project.ID})
	expectKind(t, err, response.KindAuthorization)
}

func TestTaskCreate_NotifiesAssigneesExceptCreator(t *testing.T) {
	f := newTaskFixture(t)

	f.create(t, &CreateTaskRequest{
		Title:     "Ship it",
		ProjectID: &f.project.ID,
		Assignees: []AssigneeInput{{UserID: f.owner.UserID}, {UserID: f.alice.UserID, Role: "reviewer"}},
	})

	jobs := f.disp.byType(models.NotificationAssignment)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 assignment job, got %d", len(jobs))
	}
	if !reflect.DeepEqual(jobs[0].RecipientIDs, []uint{f.alice.UserID}) {
		t.Errorf("recipients = %v, expected only alice", jobs[0].RecipientIDs)
	}
}

func TestTaskMarkComplete_PreservesPriorityAndAssignees(t *testing.T) {
	f := newTaskFixture(t)

	task := f.create(t, &CreateTaskRequest{
		Title:     "Release",
		Priority:  models.PriorityHigh,
		ProjectID: &f.project.ID,
		Assignees: []AssigneeInput{{UserID: f.alice.UserID}, {UserID: f.bob.UserID}},
	})

	done, err := f.svc.MarkComplete(f.owner, task.ID)
	if err != nil {
		t.Fatalf("MarkComplete() error = %v", err)
	}
	if done.Status != models.StatusDone {
		t.Errorf("Status = %q, expected done", done.Status)
	}
	if done.CompletedAt == nil {
		t.Error("completedAt should be stamped")
	}
	if done.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q, expected high", done.Priority)
	}
	want := []uint{f.alice.UserID, f.bob.UserID}
	if !reflect.DeepEqual(done.AssigneeIDs(), want) {
		t.Errorf("Assignees = %v, expected %v", done.AssigneeIDs(), want)
	}
	if done.Assignees[0].Role != models.DefaultAssigneeRole {
		t.Errorf("assignee role = %q", done.Assignees[0].Role)
	}

	again, err := f.svc.MarkComplete(f.owner, task.ID)
	if err != nil {
		t.Fatalf("second MarkComplete() error = %v", err)
	}
	if !again.CompletedAt.Equal(*done.CompletedAt) {
		t.Error("marking a done task complete again should not restamp completedAt")
	}
}

func TestTaskMarkComplete_RequiresEditRights(t *testing.T) {
	f := newTaskFixture(t)
	task := f.create(t, &CreateTaskRequest{
		Title:     "Guarded",
		ProjectID: &f.project.ID,
		Assignees: []AssigneeInput{{UserID: f.alice.UserID}},
	})

	_, err := f.svc.MarkComplete(f.alice, task.ID)
	expectKind(t, err, response.KindAuthorization)

	_, err = f.svc.MarkComplete(f.owner, 12345)
	expectKind(t, err, response.KindNotFound)
}

func TestTaskUpdate_StatusWorkflow(t *testing.T) {
	f := newTaskFixture(t)
	task := f.create(t, &CreateTaskRequest{Title: "Flow", Status: models.StatusBacklog})

	task, err := f.svc.Update(f.owner, task.ID, &UpdateTaskRequest{Status: strPtr(models.StatusInReview)})
	if err != nil {
		t.Fatalf("backlog -> in_review: %v", err)
	}

	task, err = f.svc.Update(f.owner, task.ID, &UpdateTaskRequest{Status: strPtr(models.StatusDone)})
	if err != nil {
		t.Fatalf("in_review -> done: %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatal("entering done should stamp completedAt")
	}

	_, err = f.svc.Update(f.owner, task.ID, &UpdateTaskRequest{Status: strPtr(models.StatusTodo)})
	expectKind(t, err, response.KindValidation)

	task, err = f.svc.Update(f.owner, task.ID, &UpdateTaskRequest{Status: strPtr(models.StatusInProgress)})
	if err != nil {
		t.Fatalf("done -> in_progress: %v", err)
	}
	if task.CompletedAt != nil {
		t.Error("reopening should clear completedAt")
	}

	_, err = f.svc.Update(f.owner, task.ID, &UpdateTaskRequest{Status: strPtr("archived")})
	expectKind(t, err, response.KindValidation)
}

func TestTaskUpdate_PartialPatchKeepsOtherFields(t *testing.T) {
	f := newTaskFixture(t)
	due := time.Date(2030, 1, 2, 15, 0, 0, 0, time.UTC)
	task := f.create(t, &CreateTaskRequest{
		Title:     "Patch me",
		Priority:  models.PriorityUrgent,
		DueDate:   &due,
		Subtasks:  []models.Subtask{{Title: "a"}, {Title: "b", Completed: true}},
		Assignees: []AssigneeInput{{UserID: f.alice.UserID}},
	})

	updated, err := f.svc.Update(f.owner, task.ID, &UpdateTaskRequest{Title: strPtr("Patched")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Patched" {
		t.Errorf("Title = %q", updated.Title)
	}
	if updated.Priority != models.PriorityUrgent {
		t.Errorf("Priority = %q, expected urgent", updated.Priority)
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Errorf("DueDate = %v", updated.DueDate)
	}
	if len(updated.Subtasks) != 2 || !updated.Subtasks[1].Completed {
		t.Errorf("Subtasks = %+v", updated.Subtasks)
	}
	if !reflect.DeepEqual(updated.AssigneeIDs(), []uint{f.alice.UserID}) {
		t.Errorf("Assignees = %v", updated.AssigneeIDs())
	}
}

func TestTaskUpdate_ReplaceAssigneesNotifiesNewOnly(t *testing.T) {
	f := newTaskFixture(t)
	task := f.create(t, &CreateTaskRequest{
		Title:     "Handoff",
		ProjectID: &f.project.ID,
		Assignees: []AssigneeInput{{UserID: f.alice.UserID}},
	})
	before := len(f.disp.byType(models.NotificationAssignment))

	updated, err := f.svc.Update(f.owner, task.ID, &UpdateTaskRequest{
		Assignees: &[]AssigneeInput{{UserID: f.bob.UserID}, {UserID: f.alice.UserID}},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !reflect.DeepEqual(updated.AssigneeIDs(), []uint{f.bob.UserID, f.alice.UserID}) {
		t.Errorf("Assignees = %v, expected bob then alice", updated.AssigneeIDs())
	}

	jobs := f.disp.byType(models.NotificationAssignment)[before:]
	if len(jobs) != 1 || !reflect.DeepEqual(jobs[0].RecipientIDs, []uint{f.bob.UserID}) {
		t.Errorf("expected a single job for bob, got %+v", jobs)
	}
}

func TestTaskUpdate_AssigneeCannotEdit(t *testing.T) {
	f := newTaskFixture(t)
	task := f.create(t, &CreateTaskRequest{
		Title:     "Mine",
		ProjectID: &f.project.ID,
		Assignees: []AssigneeInput{{UserID: f.alice.UserID}},
	})

	_, err := f.svc.Update(f.alice, task.ID, &UpdateTaskRequest{Title: strPtr("Hers")})
	expectKind(t, err, response.KindAuthorization)

	err = f.svc.Delete(f.bob, task.ID)
	expectKind(t, err, response.KindAuthorization)
}

func TestTaskByProject_ForeignProjectForbidden(t *testing.T) {
	f := newTaskFixture(t)
	f.create(t, &CreateTaskRequest{Title: "internal", ProjectID: &f.project.ID})

	_, err := f.svc.ByProject(f.outsider, f.project.ID, &TaskListRequest{})
	expectKind(t, err, response.KindAuthorization)

	page, err := f.svc.ByProject(f.bob, f.project.ID, &TaskListRequest{})
	if err != nil {
		t.Fatalf("member ByProject() error = %v", err)
	}
	if page.Pagination.Total != 1 {
		t.Errorf("Total = %d, expected 1", page.Pagination.Total)
	}

	manager := createUser(t, f.db, "manny", models.RoleManager)
	if _, err := f.svc.ByProject(manager, f.project.ID, &TaskListRequest{}); err != nil {
		t.Errorf("manager should see any project: %v", err)
	}

	_, err = f.svc.ByProject(f.owner, 9999, &TaskListRequest{})
	expectKind(t, err, response.KindNotFound)
}

func TestTaskGetByID_Visibility(t *testing.T) {
	f := newTaskFixture(t)
	projectTask := f.create(t, &CreateTaskRequest{Title: "team", ProjectID: &f.project.ID})
	private := f.create(t, &CreateTaskRequest{Title: "solo", Assignees: []AssigneeInput{{UserID: f.alice.UserID}}})

	if _, err := f.svc.GetByID(f.bob, projectTask.ID); err != nil {
		t.Errorf("project member should view project task: %v", err)
	}
	if _, err := f.svc.GetByID(f.alice, private.ID); err != nil {
		t.Errorf("assignee should view task: %v", err)
	}
	_, err := f.svc.GetByID(f.bob, private.ID)
	expectKind(t, err, response.KindAuthorization)
	_, err = f.svc.GetByID(f.outsider, projectTask.ID)
	expectKind(t, err, response.KindAuthorization)
}

func TestTaskList_FiltersAndPagination(t *testing.T) {
	f := newTaskFixture(t)
	jan := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 15, 12, 0, 0, 0, time.UTC)

	f.create(t, &CreateTaskRequest{Title: "Alpha bug", Priority: models.PriorityHigh, DueDate: &jan})
	f.create(t, &CreateTaskRequest{Title: "Beta feature", DueDate: &feb, Assignees: []AssigneeInput{{UserID: f.alice.UserID}}})
	f.create(t, &CreateTaskRequest{Title: "Gamma bug", Status: models.StatusInProgress})

	tests := []struct {
		name string
		req  TaskListRequest
		want int64
	}{
		{"all", TaskListRequest{}, 3},
		{"status", TaskListRequest{Status: models.StatusInProgress}, 1},
		{"priority", TaskListRequest{Priority: models.PriorityHigh}, 1},
		{"search", TaskListRequest{Search: "bug"}, 2},
		{"assignee", TaskListRequest{Assignee: f.alice.UserID}, 1},
		{"date range", TaskListRequest{DateFrom: "2025-01-01", DateTo: "2025-01-31"}, 1},
		{"inclusive end day", TaskListRequest{DateFrom: "2025-02-15", DateTo: "2025-02-15"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			page, err := f.svc.List(f.owner, &req)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if page.Pagination.Total != tt.want {
				t.Errorf("Total = %d, expected %d", page.Pagination.Total, tt.want)
			}
		})
	}

	page, err := f.svc.List(f.owner, &TaskListRequest{PageRequest: PageRequest{Page: 2, Limit: 2}})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Items) != 1 || page.Pagination.Pages != 2 || page.Pagination.Page != 2 {
		t.Errorf("page 2 = %d items, pagination %+v", len(page.Items), page.Pagination)
	}

	_, err = f.svc.List(f.owner, &TaskListRequest{DateFrom: "15/01/2025"})
	expectKind(t, err, response.KindValidation)

	outsiderPage, _ := f.svc.List(f.outsider, &TaskListRequest{})
	if outsiderPage.Pagination.Total != 0 {
		t.Errorf("outsider should see nothing, got %d", outsiderPage.Pagination.Total)
	}
}

func TestTaskMyTasks(t *testing.T) {
	f := newTaskFixture(t)
	f.create(t, &CreateTaskRequest{Title: "for alice", Assignees: []AssigneeInput{{UserID: f.alice.UserID}}})
	f.create(t, &CreateTaskRequest{Title: "for bob", Assignees: []AssigneeInput{{UserID: f.bob.UserID}}})

	page, err := f.svc.MyTasks(f.alice, &TaskListRequest{})
	if err != nil {
		t.Fatalf("MyTasks() error = %v", err)
	}
	if page.Pagination.Total != 1 || page.Items[0].Title != "for alice" {
		t.Errorf("unexpected my tasks: %+v", page.Pagination)
	}
}

func TestTaskAddComment_NotifiesAssigneesExceptAuthor(t *testing.T) {
	f := newTaskFixture(t)
	task := f.create(t, &CreateTaskRequest{
		Title:     "Discuss",
		ProjectID: &f.project.ID,
		Assignees: []AssigneeInput{{UserID: f.alice.UserID}, {UserID: f.bob.UserID}},
	})

	updated, err := f.svc.AddComment(f.alice, task.ID, &CommentRequest{Content: "on it"})
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if len(updated.Comments) != 1 || updated.Comments[0].Content != "on it" || updated.Comments[0].UserID != f.alice.UserID {
		t.Errorf("Comments = %+v", updated.Comments)
	}

	jobs := f.disp.byType(models.NotificationComment)
	if len(jobs) != 1 || !reflect.DeepEqual(jobs[0].RecipientIDs, []uint{f.bob.UserID}) {
		t.Fatalf("expected one comment job for bob, got %+v", jobs)
	}

	count, _ := f.notes.UnreadCount(f.bob)
	if count == 0 {
		t.Error("bob should have an unread notification")
	}
	aliceNotes, _ := f.notes.List(f.alice, &NotificationListRequest{Type: models.NotificationComment})
	if aliceNotes.Pagination.Total != 0 {
		t.Error("the author should not be notified of their own comment")
	}

	_, err = f.svc.AddComment(f.outsider, task.ID, &CommentRequest{Content: "hi"})
	expectKind(t, err, response.KindAuthorization)

	_, err = f.svc.AddComment(f.alice, task.ID, &CommentRequest{Content: ""})
	expectKind(t, err, response.KindValidation)
}

func TestTaskDelete(t *testing.T) {
	f := newTaskFixture(t)
	task := f.create(t, &CreateTaskRequest{Title: "gone", Assignees: []AssigneeInput{{UserID: f.alice.UserID}}})

	if err := f.svc.Delete(f.owner, task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	_, err := f.svc.GetByID(f.owner, task.ID)
	expectKind(t, err, response.KindNotFound)

	err = f.svc.Delete(f.owner, task.ID)
	expectKind(t, err, response.KindNotFound)
}

func TestTaskLabels_MustMatchTaskProject(t *testing.T) {
	f := newTaskFixture(t)
	labels := NewLabelService(f.db)
	admin := createUser(t, f.db, "root", models.RoleAdmin)

	secret, err := f.projects.Create(f.outsider, &CreateProjectRequest{Title: "Secret"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	mustLabel := func(actor *Actor, req *LabelRequest) *models.Label {
		t.Helper()
		label, err := labels.Create(actor, req)
		if err != nil {
			t.Fatalf("create label %q: %v", req.Name, err)
		}
		return label
	}
	foreign := mustLabel(f.outsider, &LabelRequest{Name: "classified", ProjectID: &secret.ID})
	local := mustLabel(f.owner, &LabelRequest{Name: "board", ProjectID: &f.project.ID})
	global := mustLabel(admin, &LabelRequest{Name: "bug"})

	_, err = f.svc.Create(f.owner, &CreateTaskRequest{Title: "t", ProjectID: &f.project.ID, Labels: []uint{foreign.ID}})
	expectKind(t, err, response.KindValidation)

	_, err = f.svc.Create(f.owner, &CreateTaskRequest{Title: "t", Labels: []uint{local.ID}})
	expectKind(t, err, response.KindValidation)

	task, err := f.svc.Create(f.owner, &CreateTaskRequest{Title: "t", ProjectID: &f.project.ID, Labels: []uint{local.ID, global.ID}})
	if err != nil {
		t.Fatalf("Create() with in-scope labels error = %v", err)
	}
	if len(task.LabelIDs) != 2 {
		t.Errorf("LabelIDs = %v", task.LabelIDs)
	}

	_, err = f.svc.Update(f.owner, task.ID, &UpdateTaskRequest{Labels: &[]uint{foreign.ID}})
	expectKind(t, err, response.KindValidation)
}

func TestTaskList_UnknownEnumFiltersRejected(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.svc.List(f.owner, &TaskListRequest{Status: "completed"})
	expectKind(t, err, response.KindValidation)

	_, err = f.svc.List(f.owner, &TaskListRequest{Priority: "critical"})
	expectKind(t, err, response.KindValidation)

	if _, err := f.svc.List(f.owner, &TaskListRequest{Status: models.StatusDone, Priority: models.PriorityHigh}); err != nil {
		t.Errorf("List() with known filters error = %v", err)
	}
}
