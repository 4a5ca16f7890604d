package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
)

func TestProjectCreate_CreatorBecomesAdmin(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "ursula", models.RoleMember)
	svc := NewProjectService(db)

	project, err := svc.Create(u, &CreateProjectRequest{Title: "Apollo"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if project.Priority != models.PriorityMedium || project.Status != models.ProjectStatusActive {
		t.Errorf("defaults not applied: priority=%q status=%q", project.Priority, project.Status)
	}
	if len(project.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(project.Members))
	}
	if project.Members[0].UserID != u.UserID || project.Members[0].Role != models.ProjectRoleAdmin {
		t.Errorf("creator membership = %+v", project.Members[0])
	}
}

func TestProjectCreate_TagsRoundTripInOrder(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "ursula", models.RoleMember)
	svc := NewProjectService(db)

	created, err := svc.Create(u, &CreateProjectRequest{Title: "Tags", Tags: []string{"x", "y"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	fetched, err := svc.GetByID(u, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !reflect.DeepEqual(fetched.Tags, []string{"x", "y"}) {
		t.Errorf("Tags = %v, expected [x y]", fetched.Tags)
	}
}

func TestProjectCreate_MembersKeepOrder(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "ursula", models.RoleMember)
	b := createUser(t, db, "bob", models.RoleMember)
	c := createUser(t, db, "carol", models.RoleMember)
	svc := NewProjectService(db)

	project, err := svc.Create(u, &CreateProjectRequest{
		Title:   "Ordered",
		Members: []MemberInput{{UserID: c.UserID}, {UserID: b.UserID, Role: "admin"}, {UserID: c.UserID}},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var got []uint
	for _, m := range project.Members {
		got = append(got, m.UserID)
	}
	want := []uint{u.UserID, c.UserID, b.UserID}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("member order = %v, expected %v", got, want)
	}
	if project.MemberRole(b.UserID) != models.ProjectRoleAdmin {
		t.Errorf("bob role = %q", project.MemberRole(b.UserID))
	}
}

func TestProjectCreate_Validation(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "ursula", models.RoleMember)
	svc := NewProjectService(db)

	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	tests := []struct {
		name string
		req  *CreateProjectRequest
	}{
		{"missing title", &CreateProjectRequest{}},
		{"bad priority", &CreateProjectRequest{Title: "p", Priority: "extreme"}},
		{"bad status", &CreateProjectRequest{Title: "p", Status: "paused"}},
		{"end before start", &CreateProjectRequest{Title: "p", StartDate: &start, EndDate: &end}},
		{"unknown member", &CreateProjectRequest{Title: "p", Members: []MemberInput{{UserID: 999}}}},
		{"bad member role", &CreateProjectRequest{Title: "p", Members: []MemberInput{{UserID: u.UserID + 1, Role: "owner"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(u, tt.req)
			expectKind(t, err, response.KindValidation)
		})
	}
}

// Register U, U creates P, V (no membership) tries to update P.
func TestProjectUpdate_NonMemberForbidden(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "ursula", models.RoleMember)
	v := createUser(t, db, "victor", models.RoleMember)
	svc := NewProjectService(db)

	project, err := svc.Create(u, &CreateProjectRequest{Title: "P"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if project.MemberRole(u.UserID) == "" {
		t.Fatal("creator should be a member")
	}

	_, err = svc.Update(v, project.ID, &UpdateProjectRequest{Title: strPtr("hijacked")})
	expectKind(t, err, response.KindAuthorization)

	_, err = svc.GetByID(v, project.ID)
	expectKind(t, err, response.KindAuthorization)
}

func TestProjectUpdate_PlainMemberForbiddenManagerAllowed(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "ursula", models.RoleMember)
	m := createUser(t, db, "mia", models.RoleMember)
	boss := createUser(t, db, "boss", models.RoleManager)
	svc := NewProjectService(db)

	project, _ := svc.Create(u, &CreateProjectRequest{Title: "P", Members: []MemberInput{{UserID: m.UserID}}})

	_, err := svc.Update(m, project.ID, &UpdateProjectRequest{Title: strPtr("nope")})
	expectKind(t, err, response.KindAuthorization)

	updated, err := svc.Update(boss, project.ID, &UpdateProjectRequest{
		Title:    strPtr("Renamed"),
		Priority: strPtr(models.PriorityUrgent),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Renamed" || updated.Priority != models.PriorityUrgent {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Status != models.ProjectStatusActive {
		t.Errorf("unpatched status changed to %q", updated.Status)
	}
}

func TestProjectList_ScopedToMembership(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "ursula", models.RoleMember)
	v := createUser(t, db, "victor", models.RoleMember)
	admin := createUser(t, db, "root", models.RoleAdmin)
	svc := NewProjectService(db)

	svc.Create(u, &CreateProjectRequest{Title: "Mine"})
	svc.Create(v, &CreateProjectRequest{Title: "Theirs"})

	page, err := svc.List(u, &ProjectListRequest{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Pagination.Total != 1 || page.Items[0].Title != "Mine" {
		t.Errorf("member sees %d projects", page.Pagination.Total)
	}

	page, _ = svc.List(admin, &ProjectListRequest{})
	if page.Pagination.Total != 2 {
		t.Errorf("admin should see every project, got %d", page.Pagination.Total)
	}

	page, _ = svc.List(admin, &ProjectListRequest{Search: "THEIR"})
	if page.Pagination.Total != 1 {
		t.Errorf("search should be case-insensitive, got %d", page.Pagination.Total)
	}
}

func TestProjectList_NoMatchesReturnsEmptyPage(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "ursula", models.RoleMember)

	page, err := NewProjectService(db).List(u, &ProjectListRequest{Status: models.ProjectStatusArchived})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Errorf("Items = %#v, expected empty slice", page.Items)
	}
	if page.Pagination.Page != 1 || page.Pagination.Pages != 1 || page.Pagination.Total != 0 {
		t.Errorf("Pagination = %+v", page.Pagination)
	}
}

func TestProjectMembers_AddAndRemove(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "ursula", models.RoleMember)
	v := createUser(t, db, "victor", models.RoleMember)
	svc := NewProjectService(db)

	project, _ := svc.Create(u, &CreateProjectRequest{Title: "P"})

	project, err := svc.AddMember(u, project.ID, &MemberInput{UserID: v.UserID})
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if project.MemberRole(v.UserID) != models.ProjectRoleMember {
		t.Errorf("victor role = %q", project.MemberRole(v.UserID))
	}
	if project.Members[1].UserID != v.UserID {
		t.Error("new member should be appended")
	}

	_, err = svc.AddMember(u, project.ID, &MemberInput{UserID: v.UserID})
	expectKind(t, err, response.KindConflict)

	_, err = svc.AddMember(v, project.ID, &MemberInput{UserID: 999})
	expectKind(t, err, response.KindAuthorization)

	_, err = svc.RemoveMember(u, project.ID, u.UserID)
	expectKind(t, err, response.KindValidation)

	project, err = svc.RemoveMember(u, project.ID, v.UserID)
	if err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}
	if project.MemberRole(v.UserID) != "" {
		t.Error("victor should no longer be a member")
	}

	_, err = svc.RemoveMember(u, project.ID, v.UserID)
	expectKind(t, err, response.KindNotFound)
}

func TestProjectDelete(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "ursula", models.RoleMember)
	svc := NewProjectService(db)
	tasks := NewTaskService(db, nil)

	project, _ := svc.Create(u, &CreateProjectRequest{Title: "P"})
	task, err := tasks.Create(u, &CreateTaskRequest{Title: "t", ProjectID: &project.ID})
	if err != nil {
		t.Fatalf("task Create() error = %v", err)
	}

	if err := svc.Delete(u, project.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err = svc.GetByID(u, project.ID)
	expectKind(t, err, response.KindNotFound)
	_, err = tasks.GetByID(u, task.ID)
	expectKind(t, err, response.KindNotFound)

	err = svc.Delete(u, project.ID)
	expectKind(t, err, response.KindNotFound)
}

func TestProjectList_UnknownPriorityFilterRejected(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "ursula", models.RoleMember)

	_, err := NewProjectService(db).List(u, &ProjectListRequest{Priority: "critical"})
	expectKind(t, err, response.KindValidation)
}

func TestProjectMembers_UnknownRoleRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	owner := createUser(t, db, "owner", models.RoleMember)
	dana := createUser(t, db, "dana", models.RoleMember)

	_, err := svc.Create(owner, &CreateProjectRequest{
		Title:   "Ops",
		Members: []MemberInput{{UserID: dana.UserID, Role: "owner"}},
	})
	expectKind(t, err, response.KindValidation)

	project, err := svc.Create(owner, &CreateProjectRequest{Title: "Ops"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err = svc.AddMember(owner, project.ID, &MemberInput{UserID: dana.UserID, Role: "viewer"})
	expectKind(t, err, response.KindValidation)
}
