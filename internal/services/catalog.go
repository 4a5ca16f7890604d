package services

import (
	"errors"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

// Labels and categories share one scoping model: a nil project means global.

type CatalogListRequest struct {
	PageRequest
	Project uint   `form:"project"`
	Search  string `form:"search"`
}

// visibleCatalog limits a label/category query to global entries plus the
// actor's projects.
func visibleCatalog(db, query *gorm.DB, actor *Actor, req *CatalogListRequest) *gorm.DB {
	if req.Project != 0 {
		query = query.Where("(project_id = ? OR project_id IS NULL)", req.Project)
	}
	if !actor.Elevated() {
		query = query.Where("(project_id IS NULL OR project_id IN (?))", memberProjectIDs(db, actor.UserID))
	}
	return applySearch(query, req.Search, "name", "description")
}

// ensureCatalogScope rejects entries scoped to a project other than projectID.
// A nil projectID accepts global entries only.
func ensureCatalogScope(db *gorm.DB, model interface{}, ids []uint, projectID *uint, what string) error {
	if len(ids) == 0 {
		return nil
	}
	query := db.Model(model).Where("id IN ? AND project_id IS NOT NULL", ids)
	if projectID != nil {
		query = query.Where("project_id <> ?", *projectID)
	}
	var foreign int64
	if err := query.Count(&foreign).Error; err != nil {
		return err
	}
	if foreign > 0 {
		return response.NewBadRequestf("%s belongs to another project", what)
	}
	return nil
}

// requireCatalogCreate: global entries need an elevated actor, project entries
// need a member of an existing project.
func requireCatalogCreate(db *gorm.DB, actor *Actor, projectID *uint) error {
	if projectID == nil {
		return requireElevated(actor)
	}
	var project models.Project
	if err := db.Select("id").First(&project, *projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewBadRequest("referenced project does not exist")
		}
		return err
	}
	return requireProjectMember(db, actor, *projectID)
}

// requireCatalogEdit: creator, project admin, or elevated. Global entries are
// elevated only.
func requireCatalogEdit(db *gorm.DB, actor *Actor, createdBy uint, projectID *uint) error {
	if actor.Elevated() {
		return nil
	}
	if projectID == nil {
		return errElevatedOnly
	}
	if createdBy == actor.UserID {
		return requireProjectMember(db, actor, *projectID)
	}
	return requireProjectAdmin(db, actor, *projectID)
}

// canSeeCatalog hides other projects' entries from non-members.
func canSeeCatalog(db *gorm.DB, actor *Actor, projectID *uint) error {
	if projectID == nil {
		return nil
	}
	return requireProjectMember(db, actor, *projectID)
}
