package services

import (
	"github.com/taskhub/backend/internal/models"
	"gorm.io/gorm"
)

type LabelService struct {
	db *gorm.DB
}

func NewLabelService(db *gorm.DB) *LabelService {
	return &LabelService{db: db}
}

type LabelRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	ProjectID   *uint  `json:"projectId"`
}

type UpdateLabelRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

func (s *LabelService) List(actor *Actor, req *CatalogListRequest) (*Page[models.Label], error) {
	query := visibleCatalog(s.db, s.db.Model(&models.Label{}), actor, req)
	return paginate[models.Label](query, req.PageRequest, "name ASC, id ASC", nil)
}

func (s *LabelService) GetByID(actor *Actor, id uint) (*models.Label, error) {
	var label models.Label
	if err := s.db.First(&label, id).Error; err != nil {
		return nil, notFound(err, "label")
	}
	if err := canSeeCatalog(s.db, actor, label.ProjectID); err != nil {
		return nil, err
	}
	return &label, nil
}

func (s *LabelService) Create(actor *Actor, req *LabelRequest) (*models.Label, error) {
	label := models.Label{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
		ProjectID:   nonZero(req.ProjectID),
		CreatedBy:   actor.UserID,
	}
	if err := models.Validate(&label); err != nil {
		return nil, err
	}
	if err := requireCatalogCreate(s.db, actor, label.ProjectID); err != nil {
		return nil, err
	}
	if err := s.db.Create(&label).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

func (s *LabelService) Update(actor *Actor, id uint, req *UpdateLabelRequest) (*models.Label, error) {
	label, err := s.editable(actor, id)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, 3)
	if req.Name != nil {
		label.Name = *req.Name
		fields = append(fields, "name")
	}
	if req.Color != nil {
		label.Color = *req.Color
		fields = append(fields, "color")
	}
	if req.Description != nil {
		label.Description = *req.Description
		fields = append(fields, "description")
	}
	if len(fields) == 0 {
		return label, nil
	}
	if err := models.Validate(label); err != nil {
		return nil, err
	}
	if err := s.db.Model(label).Select(fields).Updates(label).Error; err != nil {
		return nil, err
	}
	return label, nil
}

func (s *LabelService) Delete(actor *Actor, id uint) error {
	label, err := s.editable(actor, id)
	if err != nil {
		return err
	}
	return s.db.Delete(label).Error
}

func (s *LabelService) editable(actor *Actor, id uint) (*models.Label, error) {
	var label models.Label
	if err := s.db.First(&label, id).Error; err != nil {
		return nil, notFound(err, "label")
	}
	if err := requireCatalogEdit(s.db, actor, label.CreatedBy, label.ProjectID); err != nil {
		return nil, err
	}
	return &label, nil
}
