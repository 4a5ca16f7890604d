package services

import (
	"github.com/taskhub/backend/internal/models"
	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	ProjectID   *uint  `json:"projectId"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

func (s *CategoryService) List(actor *Actor, req *CatalogListRequest) (*Page[models.Category], error) {
	query := visibleCatalog(s.db, s.db.Model(&models.Category{}), actor, req)
	return paginate[models.Category](query, req.PageRequest, "name ASC, id ASC", nil)
}

func (s *CategoryService) GetByID(actor *Actor, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, notFound(err, "category")
	}
	if err := canSeeCatalog(s.db, actor, category.ProjectID); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Create(actor *Actor, req *CategoryRequest) (*models.Category, error) {
	category := models.Category{
		Name:        req.Name,
		Color:       req.Color,
		Icon:        req.Icon,
		Description: req.Description,
		ProjectID:   nonZero(req.ProjectID),
		CreatedBy:   actor.UserID,
	}
	if err := models.Validate(&category); err != nil {
		return nil, err
	}
	if err := requireCatalogCreate(s.db, actor, category.ProjectID); err != nil {
		return nil, err
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(actor *Actor, id uint, req *UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.editable(actor, id)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, 4)
	if req.Name != nil {
		category.Name = *req.Name
		fields = append(fields, "name")
	}
	if req.Color != nil {
		category.Color = *req.Color
		fields = append(fields, "color")
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
		fields = append(fields, "icon")
	}
	if req.Description != nil {
		category.Description = *req.Description
		fields = append(fields, "description")
	}
	if len(fields) == 0 {
		return category, nil
	}
	if err := models.Validate(category); err != nil {
		return nil, err
	}
	if err := s.db.Model(category).Select(fields).Updates(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(actor *Actor, id uint) error {
	category, err := s.editable(actor, id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
}

func (s *CategoryService) editable(actor *Actor, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, notFound(err, "category")
	}
	if err := requireCatalogEdit(s.db, actor, category.CreatedBy, category.ProjectID); err != nil {
		return nil, err
	}
	return &category, nil
}
