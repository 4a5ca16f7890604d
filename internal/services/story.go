package services

import (
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

const storySequence = "story"

type StoryService struct {
	db *gorm.DB
}

func NewStoryService(db *gorm.DB) *StoryService {
	return &StoryService{db: db}
}

type StoryListRequest struct {
	PageRequest
	Status   string `form:"status"`
	Search   string `form:"search"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

// CreateStoryRequest has no storyId field; ids are always allocated here.
type CreateStoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type UpdateStoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (s *StoryService) filtered(req *StoryListRequest) (*gorm.DB, error) {
	query := s.db.Model(&models.Story{})
	if req.Status != "" {
		if !models.IsValidStatus(req.Status) {
			return nil, response.NewBadRequestf("unknown status filter %q", req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}
	query = applySearch(query, req.Search, "title", "description")
	return applyDateRange(query, "created_at", req.DateFrom, req.DateTo)
}

func (s *StoryService) List(req *StoryListRequest) (*Page[models.Story], error) {
	query, err := s.filtered(req)
	if err != nil {
		return nil, err
	}
	return paginate[models.Story](query, req.PageRequest, "story_id DESC", func(db *gorm.DB) *gorm.DB {
		return db.Preload("Creator")
	})
}

// Count returns how many stories match the filters.
func (s *StoryService) Count(req *StoryListRequest) (int64, error) {
	query, err := s.filtered(req)
	if err != nil {
		return 0, err
	}
	var count int64
	err = query.Count(&count).Error
	return count, err
}

func (s *StoryService) GetByID(id uint) (*models.Story, error) {
	var story models.Story
	if err := s.db.Preload("Creator").First(&story, id).Error; err != nil {
		return nil, notFound(err, "story")
	}
	return &story, nil
}

// Create allocates the next storyId and stores the story in one transaction.
func (s *StoryService) Create(actor *Actor, req *CreateStoryRequest) (*models.Story, error) {
	story := models.Story{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		CreatedBy:   actor.UserID,
	}
	if story.Status == "" {
		story.Status = models.DefaultStoryStatus
	}
	if err := models.Validate(&story); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		seq, err := models.NextSequence(tx, storySequence)
		if err != nil {
			return err
		}
		story.StoryID = seq
		return tx.Create(&story).Error
	})
	if err != nil {
		return nil, conflict(err, "storyId already in use")
	}
	return s.GetByID(story.ID)
}

func (s *StoryService) Update(actor *Actor, id uint, req *UpdateStoryRequest) (*models.Story, error) {
	story, err := s.editable(actor, id)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, 3)
	if req.Title != nil {
		story.Title = *req.Title
		fields = append(fields, "title")
	}
	if req.Description != nil {
		story.Description = *req.Description
		fields = append(fields, "description")
	}
	if req.Status != nil {
		story.Status = *req.Status
		fields = append(fields, "status")
	}
	if len(fields) == 0 {
		return story, nil
	}
	if err := models.Validate(story); err != nil {
		return nil, err
	}
	if err := s.db.Model(story).Select(fields).Omit("Creator").Updates(story).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *StoryService) Delete(actor *Actor, id uint) error {
	story, err := s.editable(actor, id)
	if err != nil {
		return err
	}
	return s.db.Delete(story).Error
}

func (s *StoryService) editable(actor *Actor, id uint) (*models.Story, error) {
	story, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if story.CreatedBy != actor.UserID && !actor.Elevated() {
		return nil, response.NewForbidden("only the story creator or a manager can change this story")
	}
	return story, nil
}
