package services

import (
	"context"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

type NotificationListRequest struct {
	PageRequest
	Type     string `form:"type"`
	Read     *bool  `form:"read"`
	Archived bool   `form:"archived"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

// Deliver persists one notification row per recipient. It is the DeliverFunc
// behind both dispatchers.
func (s *NotificationService) Deliver(ctx context.Context, job *NotificationJob) error {
	if job == nil || len(job.RecipientIDs) == 0 {
		return nil
	}

	rows := make([]models.Notification, 0, len(job.RecipientIDs))
	seen := make(map[uint]bool, len(job.RecipientIDs))
	for _, id := range job.RecipientIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		n := models.Notification{
			RecipientID: id,
			Type:        job.Type,
			Message:     job.Message,
			TaskID:      job.TaskID,
			ProjectID:   job.ProjectID,
		}
		if err := models.Validate(&n); err != nil {
			return err
		}
		rows = append(rows, n)
	}
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

// List returns the actor's own notifications, newest first.
func (s *NotificationService) List(actor *Actor, req *NotificationListRequest) (*Page[models.Notification], error) {
	query := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND archived = ?", actor.UserID, req.Archived)
	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	if req.Read != nil {
		query = query.Where("is_read = ?", *req.Read)
	}
	query, err := applyDateRange(query, "created_at", req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}
	return paginate[models.Notification](query, req.PageRequest, "created_at DESC, id DESC", nil)
}

func (s *NotificationService) UnreadCount(actor *Actor) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ? AND archived = ?", actor.UserID, false, false).
		Count(&count).Error
	return count, err
}

// own loads a notification addressed to the actor. Rows addressed to anyone
// else are forbidden.
func (s *NotificationService) own(actor *Actor, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.First(&n, id).Error; err != nil {
		return nil, notFound(err, "notification")
	}
	if n.RecipientID != actor.UserID {
		return nil, response.NewForbidden("this notification belongs to another user")
	}
	return &n, nil
}

// GetByID returns one of the actor's notifications.
func (s *NotificationService) GetByID(actor *Actor, id uint) (*models.Notification, error) {
	return s.own(actor, id)
}

func (s *NotificationService) MarkRead(actor *Actor, id uint) (*models.Notification, error) {
	n, err := s.own(actor, id)
	if err != nil {
		return nil, err
	}
	if !n.Read {
		if err := s.db.Model(n).Update("is_read", true).Error; err != nil {
			return nil, err
		}
		n.Read = true
	}
	return n, nil
}

// MarkAllRead returns the number of notifications it flipped.
func (s *NotificationService) MarkAllRead(actor *Actor) (int64, error) {
	res := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", actor.UserID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (s *NotificationService) Archive(actor *Actor, id uint) (*models.Notification, error) {
	n, err := s.own(actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(n).Updates(map[string]interface{}{"archived": true, "is_read": true}).Error; err != nil {
		return nil, err
	}
	n.Archived, n.Read = true, true
	return n, nil
}

func (s *NotificationService) Delete(actor *Actor, id uint) error {
	n, err := s.own(actor, id)
	if err != nil {
		return err
	}
	return s.db.Delete(n).Error
}
