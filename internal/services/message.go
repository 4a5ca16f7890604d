package services

import (
	"errors"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

type MessageListRequest struct {
	PageRequest
	Unread   bool   `form:"unread"`
	Search   string `form:"search"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

// SendMessageRequest targets exactly one of a user or a project.
type SendMessageRequest struct {
	RecipientID *uint  `json:"recipientId"`
	ProjectID   *uint  `json:"projectId"`
	Content     string `json:"content"`
}

type EditMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func preloadSender(db *gorm.DB) *gorm.DB {
	return db.Preload("Sender")
}

func (s *MessageService) load(id uint) (*models.Message, error) {
	var msg models.Message
	if err := preloadSender(s.db).First(&msg, id).Error; err != nil {
		return nil, notFound(err, "message")
	}
	return &msg, nil
}

func (s *MessageService) Send(actor *Actor, req *SendMessageRequest) (*models.Message, error) {
	msg := models.Message{
		SenderID:    actor.UserID,
		RecipientID: nonZero(req.RecipientID),
		ProjectID:   nonZero(req.ProjectID),
		Content:     req.Content,
	}
	if err := models.Validate(&msg); err != nil {
		return nil, err
	}

	if msg.IsDirect() {
		if *msg.RecipientID == actor.UserID {
			return nil, response.NewBadRequest("you cannot message yourself")
		}
		if err := ensureUsersExist(s.db, []uint{*msg.RecipientID}); err != nil {
			return nil, err
		}
	} else {
		var project models.Project
		if err := s.db.Select("id").First(&project, *msg.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewBadRequest("referenced project does not exist")
			}
			return nil, err
		}
		if err := requireProjectMember(s.db, actor, *msg.ProjectID); err != nil {
			return nil, err
		}
	}

	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return s.load(msg.ID)
}

// List returns every message the actor sent, received, or can see in a
// project chat, newest first.
func (s *MessageService) List(actor *Actor, req *MessageListRequest) (*Page[models.Message], error) {
	query := s.db.Model(&models.Message{}).
		Where("(sender_id = ? OR recipient_id = ? OR project_id IN (?))",
			actor.UserID, actor.UserID, memberProjectIDs(s.db, actor.UserID))
	if req.Unread {
		query = query.Where("is_read = ? AND sender_id <> ?", false, actor.UserID)
	}
	query = applySearch(query, req.Search, "content")
	query, err := applyDateRange(query, "created_at", req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}
	return paginate[models.Message](query, req.PageRequest, "created_at DESC, id DESC", preloadSender)
}

// ChatWithUser returns the direct conversation between the actor and another
// user in chronological order.
func (s *MessageService) ChatWithUser(actor *Actor, userID uint, req *PageRequest) (*Page[models.Message], error) {
	if err := ensureUsersExist(s.db, []uint{userID}); err != nil {
		if response.IsKind(err, response.KindValidation) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	query := s.db.Model(&models.Message{}).
		Where("((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?))",
			actor.UserID, userID, userID, actor.UserID)
	return paginate[models.Message](query, *req, "created_at ASC, id ASC", preloadSender)
}

// ChatInProject returns a project's group chat in chronological order.
func (s *MessageService) ChatInProject(actor *Actor, projectID uint, req *PageRequest) (*Page[models.Message], error) {
	var project models.Project
	if err := s.db.Select("id").First(&project, projectID).Error; err != nil {
		return nil, notFound(err, "project")
	}
	if err := requireProjectMember(s.db, actor, projectID); err != nil {
		return nil, err
	}
	query := s.db.Model(&models.Message{}).Where("project_id = ?", projectID)
	return paginate[models.Message](query, *req, "created_at ASC, id ASC", preloadSender)
}

// UnreadCount counts unread direct messages addressed to the actor.
func (s *MessageService) UnreadCount(actor *Actor) (int64, error) {
	var count int64
	err := s.db.Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ?", actor.UserID, false).
		Count(&count).Error
	return count, err
}

// Edit changes the content of the actor's own message.
func (s *MessageService) Edit(actor *Actor, id uint, req *EditMessageRequest) (*models.Message, error) {
	msg, err := s.own(actor, id)
	if err != nil {
		return nil, err
	}
	msg.Content = req.Content
	if err := models.Validate(msg); err != nil {
		return nil, err
	}
	if err := s.db.Model(msg).Select("content").Updates(msg).Error; err != nil {
		return nil, err
	}
	return s.load(id)
}

// GetByID returns a direct message to its sender or recipient, and a group
// message to the project's members.
func (s *MessageService) GetByID(actor *Actor, id uint) (*models.Message, error) {
	msg, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if msg.IsDirect() {
		if msg.SenderID != actor.UserID && *msg.RecipientID != actor.UserID {
			return nil, response.NewForbidden("you cannot view this message")
		}
	} else if err := requireProjectMember(s.db, actor, *msg.ProjectID); err != nil {
		return nil, err
	}
	return msg, nil
}

// MarkRead is allowed for the recipient of a direct message and for project
// members on a group message.
func (s *MessageService) MarkRead(actor *Actor, id uint) (*models.Message, error) {
	msg, err := s.GetByID(actor, id)
	if err != nil {
		return nil, err
	}
	if msg.IsDirect() && *msg.RecipientID != actor.UserID {
		return nil, response.NewForbidden("only the recipient can mark this message read")
	}

	if !msg.Read {
		if err := s.db.Model(msg).UpdateColumn("is_read", true).Error; err != nil {
			return nil, err
		}
		msg.Read = true
	}
	return msg, nil
}

func (s *MessageService) Delete(actor *Actor, id uint) error {
	msg, err := s.own(actor, id)
	if err != nil {
		return err
	}
	return s.db.Delete(msg).Error
}

func (s *MessageService) own(actor *Actor, id uint) (*models.Message, error) {
	msg, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != actor.UserID {
		return nil, response.NewForbidden("only the sender can change this message")
	}
	return msg, nil
}
