package repository

import (
	"time"

	"family-gifts/internal/model"
	"family-gifts/pkg/db"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{db: db.DB}
}

func (r *MessageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

// FindGroupMessages returns the group's messages in creation order,
// oldest first.
func (r *MessageRepository) FindGroupMessages(groupID uint) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.Where("gift_group_id = ?", groupID).
		Order("created_at ASC").
		Order("id ASC").
		Preload("User").
		Find(&messages).Error
	return messages, err
}

// CountAfter counts messages created after the given time; a nil time counts
// every message.
func (r *MessageRepository) CountAfter(groupID uint, after *time.Time) (int64, error) {
	q := r.db.Model(&model.Message{}).Where("gift_group_id = ?", groupID)
	if after != nil {
		q = q.Where("created_at > ?", *after)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}
