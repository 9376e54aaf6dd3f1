package repository

import (
	"context"
	"time"

	"taller-go/internal/model"

	"gorm.io/gorm"
)

// ConversationRepository persists conversations and their messages.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *model.Conversation) error
	FindByID(ctx context.Context, userID, id uint) (*model.Conversation, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]model.Conversation, int64, error)
	UpdateTitle(ctx context.Context, id uint, title string) error
	Delete(ctx context.Context, userID, id uint) error
	AppendMessage(ctx context.Context, message *model.Message) error
	Messages(ctx context.Context, conversationID uint, limit int) ([]model.Message, error)
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a ConversationRepository backed by GORM.
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, conversation *model.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

func (r *conversationRepository) FindByID(ctx context.Context, userID, id uint) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]model.Conversation, int64, error) {
	var conversations []model.Conversation
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Conversation{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Offset(offset).Limit(limit).Order("updated_at DESC").Find(&conversations).Error
	if err != nil {
		return nil, 0, err
	}
	return conversations, total, nil
}

func (r *conversationRepository) UpdateTitle(ctx context.Context, id uint, title string) error {
	return r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("title", title).Error
}

// Delete soft-deletes a conversation and its messages in one transaction.
func (r *conversationRepository) Delete(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&model.Conversation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("conversation_id = ?", id).Delete(&model.Message{}).Error
	})
}

func (r *conversationRepository) AppendMessage(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		// bump the conversation so the list stays ordered by activity
		return tx.Model(&model.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", time.Now()).Error
	})
}

// Messages returns the most recent messages in chronological order.
func (r *conversationRepository) Messages(ctx context.Context, conversationID uint, limit int) ([]model.Message, error) {
	q := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var messages []model.Message
	if err := q.Find(&messages).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
