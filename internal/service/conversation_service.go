package service

import (
	"context"

	"taller-go/internal/model"
	"taller-go/internal/repository"
)

// ConversationService exposes the conversation list and history surface.
type ConversationService interface {
	List(ctx context.Context, userID uint, offset, limit int) ([]model.Conversation, int64, error)
	Get(ctx context.Context, userID, id uint) (*model.Conversation, []model.Message, error)
	Rename(ctx context.Context, userID, id uint, title string) error
	Delete(ctx context.Context, userID, id uint) error
}

type conversationService struct {
	conversations repository.ConversationRepository
}

// NewConversationService creates a ConversationService.
func NewConversationService(conversations repository.ConversationRepository) ConversationService {
	return &conversationService{conversations: conversations}
}

func (s *conversationService) List(ctx context.Context, userID uint, offset, limit int) ([]model.Conversation, int64, error) {
	return s.conversations.ListByUser(ctx, userID, offset, limit)
}

func (s *conversationService) Get(ctx context.Context, userID, id uint) (*model.Conversation, []model.Message, error) {
	conversation, err := s.conversations.FindByID(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.conversations.Messages(ctx, id, 0)
	if err != nil {
		return nil, nil, err
	}
	return conversation, messages, nil
}

func (s *conversationService) Rename(ctx context.Context, userID, id uint, title string) error {
	if _, err := s.conversations.FindByID(ctx, userID, id); err != nil {
		return err
	}
	return s.conversations.UpdateTitle(ctx, id, title)
}

func (s *conversationService) Delete(ctx context.Context, userID, id uint) error {
	return s.conversations.Delete(ctx, userID, id)
}
