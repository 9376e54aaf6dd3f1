package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"taller-go/internal/assistant"
	"taller-go/internal/model"
	"taller-go/internal/repository"
	"taller-go/pkg/llm"
	"taller-go/pkg/log"
)

const titleMaxRunes = 60

// ChatReply is what one posted message produces.
type ChatReply struct {
	ConversationID uint      `json:"conversationId"`
	Content        string    `json:"content"`
	Usage          llm.Usage `json:"usage"`
	Direct         bool      `json:"direct"`
}

// ChatService runs one assistant turn end to end: conversation resolution,
// history load, orchestration, persistence.
type ChatService interface {
	PostMessage(ctx context.Context, userID, companyID, conversationID uint, modelName, text string) (*ChatReply, error)
}

type chatService struct {
	conversations repository.ConversationRepository
	orchestrator  *assistant.Orchestrator
	defaultModel  string
	window        int
}

// NewChatService creates a ChatService.
func NewChatService(conversations repository.ConversationRepository, orchestrator *assistant.Orchestrator, defaultModel string, window int) ChatService {
	return &chatService{
		conversations: conversations,
		orchestrator:  orchestrator,
		defaultModel:  defaultModel,
		window:        window,
	}
}

// PostMessage appends a user turn, runs the orchestrator and appends the
// assistant turn. conversationID 0 starts a new conversation.
func (s *chatService) PostMessage(ctx context.Context, userID, companyID, conversationID uint, modelName, text string) (*ChatReply, error) {
	if strings.TrimSpace(modelName) == "" {
		modelName = s.defaultModel
	}

	conversation, err := s.resolveConversation(ctx, userID, companyID, conversationID, modelName)
	if err != nil {
		return nil, err
	}

	history, err := s.loadHistory(ctx, conversation.ID)
	if err != nil {
		return nil, err
	}

	if err := s.conversations.AppendMessage(ctx, &model.Message{
		ConversationID: conversation.ID,
		Role:           model.RoleUser,
		Content:        text,
	}); err != nil {
		return nil, err
	}

	reply, err := s.orchestrator.Respond(ctx, companyID, conversation.Model, history, text)
	if err != nil {
		reply = degradedReply(err)
		if reply == nil {
			return nil, err
		}
		log.Warnf("assistant turn degraded for conversation %d: %v", conversation.ID, err)
	}

	metadata := encodeMetadata(reply)
	if err := s.conversations.AppendMessage(ctx, &model.Message{
		ConversationID: conversation.ID,
		Role:           model.RoleAssistant,
		Content:        reply.Content,
		Metadata:       metadata,
	}); err != nil {
		return nil, err
	}

	s.backfillTitle(ctx, conversation, text)

	return &ChatReply{
		ConversationID: conversation.ID,
		Content:        reply.Content,
		Usage:          reply.Usage,
		Direct:         reply.Direct,
	}, nil
}

func (s *chatService) resolveConversation(ctx context.Context, userID, companyID, conversationID uint, modelName string) (*model.Conversation, error) {
	if conversationID != 0 {
		return s.conversations.FindByID(ctx, userID, conversationID)
	}
	conversation := &model.Conversation{
		UserID:    userID,
		CompanyID: companyID,
		Model:     modelName,
	}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// loadHistory maps stored user/assistant turns to gateway messages. Tool
// and system rows are orchestration internals and stay out of the context.
func (s *chatService) loadHistory(ctx context.Context, conversationID uint) ([]llm.Message, error) {
	stored, err := s.conversations.Messages(ctx, conversationID, s.window)
	if err != nil {
		return nil, err
	}
	history := make([]llm.Message, 0, len(stored))
	for _, m := range stored {
		if m.Role != model.RoleUser && m.Role != model.RoleAssistant {
			continue
		}
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	return history, nil
}

// backfillTitle sets the conversation title from the first user message
// once, truncated to a displayable length.
func (s *chatService) backfillTitle(ctx context.Context, conversation *model.Conversation, text string) {
	if conversation.Title != "" {
		return
	}
	title := strings.TrimSpace(text)
	if utf8.RuneCountInString(title) > titleMaxRunes {
		runes := []rune(title)
		title = string(runes[:titleMaxRunes])
	}
	if title == "" {
		return
	}
	if err := s.conversations.UpdateTitle(ctx, conversation.ID, title); err != nil {
		log.Warnf("backfilling title for conversation %d failed: %v", conversation.ID, err)
	}
}

// degradedReply maps classified gateway failures to an assistant message so
// the turn still answers: timeouts get their own wording, provider errors a
// descriptive one. Unclassified errors return nil and stay hard failures.
func degradedReply(err error) *assistant.Reply {
	if llm.IsTimeout(err) {
		return &assistant.Reply{
			Content: "El modelo tardó demasiado en responder. Intenta de nuevo en unos segundos.",
		}
	}
	var providerErr *llm.ProviderError
	if errors.As(err, &providerErr) {
		return &assistant.Reply{
			Content: fmt.Sprintf(
				"El proveedor del modelo devolvió un error (HTTP %d). Intenta de nuevo o elige otro modelo.",
				providerErr.Status,
			),
		}
	}
	return nil
}

func encodeMetadata(reply *assistant.Reply) string {
	meta := model.MessageMetadata{
		PromptTokens:     reply.Usage.PromptTokens,
		CompletionTokens: reply.Usage.CompletionTokens,
	}
	if len(reply.Invocations) > 0 {
		meta.ToolCallID = reply.Invocations[0].ID
		meta.ToolName = reply.Invocations[0].Name
	}
	encoded, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return string(encoded)
}
