package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"taller-go/internal/assistant"
	"taller-go/internal/model"
	"taller-go/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memConversations is an in-memory repository.ConversationRepository.
type memConversations struct {
	nextID        uint
	conversations map[uint]*model.Conversation
	messages      map[uint][]model.Message
}

func newMemConversations() *memConversations {
	return &memConversations{
		nextID:        1,
		conversations: map[uint]*model.Conversation{},
		messages:      map[uint][]model.Message{},
	}
}

func (m *memConversations) Create(ctx context.Context, c *model.Conversation) error {
	c.ID = m.nextID
	m.nextID++
	m.conversations[c.ID] = c
	return nil
}

func (m *memConversations) FindByID(ctx context.Context, userID, id uint) (*model.Conversation, error) {
	c, ok := m.conversations[id]
	if !ok || c.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *memConversations) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]model.Conversation, int64, error) {
	var out []model.Conversation
	for _, c := range m.conversations {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memConversations) UpdateTitle(ctx context.Context, id uint, title string) error {
	c, ok := m.conversations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Title = title
	return nil
}

func (m *memConversations) Delete(ctx context.Context, userID, id uint) error {
	if _, err := m.FindByID(ctx, userID, id); err != nil {
		return err
	}
	delete(m.conversations, id)
	delete(m.messages, id)
	return nil
}

func (m *memConversations) AppendMessage(ctx context.Context, msg *model.Message) error {
	msg.ID = uint(len(m.messages[msg.ConversationID]) + 1)
	m.messages[msg.ConversationID] = append(m.messages[msg.ConversationID], *msg)
	return nil
}

func (m *memConversations) Messages(ctx context.Context, conversationID uint, limit int) ([]model.Message, error) {
	msgs := m.messages[conversationID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

// textGateway answers every round with fixed text.
type textGateway struct {
	content string
	calls   int
}

func (g *textGateway) Complete(ctx context.Context, req *llm.Request) (*llm.Result, error) {
	g.calls++
	return &llm.Result{Content: g.content, Usage: llm.Usage{PromptTokens: 7, CompletionTokens: 2}}, nil
}

func newTestChatService(t *testing.T, repo *memConversations, gateway llm.Client) ChatService {
	t.Helper()
	// handlers are never invoked in these tests, so empty collaborators are
	// fine for registry assembly
	registry, err := assistant.NewRegistry(assistant.Deps{})
	require.NoError(t, err)
	orchestrator := assistant.NewOrchestrator(gateway, registry, "", 40)
	return NewChatService(repo, orchestrator, "gpt-4o-mini", 40)
}

func TestPostMessageStartsConversationAndPersistsTurns(t *testing.T) {
	repo := newMemConversations()
	svc := newTestChatService(t, repo, &textGateway{content: "Buenas tardes"})

	reply, err := svc.PostMessage(context.Background(), 1, 10, 0, "", "hola")
	require.NoError(t, err)
	assert.Equal(t, "Buenas tardes", reply.Content)
	require.NotZero(t, reply.ConversationID)

	conversation := repo.conversations[reply.ConversationID]
	require.NotNil(t, conversation)
	assert.Equal(t, uint(1), conversation.UserID)
	assert.Equal(t, uint(10), conversation.CompanyID)
	assert.Equal(t, "gpt-4o-mini", conversation.Model, "default model applies when none is pinned")

	msgs := repo.messages[reply.ConversationID]
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "hola", msgs[0].Content)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Contains(t, msgs[1].Metadata, "promptTokens")
}

func TestPostMessageBackfillsTitleOnce(t *testing.T) {
	repo := newMemConversations()
	svc := newTestChatService(t, repo, &textGateway{content: "ok"})

	long := strings.Repeat("cliente García quiere presupuesto ", 5)
	reply, err := svc.PostMessage(context.Background(), 1, 10, 0, "", long)
	require.NoError(t, err)

	title := repo.conversations[reply.ConversationID].Title
	assert.NotEmpty(t, title)
	assert.LessOrEqual(t, len([]rune(title)), 60)

	// a later turn must not overwrite the title
	_, err = svc.PostMessage(context.Background(), 1, 10, reply.ConversationID, "", "otra cosa")
	require.NoError(t, err)
	assert.Equal(t, title, repo.conversations[reply.ConversationID].Title)
}

func TestPostMessageRejectsForeignConversation(t *testing.T) {
	repo := newMemConversations()
	svc := newTestChatService(t, repo, &textGateway{content: "ok"})

	reply, err := svc.PostMessage(context.Background(), 1, 10, 0, "", "hola")
	require.NoError(t, err)

	_, err = svc.PostMessage(context.Background(), 2, 10, reply.ConversationID, "", "intruso")
	assert.Error(t, err)
}

func TestPostMessageSendsPriorHistory(t *testing.T) {
	repo := newMemConversations()
	gateway := &recordingGateway{content: "ok"}
	svc := newTestChatService(t, repo, gateway)

	first, err := svc.PostMessage(context.Background(), 1, 10, 0, "", "primer mensaje")
	require.NoError(t, err)
	_, err = svc.PostMessage(context.Background(), 1, 10, first.ConversationID, "", "segundo mensaje")
	require.NoError(t, err)

	require.Len(t, gateway.requests, 2)
	second := gateway.requests[1].Messages
	// system + prior user/assistant pair + current turn
	require.Len(t, second, 4)
	assert.Equal(t, "primer mensaje", second[1].Content)
	assert.Equal(t, "ok", second[2].Content)
	assert.Equal(t, "segundo mensaje", second[3].Content)
}

// failingGateway errors on every round.
type failingGateway struct {
	err error
}

func (g *failingGateway) Complete(ctx context.Context, req *llm.Request) (*llm.Result, error) {
	return nil, g.err
}

func TestPostMessageTurnsTimeoutIntoAssistantMessage(t *testing.T) {
	repo := newMemConversations()
	svc := newTestChatService(t, repo, &failingGateway{
		err: &llm.TimeoutError{Provider: "openai", Err: context.DeadlineExceeded},
	})

	reply, err := svc.PostMessage(context.Background(), 1, 10, 0, "", "hola")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "tardó demasiado")

	msgs := repo.messages[reply.ConversationID]
	require.Len(t, msgs, 2, "user turn and degraded assistant turn both persist")
	assert.Equal(t, reply.Content, msgs[1].Content)
}

func TestPostMessageTurnsProviderErrorIntoAssistantMessage(t *testing.T) {
	repo := newMemConversations()
	svc := newTestChatService(t, repo, &failingGateway{
		err: &llm.ProviderError{Provider: "gemini", Status: 429, Body: "quota"},
	})

	reply, err := svc.PostMessage(context.Background(), 1, 10, 0, "", "hola")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "429")
}

func TestPostMessageKeepsUnclassifiedFailuresHard(t *testing.T) {
	repo := newMemConversations()
	svc := newTestChatService(t, repo, &failingGateway{err: errors.New("connection refused")})

	_, err := svc.PostMessage(context.Background(), 1, 10, 0, "", "hola")
	assert.Error(t, err)
}

// recordingGateway keeps every request for assertions.
type recordingGateway struct {
	content  string
	requests []*llm.Request
}

func (g *recordingGateway) Complete(ctx context.Context, req *llm.Request) (*llm.Result, error) {
	g.requests = append(g.requests, req)
	return &llm.Result{Content: g.content}, nil
}
