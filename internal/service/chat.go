package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fitturk/backend/internal/models"
	"github.com/fitturk/backend/internal/types"
)

const (
	MaxChatMessageLength = 4000
	chatHistoryLimit     = 20
	conversationTitleLen = 60
	chatAttempts         = 2
)

// AssistantPersona is placed ahead of every transcript sent to the model.
const AssistantPersona = `You are FitTurk, a friendly nutrition and fitness assistant.
Answer in a warm, encouraging and concise tone, in the language the user writes in.
Give practical guidance on healthy eating, meal planning, recipes and exercise.
Never diagnose medical conditions, prescribe medication or promise specific results.
When a question touches on medical conditions, medication, pregnancy or eating disorders,
remind the user that you are not a medical professional and suggest consulting a doctor or registered dietitian.`

var errEmptyReply = errors.New("model returned an empty reply")

// ChatService runs one assistant turn per request and stores it.
type ChatService struct {
	db        *gorm.DB
	generator Generator
	logger    *zap.Logger
	timeout   time.Duration
	now       func() time.Time
}

var _ IChatService = (*ChatService)(nil)

// NewChatService builds a ChatService. timeout bounds each model attempt.
func NewChatService(db *gorm.DB, generator Generator, logger *zap.Logger, timeout time.Duration) *ChatService {
	return &ChatService{
		db:        db,
		generator: generator,
		logger:    logger,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Send resolves the conversation, asks the model for a reply and persists
// the user and assistant messages together. Nothing is written when the
// model fails.
func (s *ChatService) Send(ctx context.Context, userID uuid.UUID, req *types.ChatRequest) (*types.ChatResponse, error) {
	n := utf8.RuneCountInString(req.Message)
	if strings.TrimSpace(req.Message) == "" || n > MaxChatMessageLength {
		return nil, Validation("invalid message", map[string]string{"message": fmt.Sprintf("must be 1-%d characters", MaxChatMessageLength)})
	}

	conversation, err := s.findConversation(ctx, userID, req.ConversationID)
	if err != nil {
		return nil, err
	}

	var history []models.Message
	if conversation != nil {
		if history, err = s.recentMessages(ctx, conversation.ID); err != nil {
			return nil, err
		}
	}

	reply, err := s.generate(ctx, BuildPrompt(history, req.Message))
	if err != nil {
		return nil, err
	}

	if conversation == nil {
		conversation = &models.Conversation{
			ID:     uuid.New(),
			UserID: userID,
			Title:  conversationTitle(req.Message),
		}
	}
	if err := s.persistTurn(ctx, conversation, req.Message, reply); err != nil {
		return nil, err
	}

	return &types.ChatResponse{ConversationID: conversation.ID.String(), Reply: reply}, nil
}

// findConversation returns nil when the id is empty, malformed or belongs
// to someone else; the turn then starts a new conversation.
func (s *ChatService) findConversation(ctx context.Context, userID uuid.UUID, rawID string) (*models.Conversation, error) {
	if rawID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, nil
	}

	var conversation models.Conversation
	err = s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, Internal("failed to load conversation", err)
	}
	return &conversation, nil
}

// recentMessages returns the newest messages, oldest first.
func (s *ChatService) recentMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(chatHistoryLimit).
		Find(&messages).Error
	if err != nil {
		return nil, Internal("failed to load history", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// generate calls the model, retrying once with the same prompt.
func (s *ChatService) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= chatAttempts; attempt++ {
		reply, err := s.generateAttempt(ctx, prompt)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		s.logger.Warn("model call failed", zap.Int("attempt", attempt), zap.Error(err))

		// the client is gone, a retry cannot be delivered
		if ctx.Err() != nil {
			break
		}
	}

	s.logger.Error("model unavailable", zap.Int("attempts", chatAttempts), zap.Error(lastErr))
	return "", Upstream("assistant is unavailable, please try again", lastErr)
}

func (s *ChatService) generateAttempt(ctx context.Context, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.generator.Generate(attemptCtx, prompt)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", errEmptyReply
	}
	return reply, nil
}

func (s *ChatService) persistTurn(ctx context.Context, conversation *models.Conversation, message, reply string) error {
	now := s.now().UTC()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if conversation.CreatedAt.IsZero() {
			conversation.CreatedAt = now
			conversation.UpdatedAt = now
			if err := tx.Create(conversation).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(conversation).Update("updated_at", now).Error; err != nil {
				return err
			}
		}

		turn := []models.Message{
			{ConversationID: conversation.ID, Role: models.RoleUser, Content: message, CreatedAt: now},
			// keeps the pair ordered when both land in the same clock tick
			{ConversationID: conversation.ID, Role: models.RoleAssistant, Content: reply, CreatedAt: now.Add(time.Millisecond)},
		}
		return tx.Create(&turn).Error
	})
	if err != nil {
		return Internal("failed to save chat turn", err)
	}
	return nil
}

// ListConversations returns the caller's conversations, most recently
// active first, each with its opening message.
func (s *ChatService) ListConversations(ctx context.Context, userID uuid.UUID) ([]types.ConversationSummary, error) {
	var conversations []models.Conversation
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, Internal("failed to list conversations", err)
	}

	summaries := make([]types.ConversationSummary, 0, len(conversations))
	if len(conversations) == 0 {
		return summaries, nil
	}

	ids := make([]uuid.UUID, len(conversations))
	for i, c := range conversations {
		ids[i] = c.ID
	}
	var firsts []models.Message
	if err := s.db.WithContext(ctx).
		Where("conversation_id IN ?", ids).
		Where("created_at = (SELECT MIN(m2.created_at) FROM messages m2 WHERE m2.conversation_id = messages.conversation_id)").
		Order("created_at ASC").
		Find(&firsts).Error; err != nil {
		return nil, Internal("failed to load first messages", err)
	}
	firstByConversation := make(map[uuid.UUID]models.Message, len(firsts))
	for _, m := range firsts {
		if _, seen := firstByConversation[m.ConversationID]; !seen {
			firstByConversation[m.ConversationID] = m
		}
	}

	for _, c := range conversations {
		summary := types.ConversationSummary{
			ID:        c.ID.String(),
			Title:     c.Title,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
		if m, ok := firstByConversation[c.ID]; ok {
			msg := toChatMessage(m)
			summary.FirstMessage = &msg
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetMessages returns the full history of an owned conversation.
func (s *ChatService) GetMessages(ctx context.Context, userID uuid.UUID, conversationID string) ([]types.ChatMessage, error) {
	id, err := uuid.Parse(conversationID)
	if err != nil {
		return nil, NotFound("conversation not found")
	}
	conversation, err := s.findConversation(ctx, userID, id.String())
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, NotFound("conversation not found")
	}

	var messages []models.Message
	if err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversation.ID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, Internal("failed to load messages", err)
	}

	out := make([]types.ChatMessage, len(messages))
	for i, m := range messages {
		out[i] = toChatMessage(m)
	}
	return out, nil
}

// BuildPrompt flattens the persona, the history and the new message into a
// single prompt ending with an open assistant line.
func BuildPrompt(history []models.Message, message string) string {
	var b strings.Builder
	b.WriteString(AssistantPersona)
	b.WriteString("\n\n")
	for _, m := range history {
		b.WriteString(roleLabel(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(message)
	b.WriteString("\nAssistant:")
	return b.String()
}

func roleLabel(role string) string {
	if role == models.RoleAssistant {
		return "Assistant"
	}
	return "User"
}

func conversationTitle(message string) string {
	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) <= conversationTitleLen {
		return message
	}
	return string([]rune(message)[:conversationTitleLen])
}

func toChatMessage(m models.Message) types.ChatMessage {
	return types.ChatMessage{
		ID:        m.ID.String(),
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
