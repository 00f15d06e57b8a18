package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medinbox/internal/domain"
	"medinbox/internal/metrics"
)

type MessageService struct {
	conversations domain.ConversationRepository
	users         *UserService
	owner         string
	log           *zap.Logger
	metrics       *metrics.Metrics

	MaxMessageLength int
	Now              func() time.Time
	NewID            func() string
}

func NewMessageService(
	conversations domain.ConversationRepository,
	users *UserService,
	sessionUserID string,
	log *zap.Logger,
	m *metrics.Metrics,
	maxLength int,
) *MessageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MessageService{
		conversations:    conversations,
		users:            users,
		owner:            sessionUserID,
		log:              log,
		metrics:          m,
		MaxMessageLength: maxLength,
		Now:              time.Now,
		NewID:            func() string { return "msg-" + uuid.NewString() },
	}
}

type SendInput struct {
	ConversationID string
	Content        string
	SenderID       string
	Attachments    []domain.MessageAttachment
	IsUrgent       bool
	ParentID       *string
}

// Send appends a message written by the session user. It is read from the
// sender's point of view and becomes the conversation's last message.
func (s *MessageService) Send(ctx context.Context, in SendInput) (*domain.Message, error) {
	msg, err := s.post(ctx, in, true)
	s.record("send", err)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	s.log.Debug("message sent",
		zap.String("conversation_id", in.ConversationID),
		zap.String("message_id", msg.ID),
		zap.String("sender_id", in.SenderID))
	return msg, nil
}

// Receive appends an inbound message from another participant. It stays
// unread for the session user unless the session user wrote it.
func (s *MessageService) Receive(ctx context.Context, in SendInput) (*domain.Message, error) {
	msg, err := s.post(ctx, in, in.SenderID == s.owner)
	s.record("receive", err)
	if err != nil {
		return nil, fmt.Errorf("receive message: %w", err)
	}
	s.log.Debug("message received",
		zap.String("conversation_id", in.ConversationID),
		zap.String("message_id", msg.ID),
		zap.String("sender_id", in.SenderID))
	return msg, nil
}

// post appends a message. Unread accounting is always against the session
// user, whoever issues the request.
func (s *MessageService) post(ctx context.Context, in SendInput, isRead bool) (*domain.Message, error) {
	if domain.IsBlank(in.Content) {
		return nil, fmt.Errorf("message content cannot be empty: %w", domain.ErrInvalidInput)
	}
	content := strings.TrimSpace(in.Content)
	if s.MaxMessageLength > 0 && len([]rune(content)) > s.MaxMessageLength {
		return nil, fmt.Errorf("message content exceeds %d characters: %w", s.MaxMessageLength, domain.ErrInvalidInput)
	}
	if in.SenderID == "" {
		return nil, fmt.Errorf("sender is required: %w", domain.ErrInvalidInput)
	}

	sender, err := s.users.ResolveSender(ctx, in.SenderID, in.SenderID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:          s.NewID(),
		SenderID:    in.SenderID,
		SenderName:  sender.Name,
		Content:     content,
		Timestamp:   s.Now(),
		Attachments: in.Attachments,
		IsRead:      isRead,
		IsUrgent:    in.IsUrgent,
		ParentID:    in.ParentID,
	}

	conv, err := s.conversations.Mutate(ctx, in.ConversationID, func(c *domain.Conversation) error {
		if in.ParentID != nil {
			parent := c.FindMessage(*in.ParentID)
			if parent == nil {
				return fmt.Errorf("parent message %s: %w", *in.ParentID, domain.ErrNotFound)
			}
			parent.ReplyCount++
		}
		c.Append(msg, s.owner)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conv.LastMessage, nil
}

// React toggles userID's emoji reaction on a message.
func (s *MessageService) React(ctx context.Context, conversationID, messageID, emoji, userID string) (*domain.Message, error) {
	msg, err := s.updateMessage(ctx, conversationID, messageID, func(m *domain.Message) error {
		if domain.IsBlank(emoji) || userID == "" {
			return fmt.Errorf("emoji and user are required: %w", domain.ErrInvalidInput)
		}
		m.ToggleReaction(emoji, userID)
		return nil
	})
	s.record("react", err)
	if err != nil {
		return nil, fmt.Errorf("react to message: %w", err)
	}
	s.log.Debug("reaction toggled",
		zap.String("message_id", messageID),
		zap.String("emoji", emoji),
		zap.String("user_id", userID),
		zap.Bool("active", msg.HasReacted(emoji, userID)))
	return msg, nil
}

// Edit replaces the content of a message. Only its sender may edit it.
func (s *MessageService) Edit(ctx context.Context, conversationID, messageID, newContent, requestingUserID string) (*domain.Message, error) {
	msg, err := s.updateMessage(ctx, conversationID, messageID, func(m *domain.Message) error {
		if s.MaxMessageLength > 0 && len([]rune(strings.TrimSpace(newContent))) > s.MaxMessageLength {
			return fmt.Errorf("message content exceeds %d characters: %w", s.MaxMessageLength, domain.ErrInvalidInput)
		}
		return m.Edit(newContent, requestingUserID, s.Now())
	})
	s.record("edit", err)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			s.log.Info("edit refused for non-owner",
				zap.String("message_id", messageID),
				zap.String("user_id", requestingUserID))
		}
		return nil, fmt.Errorf("edit message: %w", err)
	}
	s.log.Debug("message edited", zap.String("message_id", messageID))
	return msg, nil
}

func (s *MessageService) updateMessage(
	ctx context.Context,
	conversationID, messageID string,
	fn func(m *domain.Message) error,
) (*domain.Message, error) {
	var updated *domain.Message
	_, err := s.conversations.Mutate(ctx, conversationID, func(c *domain.Conversation) error {
		m := c.FindMessage(messageID)
		if m == nil {
			return fmt.Errorf("message %s: %w", messageID, domain.ErrNotFound)
		}
		if err := fn(m); err != nil {
			return err
		}
		updated = m.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *MessageService) record(op string, err error) {
	s.metrics.Mutation(op, outcomeOf(err))
	if err != nil && !errors.Is(err, domain.ErrForbidden) {
		s.log.Info("mutation rejected", zap.String("op", op), zap.Error(err))
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrInvalidInput):
		return metrics.OutcomeInvalid
	case errors.Is(err, domain.ErrForbidden):
		return metrics.OutcomeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	}
	return metrics.OutcomeError
}
