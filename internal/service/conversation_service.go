package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medinbox/internal/domain"
	"medinbox/internal/inbox"
	"medinbox/internal/metrics"
	"medinbox/internal/timefmt"
)

type ConversationService struct {
	conversations domain.ConversationRepository
	patients      domain.PatientRepository
	teams         domain.TeamRepository
	owner         string
	formatter     *timefmt.Formatter
	log           *zap.Logger
	metrics       *metrics.Metrics

	Now   func() time.Time
	NewID func() string
}

func NewConversationService(
	conversations domain.ConversationRepository,
	patients domain.PatientRepository,
	teams domain.TeamRepository,
	sessionUserID string,
	formatter *timefmt.Formatter,
	log *zap.Logger,
	m *metrics.Metrics,
) *ConversationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConversationService{
		conversations: conversations,
		patients:      patients,
		teams:         teams,
		owner:         sessionUserID,
		formatter:     formatter,
		log:           log,
		metrics:       m,
		Now:           time.Now,
		NewID:         func() string { return "conv-" + uuid.NewString() },
	}
}

// Inbox returns the filtered conversation list as display cards.
func (s *ConversationService) Inbox(ctx context.Context, q inbox.Query) ([]inbox.Card, error) {
	convs, err := s.conversations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	now := s.Now()
	return inbox.Cards(inbox.Filter(convs, q, now), s.formatter, now), nil
}

// Stats aggregates the header counters over every conversation.
func (s *ConversationService) Stats(ctx context.Context) (inbox.Stats, error) {
	convs, err := s.conversations.List(ctx)
	if err != nil {
		return inbox.Stats{}, fmt.Errorf("list conversations: %w", err)
	}
	stats := inbox.ComputeStats(convs, s.Now())
	s.metrics.InboxStats(stats.TotalUnread, stats.UrgentCount)
	return stats, nil
}

func (s *ConversationService) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	return s.conversations.GetByID(ctx, id)
}

// ThreadMessage is a message with its display time for the chat view.
type ThreadMessage struct {
	*domain.Message
	TimeLabel string `json:"time_label"`
}

// Thread returns the conversation's messages in chronological order.
func (s *ConversationService) Thread(ctx context.Context, id string) ([]ThreadMessage, error) {
	conv, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	res := make([]ThreadMessage, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		res = append(res, ThreadMessage{
			Message:   m,
			TimeLabel: s.formatter.Format(timefmt.PolicyList, m.Timestamp, now),
		})
	}
	return res, nil
}

// MarkAsRead marks the thread read for the session user. Messages the
// session user wrote are left untouched.
func (s *ConversationService) MarkAsRead(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	conv, err := s.conversations.Mutate(ctx, conversationID, func(c *domain.Conversation) error {
		c.MarkRead(s.owner)
		return nil
	})
	s.metrics.Mutation("mark_read", outcomeOf(err))
	if err != nil {
		return nil, fmt.Errorf("mark as read: %w", err)
	}
	return conv, nil
}

func (s *ConversationService) TogglePin(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	conv, err := s.conversations.Mutate(ctx, conversationID, func(c *domain.Conversation) error {
		c.IsPinned = !c.IsPinned
		return nil
	})
	s.metrics.Mutation("pin", outcomeOf(err))
	if err != nil {
		return nil, fmt.Errorf("toggle pin: %w", err)
	}
	return conv, nil
}

func (s *ConversationService) ToggleMute(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	conv, err := s.conversations.Mutate(ctx, conversationID, func(c *domain.Conversation) error {
		c.IsMuted = !c.IsMuted
		return nil
	})
	s.metrics.Mutation("mute", outcomeOf(err))
	if err != nil {
		return nil, fmt.Errorf("toggle mute: %w", err)
	}
	return conv, nil
}

type ConversationCreateInput struct {
	Type           domain.ConversationType
	Name           string
	PatientID      *string
	ProviderName   *string
	ParticipantIDs []string
	IsUrgent       bool
}

// CreateConversation starts a new, empty conversation. The creator is
// always a participant. A patient reference must resolve.
func (s *ConversationService) CreateConversation(
	ctx context.Context,
	in ConversationCreateInput,
	creatorID string,
) (*domain.Conversation, error) {
	conv, err := s.create(ctx, in, creatorID)
	s.metrics.Mutation("create", outcomeOf(err))
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	s.log.Debug("conversation created", zap.String("conversation_id", conv.ID), zap.String("creator_id", creatorID))
	return conv, nil
}

func (s *ConversationService) create(ctx context.Context, in ConversationCreateInput, creatorID string) (*domain.Conversation, error) {
	if in.Type == "" {
		in.Type = domain.ConversationPatient
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("conversation type %q: %w", in.Type, domain.ErrInvalidInput)
	}

	conv := &domain.Conversation{
		ID:           s.NewID(),
		Type:         in.Type,
		Name:         strings.TrimSpace(in.Name),
		ProviderName: in.ProviderName,
		IsUrgent:     in.IsUrgent,
	}

	if in.PatientID != nil {
		p, err := s.patients.GetByID(ctx, *in.PatientID)
		if err != nil {
			return nil, err
		}
		conv.PatientID = &p.ID
		conv.PatientName = &p.Name
	}
	if conv.DisplayName() == "" {
		return nil, fmt.Errorf("conversation needs a name or a patient: %w", domain.ErrInvalidInput)
	}

	seen := map[string]struct{}{creatorID: {}}
	conv.ParticipantIDs = append(conv.ParticipantIDs, creatorID)
	for _, id := range in.ParticipantIDs {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		conv.ParticipantIDs = append(conv.ParticipantIDs, id)
	}

	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *ConversationService) Patient(ctx context.Context, id string) (*domain.Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *ConversationService) Teams(ctx context.Context) ([]*domain.Team, error) {
	return s.teams.List(ctx)
}
