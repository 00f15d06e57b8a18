// Package fixtures loads session seed data from YAML and writes it into a
// store. Timestamps may be absolute (`at`) or relative to load time (`ago`),
// so the bundled seed always has conversations from "today".
package fixtures

import (
	"bytes"
	_ "embed"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"medinbox/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

type file struct {
	SessionUser   string         `yaml:"session_user"`
	Users         []user         `yaml:"users"`
	Teams         []team         `yaml:"teams"`
	Patients      []patient      `yaml:"patients"`
	Conversations []conversation `yaml:"conversations"`
}

type stamp struct {
	At  *time.Time    `yaml:"at"`
	Ago time.Duration `yaml:"ago"`
}

func (s stamp) resolve(now time.Time) time.Time {
	if s.At != nil {
		return *s.At
	}
	return now.Add(-s.Ago)
}

type user struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Email      string  `yaml:"email"`
	Role       string  `yaml:"role"`
	Status     string  `yaml:"status"`
	Title      *string `yaml:"title"`
	Department *string `yaml:"department"`
	KIMAddress *string `yaml:"kim_address"`
}

type team struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Members     []string `yaml:"members"`
	Private     bool     `yaml:"private"`
	Created     stamp    `yaml:"created"`
}

type timelineEvent struct {
	ID          string `yaml:"id"`
	Type        string `yaml:"type"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Provider    string `yaml:"provider"`
	Urgent      bool   `yaml:"urgent"`
	stamp       `yaml:",inline"`
}

type patient struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	DateOfBirth string          `yaml:"date_of_birth"`
	InsuranceID string          `yaml:"insurance_id"`
	KIMAddress  *string         `yaml:"kim_address"`
	Consent     string          `yaml:"consent"`
	Timeline    []timelineEvent `yaml:"timeline"`
}

type reaction struct {
	Emoji string   `yaml:"emoji"`
	Users []string `yaml:"users"`
}

type message struct {
	ID          string                     `yaml:"id"`
	SenderID    string                     `yaml:"sender_id"`
	SenderName  string                     `yaml:"sender_name"`
	Content     string                     `yaml:"content"`
	Attachments []domain.MessageAttachment `yaml:"attachments"`
	Reactions   []reaction                 `yaml:"reactions"`
	Read        bool                       `yaml:"read"`
	Urgent      bool                       `yaml:"urgent"`
	ParentID    *string                    `yaml:"parent_id"`
	stamp       `yaml:",inline"`
}

type conversation struct {
	ID            string    `yaml:"id"`
	Type          string    `yaml:"type"`
	Name          string    `yaml:"name"`
	PatientID     *string   `yaml:"patient_id"`
	PatientName   *string   `yaml:"patient_name"`
	ProviderName  *string   `yaml:"provider_name"`
	Participants  []string  `yaml:"participants"`
	Urgent        bool      `yaml:"urgent"`
	Pinned        bool      `yaml:"pinned"`
	Muted         bool      `yaml:"muted"`
	AISuggestions []string  `yaml:"ai_suggestions"`
	Messages      []message `yaml:"messages"`
	// Summary-only conversations carry a preview and a count instead of a thread.
	LastMessage *message `yaml:"last_message"`
	UnreadCount int      `yaml:"unread_count"`
}

// Dataset is a decoded fixture file with every timestamp resolved.
type Dataset struct {
	SessionUserID string
	Users         []*domain.User
	Teams         []*domain.Team
	Patients      []*domain.Patient
	Conversations []*domain.Conversation
}

// ViewAs recounts unread messages for userID when it differs from the
// session user the file was written for. Summary-only conversations keep
// the count stored in the file.
func (ds *Dataset) ViewAs(userID string) {
	if userID == "" || userID == ds.SessionUserID {
		return
	}
	for _, c := range ds.Conversations {
		c.RecountUnread(userID)
	}
	ds.SessionUserID = userID
}

// Default decodes the bundled seed.
func Default(now time.Time) (*Dataset, error) {
	return Decode(bytes.NewReader(defaultSeed), now)
}

// Load reads a fixture file; an empty path selects the bundled seed.
func Load(path string, now time.Time) (*Dataset, error) {
	if path == "" {
		return Default(now)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return Decode(f, now)
}

// Decode parses YAML fixtures. Reaction counts and unread counters are
// derived, never read from the file, except for summary-only conversations.
func Decode(r io.Reader, now time.Time) (*Dataset, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	ds := &Dataset{SessionUserID: f.SessionUser}
	for _, u := range f.Users {
		ds.Users = append(ds.Users, &domain.User{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Role:       domain.UserRole(u.Role),
			Status:     domain.UserStatus(u.Status),
			Title:      u.Title,
			Department: u.Department,
			KIMAddress: u.KIMAddress,
		})
	}
	for _, t := range f.Teams {
		ds.Teams = append(ds.Teams, &domain.Team{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			MemberIDs:   t.Members,
			IsPrivate:   t.Private,
			CreatedAt:   t.Created.resolve(now),
		})
	}
	for _, p := range f.Patients {
		dp := &domain.Patient{
			ID:            p.ID,
			Name:          p.Name,
			DateOfBirth:   p.DateOfBirth,
			InsuranceID:   p.InsuranceID,
			KIMAddress:    p.KIMAddress,
			ConsentStatus: domain.ConsentStatus(p.Consent),
		}
		for _, ev := range p.Timeline {
			dp.Timeline = append(dp.Timeline, domain.TimelineEvent{
				ID:          ev.ID,
				Type:        ev.Type,
				Title:       ev.Title,
				Description: ev.Description,
				Timestamp:   ev.resolve(now),
				Provider:    ev.Provider,
				Urgent:      ev.Urgent,
			})
		}
		ds.Patients = append(ds.Patients, dp)
	}
	for _, c := range f.Conversations {
		conv, err := c.toDomain(now, f.SessionUser)
		if err != nil {
			return nil, err
		}
		ds.Conversations = append(ds.Conversations, conv)
	}
	return ds, nil
}

func (c conversation) toDomain(now time.Time, viewerID string) (*domain.Conversation, error) {
	typ := domain.ConversationType(c.Type)
	if !typ.Valid() {
		return nil, fmt.Errorf("conversation %s: type %q: %w", c.ID, c.Type, domain.ErrInvalidInput)
	}
	conv := &domain.Conversation{
		ID:             c.ID,
		Type:           typ,
		Name:           c.Name,
		PatientID:      c.PatientID,
		PatientName:    c.PatientName,
		ProviderName:   c.ProviderName,
		ParticipantIDs: c.Participants,
		IsUrgent:       c.Urgent,
		IsPinned:       c.Pinned,
		IsMuted:        c.Muted,
		AISuggestions:  c.AISuggestions,
	}

	var prev time.Time
	for _, m := range c.Messages {
		msg := m.toDomain(now)
		if msg.Timestamp.Before(prev) {
			return nil, fmt.Errorf("conversation %s: message %s is out of order: %w", c.ID, m.ID, domain.ErrInvalidInput)
		}
		prev = msg.Timestamp
		conv.Append(msg, viewerID)
	}
	if len(c.Messages) == 0 {
		if c.LastMessage != nil {
			conv.LastMessage = c.LastMessage.toDomain(now)
		}
		conv.UnreadCount = c.UnreadCount
	}
	return conv, nil
}

func (m message) toDomain(now time.Time) *domain.Message {
	msg := &domain.Message{
		ID:          m.ID,
		SenderID:    m.SenderID,
		SenderName:  m.SenderName,
		Content:     m.Content,
		Timestamp:   m.resolve(now),
		Attachments: m.Attachments,
		IsRead:      m.Read,
		IsUrgent:    m.Urgent,
		ParentID:    m.ParentID,
	}
	for _, r := range m.Reactions {
		if len(r.Users) == 0 {
			continue
		}
		msg.Reactions = append(msg.Reactions, domain.Reaction{Emoji: r.Emoji, Users: r.Users, Count: len(r.Users)})
	}
	return msg
}

// Seed writes the dataset into the repositories.
func Seed(
	ctx context.Context,
	ds *Dataset,
	users domain.UserRepository,
	teams domain.TeamRepository,
	patients domain.PatientRepository,
	conversations domain.ConversationRepository,
) error {
	for _, u := range ds.Users {
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
	}
	for _, t := range ds.Teams {
		if err := teams.Create(ctx, t); err != nil {
			return fmt.Errorf("seed team: %w", err)
		}
	}
	for _, p := range ds.Patients {
		if err := patients.Create(ctx, p); err != nil {
			return fmt.Errorf("seed patient: %w", err)
		}
	}
	for _, c := range ds.Conversations {
		if err := conversations.Create(ctx, c); err != nil {
			return fmt.Errorf("seed conversation: %w", err)
		}
	}
	return nil
}
