package domain

import (
	"context"
)

// UserRepository is the user directory.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	SetStatus(ctx context.Context, id string, status UserStatus) error
}

// ConversationRepository holds conversations together with their threads.
type ConversationRepository interface {
	Create(ctx context.Context, c *Conversation) error
	GetByID(ctx context.Context, id string) (*Conversation, error)
	List(ctx context.Context) ([]*Conversation, error)
	// Mutate applies fn to a private copy of the conversation and commits the
	// copy only when fn returns nil.
	Mutate(ctx context.Context, id string, fn func(c *Conversation) error) (*Conversation, error)
}

// TeamRepository defines read access to teams.
type TeamRepository interface {
	Create(ctx context.Context, t *Team) error
	List(ctx context.Context) ([]*Team, error)
}

// PatientRepository defines read access to patients.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id string) (*Patient, error)
}
