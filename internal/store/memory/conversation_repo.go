package memory

import (
	"context"
	"fmt"

	"medinbox/internal/domain"
)

type ConversationRepo struct {
	db *DB
}

func NewConversationRepo(db *DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

var _ domain.ConversationRepository = (*ConversationRepo)(nil)

func (r *ConversationRepo) Create(ctx context.Context, c *domain.Conversation) error {
	if c.ID == "" {
		return fmt.Errorf("create conversation: empty id: %w", domain.ErrInvalidInput)
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.conversations[c.ID]; ok {
		return fmt.Errorf("create conversation %s: %w", c.ID, domain.ErrConflict)
	}
	r.db.conversations[c.ID] = c.Clone()
	r.db.convOrder = append(r.db.convOrder, c.ID)
	return nil
}

func (r *ConversationRepo) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.conversations[id]
	if !ok {
		return nil, fmt.Errorf("get conversation %s: %w", id, domain.ErrNotFound)
	}
	return c.Clone(), nil
}

// List returns conversations in insertion order.
func (r *ConversationRepo) List(ctx context.Context) ([]*domain.Conversation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	res := make([]*domain.Conversation, 0, len(r.db.convOrder))
	for _, id := range r.db.convOrder {
		res = append(res, r.db.conversations[id].Clone())
	}
	return res, nil
}

func (r *ConversationRepo) Mutate(ctx context.Context, id string, fn func(c *domain.Conversation) error) (*domain.Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.conversations[id]
	if !ok {
		return nil, fmt.Errorf("mutate conversation %s: %w", id, domain.ErrNotFound)
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	r.db.conversations[id] = next
	return next.Clone(), nil
}
