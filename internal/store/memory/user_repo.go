package memory

import (
	"context"
	"fmt"

	"medinbox/internal/domain"
)

type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		return fmt.Errorf("create user: empty id: %w", domain.ErrInvalidInput)
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[u.ID]; ok {
		return fmt.Errorf("create user %s: %w", u.ID, domain.ErrConflict)
	}
	cp := *u
	r.db.users[u.ID] = &cp
	r.db.userOrder = append(r.db.userOrder, u.ID)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, fmt.Errorf("get user %s: %w", id, domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	res := make([]*domain.User, 0, len(r.db.userOrder))
	for _, id := range r.db.userOrder {
		cp := *r.db.users[id]
		res = append(res, &cp)
	}
	return res, nil
}

// SetStatus changes presence, the only mutable user field.
func (r *UserRepo) SetStatus(ctx context.Context, id string, status domain.UserStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return fmt.Errorf("set status %s: %w", id, domain.ErrNotFound)
	}
	u.Status = status
	return nil
}
