package memory

import (
	"context"
	"fmt"

	"medinbox/internal/domain"
)

type TeamRepo struct {
	db *DB
}

func NewTeamRepo(db *DB) *TeamRepo {
	return &TeamRepo{db: db}
}

var _ domain.TeamRepository = (*TeamRepo)(nil)

func (r *TeamRepo) Create(ctx context.Context, t *domain.Team) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.teams {
		if existing.ID == t.ID {
			return fmt.Errorf("create team %s: %w", t.ID, domain.ErrConflict)
		}
	}
	cp := *t
	cp.MemberIDs = append([]string(nil), t.MemberIDs...)
	r.db.teams = append(r.db.teams, &cp)
	return nil
}

func (r *TeamRepo) List(ctx context.Context) ([]*domain.Team, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	res := make([]*domain.Team, 0, len(r.db.teams))
	for _, t := range r.db.teams {
		cp := *t
		cp.MemberIDs = append([]string(nil), t.MemberIDs...)
		res = append(res, &cp)
	}
	return res, nil
}

type PatientRepo struct {
	db *DB
}

func NewPatientRepo(db *DB) *PatientRepo {
	return &PatientRepo{db: db}
}

var _ domain.PatientRepository = (*PatientRepo)(nil)

func (r *PatientRepo) Create(ctx context.Context, p *domain.Patient) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.patients[p.ID]; ok {
		return fmt.Errorf("create patient %s: %w", p.ID, domain.ErrConflict)
	}
	cp := *p
	cp.Timeline = append([]domain.TimelineEvent(nil), p.Timeline...)
	r.db.patients[p.ID] = &cp
	return nil
}

func (r *PatientRepo) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.patients[id]
	if !ok {
		return nil, fmt.Errorf("get patient %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	cp.Timeline = append([]domain.TimelineEvent(nil), p.Timeline...)
	return &cp, nil
}
