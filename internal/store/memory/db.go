// Package memory is the session store, holding process-local state. Every
// repository shares one DB so a single lock orders all reads and writes.
package memory

import (
	"sync"

	"medinbox/internal/domain"
)

// DB holds all session data. Records handed out by repositories are copies;
// callers never alias stored state.
type DB struct {
	mu sync.RWMutex

	users         map[string]*domain.User
	userOrder     []string
	teams         []*domain.Team
	patients      map[string]*domain.Patient
	conversations map[string]*domain.Conversation
	convOrder     []string
}

// Open returns an empty store.
func Open() *DB {
	return &DB{
		users:         make(map[string]*domain.User),
		patients:      make(map[string]*domain.Patient),
		conversations: make(map[string]*domain.Conversation),
	}
}

// Repositories bundles the repositories backed by one DB.
type Repositories struct {
	Users         *UserRepo
	Conversations *ConversationRepo
	Teams         *TeamRepo
	Patients      *PatientRepo
}

func (db *DB) Repositories() Repositories {
	return Repositories{
		Users:         NewUserRepo(db),
		Conversations: NewConversationRepo(db),
		Teams:         NewTeamRepo(db),
		Patients:      NewPatientRepo(db),
	}
}
