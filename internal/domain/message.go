package domain

import (
	"slices"
	"strings"
	"time"
)

// ToggleReaction adds userID to the emoji's reaction, or removes it when the
// user already reacted. Entries left without users are dropped, so two
// identical calls restore the previous state.
func (m *Message) ToggleReaction(emoji, userID string) {
	for i := range m.Reactions {
		r := &m.Reactions[i]
		if r.Emoji != emoji {
			continue
		}
		if idx := slices.Index(r.Users, userID); idx >= 0 {
			r.Users = slices.Delete(r.Users, idx, idx+1)
			r.Count = len(r.Users)
			if r.Count == 0 {
				m.Reactions = slices.Delete(m.Reactions, i, i+1)
				if len(m.Reactions) == 0 {
					m.Reactions = nil
				}
			}
			return
		}
		r.Users = append(r.Users, userID)
		r.Count = len(r.Users)
		return
	}
	m.Reactions = append(m.Reactions, Reaction{Emoji: emoji, Users: []string{userID}, Count: 1})
}

// HasReacted reports whether userID reacted with emoji.
func (m *Message) HasReacted(emoji, userID string) bool {
	for _, r := range m.Reactions {
		if r.Emoji == emoji {
			return slices.Contains(r.Users, userID)
		}
	}
	return false
}

// Edit replaces the content of a message owned by requestingUserID.
func (m *Message) Edit(newContent, requestingUserID string, now time.Time) error {
	if m.SenderID != requestingUserID {
		return ErrForbidden
	}
	if IsBlank(newContent) {
		return ErrInvalidInput
	}
	m.Content = strings.TrimSpace(newContent)
	m.IsEdited = true
	m.EditedAt = &now
	return nil
}

// Clone returns a deep copy of the message.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	cp := *m
	cp.Attachments = append([]MessageAttachment(nil), m.Attachments...)
	if m.Reactions != nil {
		cp.Reactions = make([]Reaction, len(m.Reactions))
		for i, r := range m.Reactions {
			cp.Reactions[i] = Reaction{Emoji: r.Emoji, Users: append([]string(nil), r.Users...), Count: r.Count}
		}
	}
	if m.EditedAt != nil {
		t := *m.EditedAt
		cp.EditedAt = &t
	}
	cp.ParentID = cloneString(m.ParentID)
	return &cp
}
