package domain

import (
	"strings"
	"time"
)

// DisplayName is the label shown for the conversation in the inbox.
func (c *Conversation) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.PatientName != nil {
		return *c.PatientName
	}
	return ""
}

// Timestamp is the time of the most recent message, or the zero time for an
// empty conversation.
func (c *Conversation) Timestamp() time.Time {
	if c.LastMessage == nil {
		return time.Time{}
	}
	return c.LastMessage.Timestamp
}

// FindMessage returns the message with the given id, or nil.
func (c *Conversation) FindMessage(id string) *Message {
	for _, m := range c.Messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Append adds m to the end of the thread and moves LastMessage to it.
// An unread message from someone other than viewerID raises the unread
// counter by one; the rest of the thread is not recounted.
func (c *Conversation) Append(m *Message, viewerID string) {
	c.Messages = append(c.Messages, m)
	c.LastMessage = m
	if m.SenderID != viewerID && !m.IsRead {
		c.UnreadCount++
	}
}

// RecountUnread derives UnreadCount from the thread. Summary-only
// conversations without loaded messages keep their current count.
func (c *Conversation) RecountUnread(viewerID string) {
	if len(c.Messages) == 0 {
		return
	}
	n := 0
	for _, m := range c.Messages {
		if m.SenderID != viewerID && !m.IsRead {
			n++
		}
	}
	c.UnreadCount = n
}

// MarkRead marks every message not sent by viewerID as read and recounts.
// A summary-only conversation has nothing left to count and drops to zero.
func (c *Conversation) MarkRead(viewerID string) {
	for _, m := range c.Messages {
		if m.SenderID != viewerID {
			m.IsRead = true
		}
	}
	c.UnreadCount = 0
	c.RecountUnread(viewerID)
}

// Clone returns a deep copy. LastMessage in the copy points into the copied
// thread when the thread is non-empty.
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	cp := *c
	cp.ParticipantIDs = append([]string(nil), c.ParticipantIDs...)
	cp.AISuggestions = append([]string(nil), c.AISuggestions...)
	cp.PatientID = cloneString(c.PatientID)
	cp.PatientName = cloneString(c.PatientName)
	cp.ProviderName = cloneString(c.ProviderName)

	if c.Messages != nil {
		cp.Messages = make([]*Message, len(c.Messages))
		for i, m := range c.Messages {
			cp.Messages[i] = m.Clone()
		}
	}
	switch {
	case len(cp.Messages) > 0:
		cp.LastMessage = cp.Messages[len(cp.Messages)-1]
	case c.LastMessage != nil:
		cp.LastMessage = c.LastMessage.Clone()
	}
	return &cp
}

// IsBlank reports whether s has no visible content.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
