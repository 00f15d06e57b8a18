package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medinbox/internal/domain"
)

func TestAppendKeepsInvariants(t *testing.T) {
	c := &domain.Conversation{ID: "1", Name: "Anna Müller"}
	base := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)

	c.Append(&domain.Message{ID: "a", SenderID: "dr-weber", Timestamp: base}, "dr-mueller")
	c.Append(&domain.Message{ID: "b", SenderID: "dr-mueller", Timestamp: base.Add(time.Minute), IsRead: true}, "dr-mueller")
	c.Append(&domain.Message{ID: "c", SenderID: "labor-nord", Timestamp: base.Add(2 * time.Minute)}, "dr-mueller")

	require.Len(t, c.Messages, 3)
	assert.Same(t, c.Messages[2], c.LastMessage)
	assert.Equal(t, 2, c.UnreadCount)
	assert.Equal(t, base.Add(2*time.Minute), c.Timestamp())

	c.MarkRead("dr-mueller")
	assert.Equal(t, 0, c.UnreadCount)
	c.RecountUnread("dr-mueller")
	assert.Equal(t, 0, c.UnreadCount)
}

func TestAppendCountsFromViewer(t *testing.T) {
	c := &domain.Conversation{ID: "1"}
	c.Append(&domain.Message{ID: "a", SenderID: "dr-weber"}, "dr-mueller")
	require.Equal(t, 1, c.UnreadCount)

	// a message sent by another user does not recount from their side
	c.Append(&domain.Message{ID: "b", SenderID: "dr-weber", IsRead: true}, "dr-weber")
	assert.Equal(t, 1, c.UnreadCount)
}

func TestMarkReadOnlyTouchesOthersMessages(t *testing.T) {
	c := &domain.Conversation{ID: "1"}
	c.Append(&domain.Message{ID: "a", SenderID: "dr-weber"}, "dr-mueller")
	c.Append(&domain.Message{ID: "b", SenderID: "dr-mueller"}, "dr-mueller")
	require.Equal(t, 1, c.UnreadCount)

	c.MarkRead("dr-weber")
	assert.True(t, c.Messages[1].IsRead)
	assert.False(t, c.Messages[0].IsRead)

	// dr-weber's message is still unread for dr-mueller
	c.RecountUnread("dr-mueller")
	assert.Equal(t, 1, c.UnreadCount)

	c.MarkRead("dr-mueller")
	assert.Equal(t, 0, c.UnreadCount)
	assert.True(t, c.Messages[0].IsRead)
}

func TestMarkReadClearsSummaryCount(t *testing.T) {
	c := &domain.Conversation{ID: "6", UnreadCount: 3, LastMessage: &domain.Message{ID: "x"}}
	c.MarkRead("dr-mueller")
	assert.Equal(t, 0, c.UnreadCount)
}

func TestRecountKeepsSummaryCount(t *testing.T) {
	c := &domain.Conversation{ID: "1", UnreadCount: 4, LastMessage: &domain.Message{ID: "x"}}
	c.RecountUnread("dr-mueller")
	assert.Equal(t, 4, c.UnreadCount)
}

func TestDisplayName(t *testing.T) {
	patient := "Klaus Weber"
	assert.Equal(t, "Kardiologie Team", (&domain.Conversation{Name: "Kardiologie Team", PatientName: &patient}).DisplayName())
	assert.Equal(t, "Klaus Weber", (&domain.Conversation{PatientName: &patient}).DisplayName())
	assert.Equal(t, "", (&domain.Conversation{}).DisplayName())
}

func TestConversationClone(t *testing.T) {
	c := &domain.Conversation{ID: "1", ParticipantIDs: []string{"a"}}
	c.Append(&domain.Message{ID: "m1", SenderID: "a", Content: "hi"}, "a")

	cp := c.Clone()
	assert.Equal(t, c, cp)
	assert.Same(t, cp.Messages[0], cp.LastMessage)
	assert.NotSame(t, c.LastMessage, cp.LastMessage)

	cp.ParticipantIDs[0] = "b"
	cp.LastMessage.Content = "changed"
	assert.Equal(t, "a", c.ParticipantIDs[0])
	assert.Equal(t, "hi", c.LastMessage.Content)

	summary := &domain.Conversation{ID: "2", LastMessage: &domain.Message{ID: "s", Content: "Vorschau"}}
	scp := summary.Clone()
	assert.Equal(t, "Vorschau", scp.LastMessage.Content)
	assert.NotSame(t, summary.LastMessage, scp.LastMessage)
}

func TestUnknownSenderIsDeterministic(t *testing.T) {
	a := domain.UnknownSender("labor-nord", "Labor Nord")
	b := domain.UnknownSender("labor-nord", "Labor Nord")
	assert.Equal(t, a, b)
	assert.True(t, a.Unknown)
	assert.Equal(t, domain.RoleDoctor, a.Role)
	assert.Equal(t, domain.StatusOffline, a.Status)
}
