package service_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medinbox/internal/domain"
	"medinbox/internal/inbox"
	"medinbox/internal/metrics"
	"medinbox/internal/service"
	"medinbox/internal/timefmt"
)

func newConversationService(t *testing.T, e *env, m *metrics.Metrics) *service.ConversationService {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.repos.Patients.Create(ctx, &domain.Patient{
		ID: "maria-schmidt", Name: "Maria Schmidt", DateOfBirth: "1958-03-12",
		InsuranceID: "A123456789", ConsentStatus: domain.ConsentReceived,
	}))

	svc := service.NewConversationService(e.repos.Conversations, e.repos.Patients, e.repos.Teams, "dr-mueller", timefmt.New(timefmt.EnglishLabels), nil, m)
	svc.Now = func() time.Time { return fixedNow }
	svc.NewID = func() string { return "conv-new" }
	return svc
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func TestInboxAndStats(t *testing.T) {
	e := newEnv(t)
	m := metrics.New()
	svc := newConversationService(t, e, m)
	ctx := context.Background()

	cards, err := svc.Inbox(ctx, inbox.Query{Text: "schmidt", Status: inbox.StatusUnread, Tab: inbox.TabToday})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Maria Schmidt", cards[0].DisplayName)
	assert.Equal(t, "30 min ago", cards[0].TimeLabel)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, inbox.Stats{TotalUnread: 1, UrgentCount: 0, TodayCount: 1}, stats)
	assert.Contains(t, scrape(t, m), "medinbox_unread_messages 1\n")
}

func TestStatsFollowMutations(t *testing.T) {
	e := newEnv(t)
	svc := newConversationService(t, e, nil)
	ctx := context.Background()

	_, err := e.msgs.Receive(ctx, service.SendInput{ConversationID: "1", Content: "Neuer Befund", SenderID: "dr-weber"})
	require.NoError(t, err)
	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUnread)

	conv, err := svc.MarkAsRead(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 0, conv.UnreadCount)
	for _, m := range conv.Messages {
		assert.True(t, m.IsRead)
	}

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalUnread)
}

func TestMarkAsReadKeepsOwnUnreadMessages(t *testing.T) {
	e := newEnv(t)
	svc := newConversationService(t, e, nil)
	ctx := context.Background()

	// a message written by the session user but never flagged read
	_, err := e.repos.Conversations.Mutate(ctx, "1", func(c *domain.Conversation) error {
		c.Append(&domain.Message{ID: "own", SenderID: "dr-mueller", Content: "Entwurf", Timestamp: fixedNow}, "dr-mueller")
		return nil
	})
	require.NoError(t, err)

	conv, err := svc.MarkAsRead(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 0, conv.UnreadCount)
	assert.False(t, conv.FindMessage("own").IsRead)
	assert.True(t, conv.FindMessage("3").IsRead)
}

func TestThreadLabels(t *testing.T) {
	e := newEnv(t)
	svc := newConversationService(t, e, nil)

	thread, err := svc.Thread(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "13:00", thread[0].TimeLabel)
	assert.Equal(t, "14:30", thread[2].TimeLabel)

	_, err = svc.Thread(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("WithPatient", func(t *testing.T) {
		e := newEnv(t)
		svc := newConversationService(t, e, nil)
		patient := "maria-schmidt"

		conv, err := svc.CreateConversation(ctx, service.ConversationCreateInput{
			Type:           domain.ConversationReferral,
			PatientID:      &patient,
			ParticipantIDs: []string{"dr-weber", "dr-mueller", "dr-weber"},
			IsUrgent:       true,
		}, "dr-mueller")
		require.NoError(t, err)
		assert.Equal(t, "conv-new", conv.ID)
		assert.Equal(t, "Maria Schmidt", conv.DisplayName())
		assert.Equal(t, []string{"dr-mueller", "dr-weber"}, conv.ParticipantIDs)

		stored, err := svc.GetConversation(ctx, "conv-new")
		require.NoError(t, err)
		assert.True(t, stored.IsUrgent)
		assert.Nil(t, stored.LastMessage)
	})

	t.Run("UnknownPatient", func(t *testing.T) {
		e := newEnv(t)
		svc := newConversationService(t, e, nil)
		missing := "nobody"
		_, err := svc.CreateConversation(ctx, service.ConversationCreateInput{PatientID: &missing}, "dr-mueller")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("NoName", func(t *testing.T) {
		e := newEnv(t)
		svc := newConversationService(t, e, nil)
		_, err := svc.CreateConversation(ctx, service.ConversationCreateInput{Type: domain.ConversationTeam, Name: "  "}, "dr-mueller")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("BadType", func(t *testing.T) {
		e := newEnv(t)
		svc := newConversationService(t, e, nil)
		_, err := svc.CreateConversation(ctx, service.ConversationCreateInput{Type: "broadcast", Name: "Alle"}, "dr-mueller")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestPinAndMuteToggle(t *testing.T) {
	e := newEnv(t)
	m := metrics.New()
	svc := newConversationService(t, e, m)
	ctx := context.Background()

	conv, err := svc.TogglePin(ctx, "1")
	require.NoError(t, err)
	assert.True(t, conv.IsPinned)
	conv, err = svc.TogglePin(ctx, "1")
	require.NoError(t, err)
	assert.False(t, conv.IsPinned)

	conv, err = svc.ToggleMute(ctx, "1")
	require.NoError(t, err)
	assert.True(t, conv.IsMuted)

	_, err = svc.ToggleMute(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	out := scrape(t, m)
	assert.Contains(t, out, `medinbox_mutations_total{op="pin",outcome="ok"} 2`)
	assert.Contains(t, out, `medinbox_mutations_total{op="mute",outcome="not_found"} 1`)
}

func TestResolveSender(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u, err := e.users.ResolveSender(ctx, "dr-weber", "Dr. Weber")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Hans Weber", u.Name)
	assert.False(t, u.Unknown)

	u, err = e.users.ResolveSender(ctx, "labor-nord", "Labor Nord")
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownSender("labor-nord", "Labor Nord"), u)
}
