package inbox

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"medinbox/internal/domain"
)

// StatusFilter narrows the inbox by read state or urgency.
type StatusFilter string

const (
	StatusAll    StatusFilter = "all"
	StatusUnread StatusFilter = "unread"
	StatusUrgent StatusFilter = "urgent"
)

// TabFilter is the tab selected above the conversation list.
type TabFilter string

const (
	TabAll    TabFilter = "all"
	TabUrgent TabFilter = "urgent"
	TabToday  TabFilter = "today"
)

// ParseStatusFilter accepts "", "all", "unread" and "urgent".
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusUnread, StatusUrgent:
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("status filter %q: %w", s, domain.ErrInvalidInput)
}

// ParseTabFilter accepts "", "all", "urgent" and "today".
func ParseTabFilter(s string) (TabFilter, error) {
	switch TabFilter(s) {
	case "", TabAll:
		return TabAll, nil
	case TabUrgent, TabToday:
		return TabFilter(s), nil
	}
	return "", fmt.Errorf("tab filter %q: %w", s, domain.ErrInvalidInput)
}

// Query bundles the inbox filter inputs.
type Query struct {
	Text   string
	Status StatusFilter
	Tab    TabFilter
}

// Filter returns the conversations satisfying every predicate of q, in
// input order.
func Filter(convs []*domain.Conversation, q Query, now time.Time) []*domain.Conversation {
	fold := cases.Fold()
	needle := fold.String(q.Text)

	res := make([]*domain.Conversation, 0, len(convs))
	for _, c := range convs {
		if matchesText(fold, c, needle) && matchesStatus(c, q.Status) && matchesTab(c, q.Tab, now) {
			res = append(res, c)
		}
	}
	return res
}

func matchesText(fold cases.Caser, c *domain.Conversation, needle string) bool {
	if needle == "" {
		return true
	}
	fields := []string{c.DisplayName()}
	if c.ProviderName != nil {
		fields = append(fields, *c.ProviderName)
	}
	if c.LastMessage != nil {
		fields = append(fields, c.LastMessage.Content)
	}
	for _, f := range fields {
		if strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}

func matchesStatus(c *domain.Conversation, s StatusFilter) bool {
	switch s {
	case StatusUnread:
		return c.UnreadCount > 0
	case StatusUrgent:
		return c.IsUrgent
	}
	return true
}

func matchesTab(c *domain.Conversation, t TabFilter, now time.Time) bool {
	switch t {
	case TabUrgent:
		return c.IsUrgent
	case TabToday:
		return IsToday(c, now)
	}
	return true
}

// IsToday reports whether the conversation's latest activity falls on the
// calendar date of now, in now's location.
func IsToday(c *domain.Conversation, now time.Time) bool {
	ts := c.Timestamp()
	if ts.IsZero() {
		return false
	}
	return SameDay(ts, now)
}

// SameDay compares calendar dates in b's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
