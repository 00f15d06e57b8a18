package inbox

import (
	"time"

	"medinbox/internal/domain"
)

// Stats are the counters shown in the inbox header.
type Stats struct {
	TotalUnread int `json:"total_unread"`
	UrgentCount int `json:"urgent_count"`
	TodayCount  int `json:"today_count"`
}

// ComputeStats aggregates over convs. TotalUnread is not capped.
func ComputeStats(convs []*domain.Conversation, now time.Time) Stats {
	var s Stats
	for _, c := range convs {
		s.TotalUnread += c.UnreadCount
		if c.IsUrgent {
			s.UrgentCount++
		}
		if IsToday(c, now) {
			s.TodayCount++
		}
	}
	return s
}
