package inbox

import (
	"time"

	"medinbox/internal/domain"
	"medinbox/internal/timefmt"
)

// Card is the inbox list entry for one conversation.
type Card struct {
	*domain.Conversation
	DisplayName string `json:"display_name"`
	TimeLabel   string `json:"time_label"`
	IsToday     bool   `json:"is_today"`
}

// Cards builds list entries, labelling each with the detail time policy.
func Cards(convs []*domain.Conversation, f *timefmt.Formatter, now time.Time) []Card {
	res := make([]Card, 0, len(convs))
	for _, c := range convs {
		card := Card{
			Conversation: c,
			DisplayName:  c.DisplayName(),
			IsToday:      IsToday(c, now),
		}
		if ts := c.Timestamp(); !ts.IsZero() {
			card.TimeLabel = f.Format(timefmt.PolicyDetail, ts, now)
		}
		res = append(res, card)
	}
	return res
}
