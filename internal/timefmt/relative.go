// Package timefmt renders message and conversation timestamps for display.
//
// Two policies exist because the inbox cards and the chat thread show time
// differently: cards count back in minutes, hours and days before falling
// back to a full date, while thread bubbles show the time of day for the
// last 24 hours and a day/month date after that.
package timefmt

import (
	"fmt"
	"time"
)

type Policy string

const (
	// PolicyDetail: just now, N min, N h, N d, then D.M.YYYY (unpadded).
	PolicyDetail Policy = "detail"
	// PolicyList: HH:MM within 24 hours, then DD.MM.
	PolicyList Policy = "list"
)

// Labels holds the relative phrases. Minutes, Hours and Days are format
// strings taking a single integer.
type Labels struct {
	JustNow string
	Minutes string
	Hours   string
	Days    string
}

var EnglishLabels = Labels{
	JustNow: "just now",
	Minutes: "%d min ago",
	Hours:   "%d h ago",
	Days:    "%d d ago",
}

var GermanLabels = Labels{
	JustNow: "Gerade eben",
	Minutes: "vor %dmin",
	Hours:   "vor %dh",
	Days:    "vor %dd",
}

// LabelsFor maps a language tag to a label set; unknown tags get English.
func LabelsFor(lang string) Labels {
	switch lang {
	case "de", "de-DE":
		return GermanLabels
	default:
		return EnglishLabels
	}
}

// The full date follows the de-DE short form, which does not pad day or
// month; the list form pads both.
const (
	dayMonthYear = "2.1.2006"
	dayMonth     = "02.01"
	clock        = "15:04"
)

// Formatter renders timestamps with a fixed label set.
type Formatter struct {
	Labels Labels
}

func New(labels Labels) *Formatter {
	return &Formatter{Labels: labels}
}

// Format renders ts relative to now using the given policy. Absolute
// output is expressed in now's location.
func (f *Formatter) Format(p Policy, ts, now time.Time) string {
	if p == PolicyList {
		return f.list(ts, now)
	}
	return f.Relative(ts, now)
}

// Relative implements PolicyDetail.
func (f *Formatter) Relative(ts, now time.Time) string {
	minutes := int(now.Sub(ts) / time.Minute)
	if minutes < 1 {
		return f.Labels.JustNow
	}
	if minutes < 60 {
		return fmt.Sprintf(f.Labels.Minutes, minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf(f.Labels.Hours, hours)
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf(f.Labels.Days, days)
	}
	return ts.In(now.Location()).Format(dayMonthYear)
}

func (f *Formatter) list(ts, now time.Time) string {
	local := ts.In(now.Location())
	if now.Sub(ts) < 24*time.Hour {
		return local.Format(clock)
	}
	return local.Format(dayMonth)
}

// Relative formats with English labels and PolicyDetail.
func Relative(ts, now time.Time) string {
	return New(EnglishLabels).Relative(ts, now)
}
