package timefmt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medinbox/internal/timefmt"
)

var now = time.Date(2024, 12, 15, 15, 0, 0, 0, time.UTC)

func TestRelativeDetail(t *testing.T) {
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"zero", 0, "just now"},
		{"59 seconds", 59 * time.Second, "just now"},
		{"future", -5 * time.Minute, "just now"},
		{"one minute", time.Minute, "1 min ago"},
		{"59 minutes", 59*time.Minute + 59*time.Second, "59 min ago"},
		{"one hour", time.Hour, "1 h ago"},
		{"23 hours", 23*time.Hour + 59*time.Minute, "23 h ago"},
		{"one day", 24 * time.Hour, "1 d ago"},
		{"six days", 6*24*time.Hour + 23*time.Hour, "6 d ago"},
		{"seven days", 7 * 24 * time.Hour, "8.12.2024"},
		{"single-digit day and month", 313 * 24 * time.Hour, "6.2.2024"},
		{"two-digit day", 40 * 24 * time.Hour, "5.11.2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timefmt.Relative(now.Add(-tt.ago), now))
		})
	}
}

func TestRelativeGermanLabels(t *testing.T) {
	f := timefmt.New(timefmt.LabelsFor("de"))
	assert.Equal(t, "Gerade eben", f.Relative(now, now))
	assert.Equal(t, "vor 5min", f.Relative(now.Add(-5*time.Minute), now))
	assert.Equal(t, "vor 3h", f.Relative(now.Add(-3*time.Hour), now))
	assert.Equal(t, "vor 2d", f.Relative(now.Add(-49*time.Hour), now))
}

func TestListPolicy(t *testing.T) {
	f := timefmt.New(timefmt.EnglishLabels)

	assert.Equal(t, "14:30", f.Format(timefmt.PolicyList, now.Add(-30*time.Minute), now))
	assert.Equal(t, "15:01", f.Format(timefmt.PolicyList, now.Add(-23*time.Hour-59*time.Minute), now))
	assert.Equal(t, "14.12", f.Format(timefmt.PolicyList, now.Add(-24*time.Hour), now))
}

func TestAbsoluteUsesLocationOfNow(t *testing.T) {
	berlin := time.FixedZone("CET", 60*60)
	localNow := now.In(berlin)

	f := timefmt.New(timefmt.EnglishLabels)
	ts := time.Date(2024, 12, 14, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "14.12", f.Format(timefmt.PolicyList, ts.Add(-24*time.Hour), localNow))
	assert.Equal(t, "00:30", f.Format(timefmt.PolicyList, ts, localNow))
}

func TestFormatIsStable(t *testing.T) {
	ts := now.Add(-90 * time.Minute)
	assert.Equal(t, timefmt.Relative(ts, now), timefmt.Relative(ts, now))
	assert.Equal(t, "1 h ago", timefmt.Relative(ts, now))
}
