package httpserver

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterPoolEvictsIdleClients(t *testing.T) {
	p := newLimiterPool(1, 1)
	at := time.Date(2024, 12, 15, 15, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return at }

	assert.True(t, p.Allow("10.0.0.1"))
	assert.False(t, p.Allow("10.0.0.1"))
	at = at.Add(9 * time.Minute)
	p.Allow("10.0.0.2")
	assert.Equal(t, 2, p.size())

	at = at.Add(2 * time.Minute)
	p.evict()
	assert.Equal(t, 1, p.size())

	at = at.Add(10 * time.Minute)
	p.evict()
	assert.Equal(t, 0, p.size())
}

func TestClientKeyIgnoresSessionHeader(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/conversations/1/pin", nil)
	r.RemoteAddr = "192.0.2.7:51234"
	r.Header.Set(sessionHeader, "dr-weber")
	assert.Equal(t, "192.0.2.7", clientKey(r))

	r.RemoteAddr = "192.0.2.8"
	assert.Equal(t, "192.0.2.8", clientKey(r))
}
