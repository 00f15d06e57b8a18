package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medinbox/internal/domain"
)

func TestSetStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.users.SetStatus(ctx, "dr-weber", domain.StatusAway))
	u, err := e.users.GetByID(ctx, "dr-weber")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAway, u.Status)

	assert.ErrorIs(t, e.users.SetStatus(ctx, "dr-weber", "busy"), domain.ErrInvalidInput)
	assert.ErrorIs(t, e.users.SetStatus(ctx, "labor-nord", domain.StatusOnline), domain.ErrNotFound)
}
