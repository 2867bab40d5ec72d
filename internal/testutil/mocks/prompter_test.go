package mocks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Ask(t *testing.T) {
	t.Parallel()

	p := NewPrompter().WithAnswers("Ada", "")
	ctx := context.Background()

	first, err := p.Ask(ctx, "Name", "fallback")
	require.NoError(t, err)
	second, err := p.Ask(ctx, "Email", "ada@example.com")
	require.NoError(t, err)
	third, err := p.Ask(ctx, "Other", "default")
	require.NoError(t, err)

	assert.Equal(t, "Ada", first)
	assert.Equal(t, "ada@example.com", second)
	assert.Equal(t, "default", third)
	assert.Equal(t, []string{"Name", "Email", "Other"}, p.Questions())
}

func TestPrompter_Confirm(t *testing.T) {
	t.Parallel()

	p := NewPrompter().WithConfirms(false)
	ctx := context.Background()

	first, err := p.Confirm(ctx, "Proceed?")
	require.NoError(t, err)
	second, err := p.Confirm(ctx, "Again?")
	require.NoError(t, err)

	assert.False(t, first)
	assert.True(t, second, "default-yes once script is exhausted")
	assert.Equal(t, []string{"Proceed?", "Again?"}, p.Confirmations())
}

func TestPrompter_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("stdin closed")
	p := NewPrompter().WithAskError(boom).WithConfirmError(boom)

	_, err := p.Ask(context.Background(), "Name", "")
	assert.ErrorIs(t, err, boom)

	_, err = p.Confirm(context.Background(), "Proceed?")
	assert.ErrorIs(t, err, boom)
}
