package sessions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevelopIT-LTD/escobar-bot/internal/domain"
)

func TestGetOrCreate(t *testing.T) {
	store := NewStore()

	_, ok := store.Get(42)
	assert.False(t, ok)

	sess := store.GetOrCreate(42)
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.CorrelationID)
	assert.Equal(t, domain.StepIdle, sess.Step)

	again := store.GetOrCreate(42)
	assert.Same(t, sess, again)
}

func TestMutationThroughPointer(t *testing.T) {
	store := NewStore()

	sess := store.GetOrCreate(42)
	sess.Step = domain.StepName
	sess.Name = "Олена"

	got, ok := store.Get(42)
	require.True(t, ok)
	assert.Equal(t, domain.StepName, got.Step)
	assert.Equal(t, "Олена", got.Name)
}

func TestClear(t *testing.T) {
	store := NewStore()

	store.GetOrCreate(42)
	store.Clear(42)

	_, ok := store.Get(42)
	assert.False(t, ok)

	// повторний Clear не панікує
	store.Clear(42)
}

func TestIsolationBetweenChats(t *testing.T) {
	store := NewStore()

	first := store.GetOrCreate(1)
	first.Name = "Олена"
	second := store.GetOrCreate(2)

	assert.Empty(t, second.Name)
	assert.NotEqual(t, first.CorrelationID, second.CorrelationID)
}
