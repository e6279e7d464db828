package forms

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	ID    string
	Value int
}

func TestStore_Lifecycle(t *testing.T) {
	store := NewStore[counter]()

	opened := store.Open(func(id string) counter { return counter{ID: id} })
	require.NotEmpty(t, opened.ID)
	assert.Equal(t, 1, store.Len())

	updated, err := store.Update(opened.ID, func(c *counter) error {
		c.Value = 3
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Value)

	got, err := store.Get(opened.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Value)

	assert.True(t, store.Close(opened.ID))
	assert.False(t, store.Close(opened.ID))

	_, err = store.Get(opened.ID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
	_, err = store.Update(opened.ID, func(*counter) error { return nil })
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestStore_FailedUpdateKeepsState(t *testing.T) {
	store := NewStore[counter]()
	opened := store.Open(func(id string) counter { return counter{ID: id, Value: 1} })

	boom := errors.New("boom")
	state, err := store.Update(opened.ID, func(c *counter) error {
		c.Value = 99
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, state.Value)

	got, _ := store.Get(opened.ID)
	assert.Equal(t, 1, got.Value)
}

func TestStore_Sweep(t *testing.T) {
	store := NewStore[counter]()
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	stale := store.Open(func(id string) counter { return counter{ID: id} })
	now = now.Add(30 * time.Minute)
	fresh := store.Open(func(id string) counter { return counter{ID: id} })
	now = now.Add(20 * time.Minute)

	closed := store.Sweep(45 * time.Minute)

	assert.Equal(t, 1, closed)
	_, err := store.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}
