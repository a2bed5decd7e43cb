package sessions

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iuermili/LeCourse/internal/pkg/apperrors"
)

func TestCreateAndGet(t *testing.T) {
	store := NewStore(time.Hour)

	created := store.Create("Computer Science", []string{"CS101"}, json.RawMessage(`[1,2]`))
	require.NotEmpty(t, created.ID)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", got.Major)
	assert.Equal(t, []string{"CS101"}, got.TakenCourseIDs)
	assert.JSONEq(t, "[1,2]", string(got.ContinuationToken))
}

func TestGetUnknownSession(t *testing.T) {
	store := NewStore(time.Hour)

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestGetExpiredSession(t *testing.T) {
	store := NewStore(time.Minute)
	created := store.Create("Computer Science", nil, nil)

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err := store.Get(created.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
	assert.Zero(t, store.Len())
}

func TestSetContinuationToken(t *testing.T) {
	store := NewStore(0)
	created := store.Create("Mathematics", nil, nil)

	store.SetContinuationToken(created.ID, json.RawMessage(`[9]`))

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.JSONEq(t, "[9]", string(got.ContinuationToken))
}

func TestSetContinuationTokenNilKeepsPrevious(t *testing.T) {
	store := NewStore(0)
	created := store.Create("Mathematics", nil, json.RawMessage(`[1]`))

	store.SetContinuationToken(created.ID, nil)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.JSONEq(t, "[1]", string(got.ContinuationToken))
}

func TestSnapshotsDoNotAlias(t *testing.T) {
	store := NewStore(0)
	created := store.Create("Physics", []string{"PHYS101"}, nil)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	got.TakenCourseIDs[0] = "mutated"

	again, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"PHYS101"}, again.TakenCourseIDs)
}

func TestDelete(t *testing.T) {
	store := NewStore(0)
	created := store.Create("Physics", nil, nil)

	store.Delete(created.ID)

	_, err := store.Get(created.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}
