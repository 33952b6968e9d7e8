package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissionStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from MissionStatus
		to   MissionStatus
		want bool
	}{
		{MissionActive, MissionAccepted, true},
		{MissionActive, MissionExpired, true},
		{MissionActive, MissionCompleted, false},
		{MissionAccepted, MissionCompleted, true},
		{MissionAccepted, MissionExpired, true},
		{MissionAccepted, MissionAccepted, false},
		{MissionCompleted, MissionActive, false},
		{MissionCompleted, MissionExpired, false},
		{MissionExpired, MissionAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestMissionRecord_Accept(t *testing.T) {
	m := &MissionRecord{ID: "1", Status: MissionActive}

	require.NoError(t, m.Accept("user-1"))
	assert.Equal(t, MissionAccepted, m.Status)
	assert.Equal(t, "user-1", m.AcceptedBy)

	// Re-accepting is rejected and leaves the first acceptance untouched.
	err := m.Accept("user-2")
	require.ErrorIs(t, err, ErrInvalidMissionTransition)
	assert.Equal(t, "user-1", m.AcceptedBy)
}

func TestMissionRecord_CompleteAndExpire(t *testing.T) {
	now := time.Now()

	m := &MissionRecord{ID: "1", Status: MissionActive}
	require.ErrorIs(t, m.Complete(now), ErrInvalidMissionTransition)

	require.NoError(t, m.Accept("user-1"))
	require.NoError(t, m.Complete(now))
	assert.Equal(t, MissionCompleted, m.Status)
	require.NotNil(t, m.CompletedAt)
	assert.Equal(t, now, *m.CompletedAt)

	require.ErrorIs(t, m.Expire(), ErrInvalidMissionTransition)
}

func TestNewRecordID(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := NewRecordID(now)
	assert.Regexp(t, `^\d+-[0-9a-f]{4}$`, id)
	assert.Contains(t, id, "1748779200000")
}
