package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	// Arrange
	cases := []struct {
		name string
		want Day
	}{
		{"Monday", Monday},
		{"Tuesday", Tuesday},
		{"Wednesday", Wednesday},
		{"Thursday", Thursday},
		{"Friday", Friday},
	}

	for _, c := range cases {
		// Act
		got, err := ParseDay(c.name)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
		assert.Equal(t, c.name, got.String())
	}
}

func TestParseDayRejectsWeekend(t *testing.T) {
	// Act
	_, err := ParseDay("Saturday")

	// Assert
	assert.Error(t, err)
}

func TestNewTimeSlotRejectsEndBeforeStart(t *testing.T) {
	// Act
	_, err := NewTimeSlot(Monday, "10:00", "09:00")

	// Assert
	assert.Error(t, err)
}

func TestNewTimeSlotRejectsEqualBounds(t *testing.T) {
	// Act
	_, err := NewTimeSlot(Monday, "09:00", "09:00")

	// Assert
	assert.Error(t, err)
}

func TestTimeSlotOverlaps(t *testing.T) {
	// Arrange
	a, err := NewTimeSlot(Monday, "09:00", "10:00")
	require.NoError(t, err)
	b, err := NewTimeSlot(Monday, "09:30", "10:30")
	require.NoError(t, err)
	c, err := NewTimeSlot(Monday, "10:00", "11:00")
	require.NoError(t, err)
	d, err := NewTimeSlot(Tuesday, "09:00", "10:00")
	require.NoError(t, err)

	// Assert
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c), "touching at an endpoint is not an overlap")
	assert.False(t, a.Overlaps(d), "different days never overlap")
}

func TestTimeSlotHHMMRoundTrip(t *testing.T) {
	// Arrange
	ts, err := NewTimeSlot(Wednesday, "08:05", "09:45")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "08:05", ts.StartHHMM())
	assert.Equal(t, "09:45", ts.EndHHMM())
	assert.Equal(t, 100, ts.DurationMinutes())
}
