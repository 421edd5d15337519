package shiftnorm_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/shiftnorm"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestNormalizeDayShift(t *testing.T) {
	s := entity.Shift{ID: "S1", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 16 * 60}
	n, err := shiftnorm.Normalize(s)
	require.NoError(t, err)
	assert.False(t, n.CrossesMidnight)
	assert.Equal(t, 480, n.DurationMinutes)
}

func TestNormalizeOvernightShift(t *testing.T) {
	s := entity.Shift{ID: "S2", Day: day("2024-01-01"), StartMin: 22 * 60, EndMin: 6 * 60}
	n, err := shiftnorm.Normalize(s)
	require.NoError(t, err)
	assert.True(t, n.CrossesMidnight)
	assert.Equal(t, 480, n.DurationMinutes)
	assert.Equal(t, day("2024-01-02").Add(6*time.Hour), n.EndDT)
}

func TestNormalizeFullDayShift(t *testing.T) {
	s := entity.Shift{ID: "S3", Day: day("2024-01-01"), StartMin: 0, EndMin: 0}
	n, err := shiftnorm.Normalize(s)
	require.NoError(t, err)
	assert.False(t, n.CrossesMidnight)
	assert.Equal(t, 1440, n.DurationMinutes)
}

func TestNormalizeEndAtMidnightIs1440Duration(t *testing.T) {
	s := entity.Shift{ID: "S4", Day: day("2024-01-01"), StartMin: 0, EndMin: 1440}
	n, err := shiftnorm.Normalize(s)
	require.NoError(t, err)
	assert.False(t, n.CrossesMidnight)
	assert.Equal(t, 1440, n.DurationMinutes)
}

func TestNormalizeRejectsEqualNonMidnight(t *testing.T) {
	s := entity.Shift{ID: "S5", Day: day("2024-01-01"), StartMin: 8 * 60, EndMin: 8 * 60}
	_, err := shiftnorm.Normalize(s)
	require.Error(t, err)
}
