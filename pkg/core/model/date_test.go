package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate_ISOForm(t *testing.T) {
	normalized, err := NormalizeDate("2026-01-20")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-20", normalized)
}

func TestNormalizeDate_LegacyForm(t *testing.T) {
	normalized, err := NormalizeDate("20-01-2026")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-20", normalized)
}

func TestNormalizeDate_Unrecognized(t *testing.T) {
	_, err := NormalizeDate("Jan 20 2026")
	assert.Error(t, err)

	_, err = NormalizeDate("")
	assert.Error(t, err)
}

func TestMinutesOfDay(t *testing.T) {
	minutes, err := MinutesOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = MinutesOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	_, err = MinutesOfDay("9.30am")
	assert.Error(t, err)
}

func TestDayKeyAndMinuteOfDay(t *testing.T) {
	instant := time.Date(2026, 1, 20, 14, 45, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-20", DayKey(instant))
	assert.Equal(t, 14*60+45, MinuteOfDay(instant))
}
