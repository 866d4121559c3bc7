package timezone_test

import (
	"testing"
	"time"

	"bistro/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow_InRestaurantLocation(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.Location(), now.Location())
}

func TestDateAndAt(t *testing.T) {
	day, err := timezone.Date("2024-03-15")
	require.NoError(t, err)

	start, err := timezone.At(day, "10:30")
	require.NoError(t, err)

	assert.Equal(t, 2024, start.Year())
	assert.Equal(t, time.March, start.Month())
	assert.Equal(t, 15, start.Day())
	assert.Equal(t, 10, start.Hour())
	assert.Equal(t, 30, start.Minute())
	assert.Equal(t, timezone.Location(), start.Location())
}

func TestDate_Malformed(t *testing.T) {
	for _, value := range []string{"15.03.2024", "2024-13-01", ""} {
		_, err := timezone.Date(value)
		assert.Error(t, err, value)
	}
}

func TestAt_Malformed(t *testing.T) {
	day, err := timezone.Date("2024-03-15")
	require.NoError(t, err)

	for _, clock := range []string{"25:00", "10h", "10:75"} {
		_, err := timezone.At(day, clock)
		assert.Error(t, err, clock)
	}
}

func TestStartOfDay(t *testing.T) {
	at, err := timezone.At(time.Date(2024, 3, 15, 12, 0, 0, 0, timezone.Location()), "21:45")
	require.NoError(t, err)

	midnight := timezone.StartOfDay(at)

	assert.Equal(t, 15, midnight.Day())
	assert.Zero(t, midnight.Hour())
	assert.Zero(t, midnight.Minute())
}

func TestMonthRange(t *testing.T) {
	start, end := timezone.MonthRange(12, 2024)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, timezone.Location()), start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, timezone.Location()), end)
}

func TestFormat(t *testing.T) {
	instant := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, timezone.Local(instant).Format("15:04"), timezone.Format(instant, "15:04"))
}
