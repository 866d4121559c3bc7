// Package timezone pins every wall-clock reading of the restaurant to the location set in
// APP_TIMEZONE: reservation slots, shift windows, receipts and monthly reports. The location
// is resolved on first use and falls back to UTC when unset or unknown.
package timezone

import (
	"bistro/config"
	"bistro/shared/constant"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const fallbackZone = "UTC"

var (
	once     sync.Once
	location *time.Location
)

func load() *time.Location {
	once.Do(func() {
		name := config.Get().App.Timezone
		if name == constant.Empty {
			log.Warn().Msg("No timezone configured, using UTC")

			name = fallbackZone
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, using UTC. Use IANA names such as 'Europe/Moscow'")

			loc = time.UTC
		}

		location = loc

		log.Info().Str("timezone", loc.String()).Msg("Restaurant timezone initialized")
	})

	return location
}

// Location is the restaurant's timezone.
func Location() *time.Location {
	return load()
}

func Now() time.Time {
	return time.Now().In(load())
}

// Local converts an instant read from storage to restaurant wall-clock time.
func Local(t time.Time) time.Time {
	return t.In(load())
}

func Format(t time.Time, layout string) string {
	return Local(t).Format(layout)
}

// StartOfDay is midnight of the restaurant day containing t.
func StartOfDay(t time.Time) time.Time {
	local := Local(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// Date parses a YYYY-MM-DD calendar day as restaurant midnight.
func Date(value string) (time.Time, error) {
	day, err := time.ParseInLocation(constant.DateOnlyFormat, value, load())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}

	return day, nil
}

// At places an HH:MM clock reading on the given restaurant day.
func At(day time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse(constant.ClockFormat, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}

	midnight := StartOfDay(day)

	return time.Date(midnight.Year(), midnight.Month(), midnight.Day(), parsed.Hour(), parsed.Minute(), 0, 0, midnight.Location()), nil
}

// MonthRange returns the half-open [first day, first day of next month) window.
func MonthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, load())

	return start, start.AddDate(0, 1, 0)
}
