package model

import (
	"bistro/shared/failure"
	"bistro/shared/timezone"
	"fmt"
	"time"
)

type Status string

const (
	StatusFree     Status = "free"
	StatusReserved Status = "reserved"
	StatusOccupied Status = "occupied"
)

// Interval is a half-open [Start, End) period on a single calendar day.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval parses a YYYY-MM-DD date and two HH:MM clock readings. Malformed values and
// zero-length or inverted intervals are InvalidInput.
func NewInterval(date, start, end string) (Interval, error) {
	day, err := timezone.Date(date)
	if err != nil {
		return Interval{}, failure.BadRequest(err)
	}

	from, err := timezone.At(day, start)
	if err != nil {
		return Interval{}, failure.BadRequest(err)
	}

	to, err := timezone.At(day, end)
	if err != nil {
		return Interval{}, failure.BadRequest(err)
	}

	return IntervalOf(from, to)
}

func IntervalOf(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, failure.BadRequest(fmt.Errorf("end %s must be after start %s", end.Format(time.Kitchen), start.Format(time.Kitchen)))
	}

	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether the intervals share any instant. Touching endpoints do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return !(!i.End.After(other.Start) || !i.Start.Before(other.End))
}

func (i Interval) Contains(at time.Time) bool {
	return !at.Before(i.Start) && at.Before(i.End)
}

func (i Interval) Date() time.Time {
	return timezone.StartOfDay(i.Start)
}

func (i Interval) Minutes() int64 {
	return int64(i.End.Sub(i.Start).Minutes())
}

// Booking is an active reservation as seen by the engine.
type Booking struct {
	ID        string    `db:"id"`
	TableID   string    `db:"table_id"`
	ClientID  string    `db:"client_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}

func (b Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// Projection is the derived state of one table at an instant.
type Projection struct {
	Status        Status
	ReservationID string
	ReservedUntil *time.Time
}

// Project derives a table's status at the instant. An active order wins over any reservation.
func Project(occupied bool, bookings []Booking, at time.Time) Projection {
	if occupied {
		return Projection{Status: StatusOccupied}
	}

	for _, booking := range bookings {
		if booking.Interval().Contains(at) {
			until := booking.EndTime

			return Projection{Status: StatusReserved, ReservationID: booking.ID, ReservedUntil: &until}
		}
	}

	return Projection{Status: StatusFree}
}
