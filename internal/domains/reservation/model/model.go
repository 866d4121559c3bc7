package model

import (
	"bistro/shared/model"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID              = "id"
	FieldTableID         = "table_id"
	FieldClientID        = "client_id"
	FieldReservationDate = "reservation_date"
	FieldStartTime       = "start_time"
	FieldGuests          = "guests"
	FieldStatus          = "status"

	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

type Reservation struct {
	ID              string    `db:"id"`
	TableID         string    `db:"table_id"`
	TableNumber     int       `column:"number"    db:"table_number" table:"tables"`
	ClientID        string    `db:"client_id"`
	ClientName      string    `column:"full_name" db:"client_name"  table:"users"`
	ReservationDate time.Time `db:"reservation_date"`
	StartTime       time.Time `db:"start_time"`
	EndTime         time.Time `db:"end_time"`
	Guests          int       `db:"guests"`
	Status          string    `db:"status"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "JOIN tables ON tables.id = reservations.table_id JOIN users ON users.id = reservations.client_id"
}

func (r Reservation) Active() bool {
	return r.Status == StatusActive
}
