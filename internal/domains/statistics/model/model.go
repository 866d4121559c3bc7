package model

import "time"

const (
	CacheStatistics = "statistics"
)

// Sale is the monthly turnover of one dish.
type Sale struct {
	CategoryID string `db:"category_id"`
	Category   string `db:"category"`
	DishID     string `db:"dish_id"`
	Dish       string `db:"dish"`
	Quantity   int    `db:"quantity"`
	Revenue    int64  `db:"revenue"`
}

type TableReservations struct {
	TableID      string `db:"table_id"`
	TableNumber  int    `db:"table_number"`
	Reservations int    `db:"reservations"`
}

type WaiterPerformance struct {
	WaiterID   string `db:"waiter_id"`
	WaiterName string `db:"waiter_name"`
	Orders     int    `db:"orders"`
	PaidOrders int    `db:"paid_orders"`
	PaidSum    int64  `db:"paid_sum"`
	Tips       int64  `db:"tips"`
}

// Session is a client's stay at a table as booked by an active reservation.
type Session struct {
	ReservationID string    `db:"reservation_id"`
	ClientID      string    `db:"client_id"`
	ClientName    string    `db:"client_name"`
	TableID       string    `db:"table_id"`
	TableNumber   int       `db:"table_number"`
	StartTime     time.Time `db:"start_time"`
	EndTime       time.Time `db:"end_time"`
}

func (s Session) Minutes() int {
	return int(s.EndTime.Sub(s.StartTime).Minutes())
}
