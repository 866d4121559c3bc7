package dto

import (
	"bistro/internal/domains/statistics/model"
	"bistro/shared/constant"
	"bistro/shared/timezone"
)

type MonthRequest struct {
	Month int `json:"month" validate:"required"`
	Year  int `json:"year"  validate:"required"`
}

type PeriodRequest struct {
	From string `json:"from" validate:"required,isodate"`
	To   string `json:"to"   validate:"required,isodate"`
}

type DishSales struct {
	DishID   string `json:"dish_id"`
	Dish     string `json:"dish"`
	Quantity int    `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

type CategorySales struct {
	CategoryID string      `json:"category_id"`
	Category   string      `json:"category"`
	Quantity   int         `json:"quantity"`
	Revenue    int64       `json:"revenue"`
	Dishes     []DishSales `json:"dishes"`
}

type SalesResponse struct {
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Categories []CategorySales `json:"categories"`
	Revenue    int64           `json:"revenue"`
}

// FromModels nests dish rows under their category. Rows must arrive ordered by category.
func (r *SalesResponse) FromModels(month, year int, sales []model.Sale) {
	r.Month = month
	r.Year = year
	r.Categories = []CategorySales{}

	for _, sale := range sales {
		last := len(r.Categories) - 1
		if last < 0 || r.Categories[last].CategoryID != sale.CategoryID {
			r.Categories = append(r.Categories, CategorySales{CategoryID: sale.CategoryID, Category: sale.Category})
			last++
		}

		category := &r.Categories[last]
		category.Dishes = append(category.Dishes, DishSales{
			DishID:   sale.DishID,
			Dish:     sale.Dish,
			Quantity: sale.Quantity,
			Revenue:  sale.Revenue,
		})
		category.Quantity += sale.Quantity
		category.Revenue += sale.Revenue
		r.Revenue += sale.Revenue
	}
}

type ReservationsResponse struct {
	Month  int                       `json:"month"`
	Year   int                       `json:"year"`
	Tables []model.TableReservations `json:"tables"`
	Total  int                       `json:"total"`
}

func (r *ReservationsResponse) FromModels(month, year int, tables []model.TableReservations) {
	r.Month = month
	r.Year = year
	r.Tables = tables

	for _, table := range tables {
		r.Total += table.Reservations
	}
}

type WaiterStats struct {
	WaiterID   string `json:"waiter_id"`
	WaiterName string `json:"waiter_name"`
	Orders     int    `json:"orders"`
	PaidOrders int    `json:"paid_orders"`
	PaidSum    int64  `json:"paid_sum"`
	Tips       int64  `json:"tips"`
}

type WaitersResponse struct {
	Month   int           `json:"month"`
	Year    int           `json:"year"`
	Waiters []WaiterStats `json:"waiters"`
}

func (r *WaitersResponse) FromModels(month, year int, rows []model.WaiterPerformance) {
	r.Month = month
	r.Year = year

	r.Waiters = make([]WaiterStats, len(rows))
	for i, row := range rows {
		r.Waiters[i] = WaiterStats(row)
	}
}

type SessionResponse struct {
	ReservationID string `json:"reservation_id"`
	ClientID      string `json:"client_id"`
	Client        string `json:"client"`
	TableID       string `json:"table_id"`
	TableNumber   int    `json:"table_number"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Minutes       int    `json:"duration_minutes"`
}

type SessionsResponse struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Sessions []SessionResponse `json:"sessions"`
}

func (r *SessionsResponse) FromModels(from, to string, sessions []model.Session) {
	r.From = from
	r.To = to

	r.Sessions = make([]SessionResponse, len(sessions))
	for i, session := range sessions {
		r.Sessions[i] = SessionResponse{
			ReservationID: session.ReservationID,
			ClientID:      session.ClientID,
			Client:        session.ClientName,
			TableID:       session.TableID,
			TableNumber:   session.TableNumber,
			Start:         timezone.Format(session.StartTime, constant.DateFormat),
			End:           timezone.Format(session.EndTime, constant.DateFormat),
			Minutes:       session.Minutes(),
		}
	}
}
