package dto

import (
	availability "bistro/internal/domains/availability/model"
	"bistro/internal/domains/reservation/model"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	gModel "bistro/shared/model"
	"bistro/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	TableID   string `json:"table_id"   validate:"required,uuid"`
	Date      string `json:"date"       validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time"   validate:"required"`
	Guests    int    `json:"guests"     validate:"required"`
	// ClientID lets staff book on behalf of a client. Ignored for clients.
	ClientID string `json:"client_id" validate:"omitempty,uuid"`
}

func (r *CreateReservationRequest) ToModel(clientID, actor string, interval availability.Interval) model.Reservation {
	return model.Reservation{
		ID:              uuid.NewString(),
		TableID:         r.TableID,
		ClientID:        clientID,
		ReservationDate: interval.Date(),
		StartTime:       interval.Start,
		EndTime:         interval.End,
		Guests:          r.Guests,
		Status:          model.StatusActive,
		Metadata:        gModel.NewMetadata(timezone.Now(), actor),
	}
}

type ListReservationsRequest struct {
	TableID  string `json:"table_id"  validate:"omitempty,uuid"`
	ClientID string `json:"client_id" validate:"omitempty,uuid"`
	Date     string `json:"date"      validate:"omitempty,isodate"`
	Status   string `json:"status"    validate:"omitempty,oneof=active cancelled"`
}

type ReservationResponse struct {
	ID          string `json:"id"`
	TableID     string `json:"table_id"`
	TableNumber int    `json:"table_number"`
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Guests      int    `json:"guests"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.TableID = model.TableID
	r.TableNumber = model.TableNumber
	r.ClientID = model.ClientID
	r.ClientName = model.ClientName
	r.Date = model.ReservationDate.Format(constant.DateOnlyFormat)
	r.StartTime = timezone.Format(model.StartTime, constant.ClockFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.ClockFormat)
	r.Guests = model.Guests
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
