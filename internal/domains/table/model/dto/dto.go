package dto

import (
	availability "bistro/internal/domains/availability/model"
	"bistro/internal/domains/table/model"
	"bistro/shared/constant"
	gModel "bistro/shared/model"
	"bistro/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	Number   int `json:"number"   validate:"required,min=1"`
	Capacity int `json:"capacity" validate:"required,min=1,max=50"`
}

func (r *CreateTableRequest) ToModel(actor string) model.Table {
	return model.Table{
		ID:       uuid.NewString(),
		Number:   r.Number,
		Capacity: r.Capacity,
		Metadata: gModel.NewMetadata(timezone.Now(), actor),
	}
}

// ListTablesRequest selects the instant the floor is projected at. Empty fields mean now.
type ListTablesRequest struct {
	Date string `json:"date" validate:"omitempty,isodate"`
	Time string `json:"time" validate:"omitempty,clock"`
}

type AvailableTablesRequest struct {
	Date      string `json:"date"       validate:"required,isodate"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time"   validate:"required,clock"`
	Guests    int    `json:"guests"     validate:"required,min=1"`
}

type AssignWaiterRequest struct {
	WaiterID string `json:"waiter_id" validate:"required,uuid"`
}

type TableResponse struct {
	ID         string `json:"id"`
	Number     int    `json:"number"`
	Capacity   int    `json:"capacity"`
	WaiterID   string `json:"waiter_id,omitempty"`
	WaiterName string `json:"waiter_name,omitempty"`
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.Number = model.Number
	r.Capacity = model.Capacity

	if model.WaiterID != nil {
		r.WaiterID = *model.WaiterID
	}

	if model.WaiterName != nil {
		r.WaiterName = *model.WaiterName
	}
}

type TableStatusResponse struct {
	TableResponse
	Status        availability.Status `json:"status"`
	ReservationID string              `json:"reservation_id,omitempty"`
	ReservedUntil string              `json:"reserved_until,omitempty"`
}

func (r *TableStatusResponse) FromModel(model model.Table, projection availability.Projection) {
	r.TableResponse.FromModel(model)
	r.Status = projection.Status
	r.ReservationID = projection.ReservationID

	if projection.ReservedUntil != nil {
		r.ReservedUntil = timezone.Format(*projection.ReservedUntil, constant.ClockFormat)
	}
}

type FloorResponse struct {
	At     string                `json:"at"`
	Tables []TableStatusResponse `json:"tables"`
}

func (r *FloorResponse) FromModels(models []model.Table, project func(tableID string) availability.Projection, at time.Time) {
	r.At = timezone.Format(at, constant.DateFormat)

	r.Tables = make([]TableStatusResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod, project(mod.ID))
	}
}

type AvailableTablesResponse struct {
	Tables []TableResponse `json:"tables"`
}
