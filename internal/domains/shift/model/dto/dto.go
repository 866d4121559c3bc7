package dto

import (
	"bistro/internal/domains/shift/model"
	"bistro/shared"
	"bistro/shared/constant"
	gModel "bistro/shared/model"
	"bistro/shared/timezone"
	"time"

	"github.com/google/uuid"
)

func NewShift(waiterID, actor string, start time.Time) model.Shift {
	return model.Shift{
		ID:        uuid.NewString(),
		WaiterID:  waiterID,
		StartTime: start,
		Metadata:  gModel.NewMetadata(start, actor),
	}
}

type ShiftResponse struct {
	ID         string  `json:"id"`
	WaiterID   string  `json:"waiter_id"`
	WaiterName string  `json:"waiter_name,omitempty"`
	StartTime  string  `json:"start_time"`
	EndTime    *string `json:"end_time,omitempty"`
	Tips       int64   `json:"tips"`
	Open       bool    `json:"open"`
}

func (r *ShiftResponse) FromModel(model model.Shift) {
	r.ID = model.ID
	r.WaiterID = model.WaiterID
	r.WaiterName = model.WaiterName
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.Tips = model.Tips
	r.Open = model.Open()

	if model.EndTime != nil {
		end := timezone.Format(*model.EndTime, constant.DateFormat)
		r.EndTime = &end
	}
}

type CloseShiftResponse struct {
	ShiftID  string `json:"shift_id"`
	PaidSum  int64  `json:"paid_sum"`
	Tips     int64  `json:"tips"`
	EndTime  string `json:"end_time"`
	Duration int64  `json:"duration_minutes"`
}

type ListShiftsRequest struct {
	WaiterID string `json:"waiter_id" validate:"omitempty,uuid"`
	Month    int    `json:"month"     validate:"required,min=1,max=12"`
	Year     int    `json:"year"      validate:"required,min=2000,max=9999"`
}

type GetShiftsResponse struct {
	Shifts    []ShiftResponse `json:"shifts"`
	TotalTips int64           `json:"total_tips"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetShiftsResponse) FromModels(models []model.Shift, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Shifts = make([]ShiftResponse, len(models))
	for i, mod := range models {
		r.Shifts[i].FromModel(mod)
		r.TotalTips += mod.Tips
	}
}
