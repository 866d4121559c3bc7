package model

import (
	"bistro/shared/model"
	"time"
)

const (
	TableName  = "shifts"
	EntityName = "shift"

	FieldID        = "id"
	FieldWaiterID  = "waiter_id"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldTips      = "tips"

	// TipPercent is the share of a waiter's paid takings settled as tips at shift close.
	TipPercent = 10
)

type Shift struct {
	ID         string     `db:"id"`
	WaiterID   string     `db:"waiter_id"`
	WaiterName string     `column:"full_name" db:"waiter_name" table:"users"`
	StartTime  time.Time  `db:"start_time"`
	EndTime    *time.Time `db:"end_time"`
	Tips       int64      `db:"tips"`
	model.Metadata
}

func (Shift) GetJoinQuery() string {
	return "JOIN users ON users.id = shifts.waiter_id"
}

func (s Shift) Open() bool {
	return s.EndTime == nil
}

// Tips returns TipPercent of the paid sum in minor units, rounding half up.
func Tips(paidSum int64) int64 {
	if paidSum <= 0 {
		return 0
	}

	return (paidSum*TipPercent + 50) / 100
}
