package model

import "bistro/shared/model"

const (
	TableName           = "tables"
	EntityName          = "table"
	AssignmentTableName = "waiter_tables"

	FieldID       = "id"
	FieldNumber   = "number"
	FieldCapacity = "capacity"
)

type Table struct {
	ID         string  `db:"id"`
	Number     int     `db:"number"`
	Capacity   int     `db:"capacity"`
	WaiterID   *string `column:"waiter_id" db:"waiter_id"   table:"waiter_tables"`
	WaiterName *string `column:"full_name" db:"waiter_name" table:"users"`
	model.Metadata
}

func (Table) GetJoinQuery() string {
	return "LEFT JOIN waiter_tables ON waiter_tables.table_id = tables.id LEFT JOIN users ON users.id = waiter_tables.waiter_id"
}
