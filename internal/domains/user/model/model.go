package model

import (
	"bistro/shared/model"
	"time"
)

const (
	TableName     = "users"
	EntityName    = "user"
	RoleTableName = "roles"

	FieldID        = "id"
	FieldLogin     = "login"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldRoleID    = "role_id"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
	FieldRoleName  = "name"
)

type User struct {
	ID        string     `db:"id"`
	Login     string     `db:"login"`
	Password  string     `db:"password"`
	FullName  string     `db:"full_name"`
	RoleID    int        `db:"role_id"`
	Role      string     `column:"name" db:"role" table:"roles"`
	LastLogin *time.Time `db:"last_login"`
	Active    bool       `db:"active"`
	model.Metadata
}

func (User) GetJoinQuery() string {
	return "JOIN roles ON roles.id = users.role_id"
}
