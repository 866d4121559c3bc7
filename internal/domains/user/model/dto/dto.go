package dto

import (
	"bistro/internal/domains/user/model"
	"bistro/shared"
	"bistro/shared/constant"
	gDto "bistro/shared/dto"
	gModel "bistro/shared/model"
	"bistro/shared/timezone"

	"github.com/google/uuid"
)

var roleIDs = map[string]int{
	constant.RoleAdmin:  constant.RoleIDAdmin,
	constant.RoleWaiter: constant.RoleIDWaiter,
	constant.RoleClient: constant.RoleIDClient,
}

// RoleID maps a role name to its row in the roles table; zero for unknown names.
func RoleID(role string) int {
	return roleIDs[role]
}

type CreateUserRequest struct {
	Login    string `json:"login"     validate:"required,alphanum,min=3,max=50"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Role     string `json:"role"      validate:"required,oneof=admin waiter client"`
}

func (r *CreateUserRequest) ToModel(actor, hashedPassword string) model.User {
	return model.User{
		ID:       uuid.NewString(),
		Login:    r.Login,
		Password: hashedPassword,
		FullName: r.FullName,
		RoleID:   RoleID(r.Role),
		Role:     r.Role,
		Active:   true,
		Metadata: gModel.NewMetadata(timezone.Now(), actor),
	}
}

type UserResponse struct {
	ID        string  `json:"id"`
	Login     string  `json:"login"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Login = model.Login
	r.FullName = model.FullName
	r.Role = model.Role
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
