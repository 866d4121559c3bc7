package dto

import (
	"bistro/internal/domains/menu/model"
	"bistro/shared"
	gDto "bistro/shared/dto"
	gModel "bistro/shared/model"
	"bistro/shared/timezone"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (r *CreateCategoryRequest) ToModel(actor string) model.Category {
	return model.Category{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Metadata: gModel.NewMetadata(timezone.Now(), actor),
	}
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r *CategoryResponse) FromModel(model model.Category) {
	r.ID = model.ID
	r.Name = model.Name
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category) {
	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod)
	}
}

type CreateDishRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	CategoryID  string `json:"category_id" validate:"required,uuid"`
	Price       int64  `json:"price"       validate:"required,gt=0"`
	Quantity    int    `json:"quantity"    validate:"min=0"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

func (r *CreateDishRequest) ToModel(actor string) model.Dish {
	dish := model.Dish{
		ID:         uuid.NewString(),
		Name:       r.Name,
		CategoryID: r.CategoryID,
		Price:      r.Price,
		Quantity:   r.Quantity,
		Metadata:   gModel.NewMetadata(timezone.Now(), actor),
	}

	if r.Description != "" {
		description := r.Description
		dish.Description = &description
	}

	return dish
}

// UpdateDishRequest changes only the fields that are present.
type UpdateDishRequest struct {
	Name        *string `db:"name"        json:"name"        validate:"omitempty,min=1,max=100"`
	CategoryID  *string `db:"category_id" json:"category_id" validate:"omitempty,uuid"`
	Price       *int64  `db:"price"       json:"price"       validate:"omitempty,gt=0"`
	Quantity    *int    `db:"quantity"    json:"quantity"    validate:"omitempty,min=0"`
	Description *string `db:"description" json:"description" validate:"omitempty,max=1000"`
}

func (r UpdateDishRequest) Empty() bool {
	return r == UpdateDishRequest{}
}

type ListDishesRequest struct {
	CategoryID string `json:"category_id" validate:"omitempty,uuid"`
	InStock    *bool  `json:"in_stock"`
	Name       string `json:"name"`
}

type DishResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Price        int64  `json:"price"`
	Quantity     int    `json:"quantity"`
	Description  string `json:"description,omitempty"`
	gDto.Metadata
}

func (r *DishResponse) FromModel(model model.Dish) {
	r.ID = model.ID
	r.Name = model.Name
	r.CategoryID = model.CategoryID
	r.CategoryName = model.CategoryName
	r.Price = model.Price
	r.Quantity = model.Quantity

	if model.Description != nil {
		r.Description = *model.Description
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetDishesResponse struct {
	Dishes    []DishResponse `json:"dishes"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetDishesResponse) FromModels(models []model.Dish, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Dishes = make([]DishResponse, len(models))
	for i, mod := range models {
		r.Dishes[i].FromModel(mod)
	}
}
