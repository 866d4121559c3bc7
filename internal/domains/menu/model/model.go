package model

import "bistro/shared/model"

const (
	CategoryTableName  = "dish_categories"
	CategoryEntityName = "category"
	DishTableName      = "dishes"
	DishEntityName     = "dish"

	FieldID         = "id"
	FieldName       = "name"
	FieldCategoryID = "category_id"
	FieldPrice      = "price"
	FieldQuantity   = "quantity"

	// CacheDishList prefixes cached dish listings. Any stock or menu mutation clears it.
	CacheDishList     = "menu:dishes"
	CacheCategoryList = "menu:categories"
)

type Category struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}

type Dish struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	CategoryID   string  `db:"category_id"`
	CategoryName string  `column:"name" db:"category_name" table:"dish_categories"`
	Price        int64   `db:"price"`
	Quantity     int     `db:"quantity"`
	Description  *string `db:"description"`
	model.Metadata
}

func (Dish) GetJoinQuery() string {
	return "JOIN dish_categories ON dish_categories.id = dishes.category_id"
}
