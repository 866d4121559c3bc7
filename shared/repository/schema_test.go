package repository

import (
	"bistro/shared/dto"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type audit struct {
	CreatedBy string `db:"created_by"`
}

type dishRow struct {
	audit
	ID       string `db:"id"`
	Name     string `db:"name"`
	Category string `column:"name" db:"category_name" table:"dish_categories"`
	Ignored  string
}

func TestDescribe(t *testing.T) {
	columns, insertable := describe("dishes", reflect.TypeOf(dishRow{}))

	assert.Equal(t, []string{"created_by", "id", "name"}, insertable)
	assert.Equal(t, []column{
		{name: "created_by", table: "dishes"},
		{name: "id", table: "dishes"},
		{name: "name", table: "dishes"},
		{name: "name", table: "dish_categories", alias: "category_name"},
	}, columns)
}

func TestSchema_Queries(t *testing.T) {
	s := schema{entity: "dish", table: "dishes", primary: "id"}
	s.columns, s.insertable = describe("dishes", reflect.TypeOf(dishRow{}))

	assert.Equal(t, "INSERT INTO dishes (created_by, id, name) VALUES (:created_by, :id, :name)", s.insertQuery())
	assert.Equal(t, "dishes.created_by, dishes.id, dishes.name, dish_categories.name AS category_name", s.selectList())
	assert.Equal(t, "dishes.id, dishes.name, dish_categories.name AS category_name", s.selectList("id", "name"))

	assert.Equal(t, "ORDER BY dishes.id", s.orderBy(dto.QueryParams{}))
	assert.Equal(t, "ORDER BY dishes.name ASC, dishes.id", s.orderBy(dto.QueryParams{SortBy: "dishes.name"}))
	assert.Equal(t, "ORDER BY dishes.price DESC, dishes.id", s.orderBy(dto.QueryParams{SortBy: "dishes.price", SortDir: dto.SortDirDesc}))
}

func TestPaginate(t *testing.T) {
	args := map[string]any{}
	assert.Empty(t, paginate(dto.QueryParams{}, args))
	assert.Empty(t, args)

	args = map[string]any{}
	assert.Equal(t, "LIMIT :limit", paginate(dto.QueryParams{Limit: 5}, args))
	assert.Equal(t, map[string]any{"limit": 5}, args)

	args = map[string]any{}
	assert.Equal(t, "LIMIT :limit OFFSET :offset", paginate(dto.QueryParams{Page: 3, Limit: 5}, args))
	assert.Equal(t, map[string]any{"limit": 5, "offset": 10}, args)
}

func TestWhere(t *testing.T) {
	cond, args := where(dto.FilterGroup{})
	assert.Empty(t, cond)
	assert.Empty(t, args)

	cond, args = where(dto.And(dto.Eq("dishes", "id", "d1")))
	assert.Equal(t, "WHERE (dishes.id = :id)", cond)
	assert.Equal(t, map[string]any{"id": "d1"}, args)
}
