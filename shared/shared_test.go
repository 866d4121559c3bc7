package shared_test

import (
	"bistro/shared"
	"bistro/shared/cache/mocks"
	"bistro/shared/constant"
	"bistro/shared/dto"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "zero", input: "0", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "in-stock", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	assert.Equal(t, 0, shared.ConvertStringToInt(""))
	assert.Equal(t, 7, shared.ConvertStringToInt("7"))
	assert.Equal(t, 0, shared.ConvertStringToInt("july"))
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type dishPatch struct {
		Name     string `db:"name"`
		Price    int64  `db:"price"`
		Quantity *int   `db:"quantity"`
		Note     string
	}

	zero := 0
	result := shared.TransformFields(dishPatch{Name: "Borscht", Quantity: &zero, Note: "skip"}, "admin-1")

	assert.Equal(t, "Borscht", result["name"])
	assert.Equal(t, &zero, result["quantity"])
	assert.NotContains(t, result, "price")
	assert.Equal(t, "admin-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("t-1", "id", "tables")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(tables.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "t-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "menu:dish:42", shared.BuildCacheKey("menu:dish", "42"))
	assert.Equal(t, "pending", shared.BuildCacheKey("pending"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	soups := shared.FilterByID("soups", "category_id", "dishes")
	mains := shared.FilterByID("mains", "category_id", "dishes")

	first := shared.BuildCacheKeyWithQuery("menu:dishes", params, soups)
	again := shared.BuildCacheKeyWithQuery("menu:dishes", params, soups)
	other := shared.BuildCacheKeyWithQuery("menu:dishes", params, mains)

	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "menu:dishes:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := mocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "menu:dishes*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "menu:dishes")

	mockCache.EXPECT().Clear(gomock.Any(), "menu:count*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "menu:count")
}

func boolPtr(b bool) *bool {
	return &b
}

func TestRestrictSort(t *testing.T) {
	allowed := map[string]string{"name": "dishes.name", "price": "dishes.price"}

	tests := []struct {
		name     string
		params   dto.QueryParams
		expected dto.QueryParams
	}{
		{
			name:     "whitelisted column is qualified",
			params:   dto.QueryParams{SortBy: "price", SortDir: dto.SortDirDesc},
			expected: dto.QueryParams{SortBy: "dishes.price", SortDir: dto.SortDirDesc},
		},
		{
			name:     "missing direction defaults to ascending",
			params:   dto.QueryParams{SortBy: "name"},
			expected: dto.QueryParams{SortBy: "dishes.name", SortDir: dto.SortDirAsc},
		},
		{
			name:     "unknown column falls back",
			params:   dto.QueryParams{SortBy: "1; DROP TABLE dishes", SortDir: dto.SortDirAsc},
			expected: dto.QueryParams{SortBy: "dishes.created_at", SortDir: dto.SortDirDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.RestrictSort(tt.params, allowed, "dishes.created_at", dto.SortDirDesc)
			assert.Equal(t, tt.expected, got)
		})
	}
}
