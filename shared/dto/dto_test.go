package dto_test

import (
	"bistro/shared/constant"
	"bistro/shared/dto"
	"bistro/shared/model"
	"bistro/shared/timezone"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_FromModel(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	source := model.NewMetadata(created, "admin")
	source.ModifiedAt = created.Add(time.Hour)
	source.ModifiedBy = "waiter-1"

	var metadata dto.Metadata
	metadata.FromModel(source)

	assert.Equal(t, timezone.Format(created, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(created.Add(time.Hour), constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "admin", metadata.CreatedBy)
	assert.Equal(t, "waiter-1", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		paged bool
		want  dto.QueryParams
	}{
		{
			name:  "explicit values",
			query: "page=2&limit=20&sort_by=name&sort_dir=asc",
			want:  dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:  "paged defaults",
			paged: true,
			want:  dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name: "unpaged stays empty",
			want: dto.QueryParams{},
		},
		{
			name:  "garbage numbers fall back",
			query: "page=abc&limit=-4",
			paged: true,
			want:  dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "zero page falls back",
			query: "page=0",
			paged: true,
			want:  dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "limit is capped",
			query: "limit=5000",
			want:  dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:  "unknown direction ignored",
			query: "sort_by=price&sort_dir=sideways",
			want:  dto.QueryParams{SortBy: "price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/dishes?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.paged)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, dto.QueryParams{Page: 3, Limit: 20}.Offset())
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name   string
		filter dto.Filter
		clause string
		args   map[string]any
	}{
		{
			name:   "equality",
			filter: dto.Eq("dishes", "category_id", "c1"),
			clause: "dishes.category_id = :category_id",
			args:   map[string]any{"category_id": "c1"},
		},
		{
			name:   "named bound",
			filter: dto.Filter{Field: "starts_at", ArgName: "window_end", Value: 5, Operator: dto.FilterOperatorLess},
			clause: "starts_at < :window_end",
			args:   map[string]any{"window_end": 5},
		},
		{
			name:   "like",
			filter: dto.Filter{Field: "name", Value: "soup", Operator: dto.FilterOperatorLike},
			clause: "LOWER(name) LIKE LOWER(:name)",
			args:   map[string]any{"name": "%soup%"},
		},
		{
			name:   "in over slice",
			filter: dto.Filter{Field: "status", Value: []string{"open", "closed"}, Operator: dto.FilterOperatorIn},
			clause: "status IN (:status_0, :status_1)",
			args:   map[string]any{"status_0": "open", "status_1": "closed"},
		},
		{
			name:   "in over scalar",
			filter: dto.Filter{Field: "status", Value: "open", Operator: dto.FilterOperatorIn},
			clause: "status IN (:status)",
			args:   map[string]any{"status": "open"},
		},
		{
			name:   "in over empty set",
			filter: dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			clause: "FALSE",
			args:   map[string]any{},
		},
		{
			name:   "is null",
			filter: dto.Filter{Table: "shifts", Field: "ended_at", Operator: dto.FilterIsNull},
			clause: "shifts.ended_at IS NULL",
			args:   map[string]any{},
		},
		{
			name:   "unknown operator matches nothing",
			filter: dto.Filter{Field: "x", Value: 1, Operator: "between"},
			clause: "FALSE",
			args:   map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.clause, clause)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.And(
		dto.Eq("", "table_id", "t1"),
		dto.FilterGroup{
			Operator: dto.FilterGroupOperatorOr,
			Filters: []any{
				dto.Filter{Field: "status", Value: "active", Operator: dto.FilterOperatorEq},
				dto.Filter{Field: "ended_at", Operator: dto.FilterIsNull},
			},
		},
		"not a filter",
	)

	clause, args := group.GetWhereClause()

	require.Equal(t, "(table_id = :table_id AND (status = :status OR ended_at IS NULL) AND FALSE)", clause)
	assert.Equal(t, map[string]any{"table_id": "t1", "status": "active"}, args)

	mistyped := dto.And(dto.Filter{Field: "id", Value: "t1", Operator: "equals"})
	clause, args = mistyped.GetWhereClause()
	assert.Equal(t, "(FALSE)", clause)
	assert.Empty(t, args)

	empty := dto.And()
	clause, args = empty.GetWhereClause()
	assert.Empty(t, clause)
	assert.Empty(t, args)
}
