package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorLess      = "less"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreater   = "greater"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNull            = "is_null"
	FilterIsNotNull         = "is_not_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// matchNothing stands in for a predicate that cannot be rendered, so a malformed filter
// narrows a query to no rows instead of widening it to all of them.
const matchNothing = "FALSE"

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLess:      "<",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreater:   ">",
	FilterOperatorGreaterEq: ">=",
}

// Filter is one predicate over a column. Values always travel as named arguments; ArgName
// disambiguates two predicates on the same column, such as the ends of a date window.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

// Eq is the common "table.field = value" predicate.
func Eq(table, field string, value any) Filter {
	return Filter{Table: table, Field: field, Value: value, Operator: FilterOperatorEq}
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) arg() string {
	if f.ArgName != "" {
		return f.ArgName
	}

	return f.Field
}

// GetWhereClause renders the predicate and its named arguments. Unknown operators match
// no rows.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	column, name := f.column(), f.arg()

	if symbol, ok := comparisons[f.Operator]; ok {
		return fmt.Sprintf("%s %s :%s", column, symbol, name), map[string]any{name: f.Value}
	}

	switch f.Operator {
	case FilterOperatorLike:
		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, name), map[string]any{name: fmt.Sprintf("%%%v%%", f.Value)}
	case FilterOperatorIn:
		return f.in(column, name)
	case FilterIsNull:
		return column + " IS NULL", map[string]any{}
	case FilterIsNotNull:
		return column + " IS NOT NULL", map[string]any{}
	}

	log.Warn().Str("column", column).Str("operator", f.Operator).Msg("unknown filter operator matches nothing")

	return matchNothing, map[string]any{}
}

// in expands a slice into one named argument per element. A scalar is a one-element set and
// an empty set matches nothing.
func (f *Filter) in(column, name string) (string, map[string]any) {
	args := map[string]any{}

	value := reflect.ValueOf(f.Value)
	if value.Kind() != reflect.Slice && value.Kind() != reflect.Array {
		args[name] = f.Value

		return fmt.Sprintf("%s IN (:%s)", column, name), args
	}

	if value.Len() == 0 {
		return matchNothing, args
	}

	placeholders := make([]string, value.Len())
	for idx := range value.Len() {
		key := fmt.Sprintf("%s_%d", name, idx)
		args[key] = value.Index(idx).Interface()
		placeholders[idx] = ":" + key
	}

	return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")), args
}

// FilterGroup joins filters and nested groups with one operator, AND when unset. Members
// other than Filter and FilterGroup match no rows.
type FilterGroup struct {
	Filters  []any
	Operator string
}

// And groups the predicates with AND.
func And(filters ...any) FilterGroup {
	return FilterGroup{Operator: FilterGroupOperatorAnd, Filters: filters}
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, item := range f.Filters {
		var (
			clause string
			params map[string]any
		)

		switch filter := item.(type) {
		case Filter:
			clause, params = filter.GetWhereClause()
		case FilterGroup:
			clause, params = filter.GetWhereClause()
		default:
			log.Warn().Str("type", fmt.Sprintf("%T", item)).Msg("unsupported filter member matches nothing")

			clause, params = matchNothing, nil
		}

		if clause == "" {
			continue
		}

		clauses = append(clauses, clause)
		maps.Copy(args, params)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(clauses, " "+operator+" ") + ")", args
}
