package repository

import (
	"bistro/infras/otel"
	"bistro/infras/postgres"
	"bistro/shared/constant"
	"bistro/shared/dto"
	"bistro/shared/failure"
	"bistro/shared/logger"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

// setPrefix keeps SET arguments apart from WHERE arguments on the same column.
const setPrefix = "set_"

var errRequiredFilter = errors.New("required filter")

// joiner is implemented by models whose rows are read across more than their own table.
type joiner interface {
	GetJoinQuery() string
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type column struct {
	name  string
	table string
	alias string
}

func (c column) expr() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return c.table + "." + c.name + " AS " + c.alias
	default:
		return c.table + "." + c.name
	}
}

// schema is what the generic repository knows about a model, derived once from its tags:
// db names the column, table moves it to a joined table, column renames it at the source.
type schema struct {
	entity     string
	table      string
	primary    string
	join       string
	columns    []column
	insertable []string
}

func describe(table string, typ reflect.Type) ([]column, []string) {
	var (
		columns    []column
		insertable []string
	)

	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, nestedInsertable := describe(table, field.Type)
			columns = append(columns, nested...)
			insertable = append(insertable, nestedInsertable...)

			continue
		}

		name := field.Tag.Get("db")
		if name == "" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table {
			insertable = append(insertable, name)
		}

		if source := field.Tag.Get("column"); source != "" {
			columns = append(columns, column{name: source, table: owner, alias: name})

			continue
		}

		columns = append(columns, column{name: name, table: owner})
	}

	return columns, insertable
}

func (s *schema) selectList(only ...string) string {
	exprs := make([]string, 0, len(s.columns))

	for _, col := range s.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.expr())
	}

	return strings.Join(exprs, ", ")
}

func (s *schema) insertQuery() string {
	placeholders := make([]string, len(s.insertable))
	for i, name := range s.insertable {
		placeholders[i] = ":" + name
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.table, strings.Join(s.insertable, ", "), strings.Join(placeholders, ", "))
}

// orderBy sorts by the requested column and then the primary key so pages are stable.
func (s *schema) orderBy(params dto.QueryParams) string {
	tieBreak := s.table + "." + s.primary

	if params.SortBy == "" || params.SortBy == tieBreak {
		return "ORDER BY " + tieBreak
	}

	dir := params.SortDir
	if dir == "" {
		dir = dto.SortDirAsc
	}

	return fmt.Sprintf("ORDER BY %s %s, %s", params.SortBy, dir, tieBreak)
}

func where(filter dto.FilterGroup) (string, map[string]any) {
	clause, args := filter.GetWhereClause()
	if clause == "" {
		return "", map[string]any{}
	}

	return "WHERE " + clause, args
}

func paginate(params dto.QueryParams, args map[string]any) string {
	if params.Limit < 1 {
		return ""
	}

	args["limit"] = params.Limit
	if params.Page < 1 {
		return "LIMIT :limit"
	}

	args["offset"] = params.Offset()

	return "LIMIT :limit OFFSET :offset"
}

// Repository is the shared CRUD layer over sqlx named statements. Reads go to the read pool
// and writes to the write pool; *Tx variants run on a caller's transaction.
type Repository[T any] struct {
	db     *postgres.Connection
	otel   otel.Otel
	schema schema
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	s := schema{entity: entityName, table: tableName, primary: primaryColumn}
	s.columns, s.insertable = describe(tableName, reflect.TypeOf(zero))

	if j, ok := any(zero).(joiner); ok {
		s.join = j.GetJoinQuery()
	}

	return Repository[T]{
		db:     dbConnection,
		otel:   otl,
		schema: s,
	}
}

func (repo *Repository[T]) trace(ctx context.Context, op, query string) (context.Context, otel.Scope) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.schema.entity, op))
	if query != "" {
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	}

	return ctx, scope
}

// fail logs and traces a storage error, then classifies it. conflict is the message used
// when a constraint violation surfaces.
func (repo *Repository[T]) fail(scope otel.Scope, op string, err error, conflict string) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return failure.FromStorage(fmt.Errorf("failed to %s %s: %w", op, repo.schema.entity, err), conflict)
}

func (repo *Repository[T]) read(ctx context.Context, query string, scan func(*sqlx.NamedStmt) error) error {
	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	return scan(stmt)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, "Insert", model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, tx *sqlx.Tx, model T) error {
	return repo.insert(ctx, tx, "InsertTx", model)
}

// InsertBulkTx writes all models in one multi-row statement. An empty slice is a no-op.
func (repo *Repository[T]) InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.insert(ctx, tx, "InsertBulkTx", models)
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, op string, arg any) error {
	query := repo.schema.insertQuery()

	ctx, scope := repo.trace(ctx, op, query)
	defer scope.End()

	if _, err := exec.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, "insert", err, repo.schema.entity+" already exists")
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	cond, args := where(filter)
	if cond == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.schema.table, cond)

	ctx, scope := repo.trace(ctx, "Exist", query)
	defer scope.End()

	var exist bool

	err := repo.read(ctx, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	})
	if err != nil {
		return false, repo.fail(scope, "check", err, "")
	}

	return exist, nil
}

// Get returns the first matching row, or the zero model when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	cond, args := where(filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.schema.selectList(columns...), repo.schema.table, repo.schema.join, cond)

	ctx, scope := repo.trace(ctx, "Get", query)
	defer scope.End()

	var model T

	err := repo.read(ctx, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &model, args)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get", err, "")
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	cond, args := where(filter)
	page := paginate(params, args)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s %s",
		repo.schema.selectList(columns...), repo.schema.table, repo.schema.join, cond, repo.schema.orderBy(params), page)

	ctx, scope := repo.trace(ctx, "GetAll", query)
	defer scope.End()

	models := []T{}

	err := repo.read(ctx, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})
	if err != nil {
		return nil, repo.fail(scope, "list", err, "")
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	cond, args := where(filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.schema.table, repo.schema.primary, repo.schema.table, repo.schema.join, cond)

	ctx, scope := repo.trace(ctx, "Count", query)
	defer scope.End()

	var count int

	err := repo.read(ctx, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	})
	if err != nil {
		return 0, repo.fail(scope, "count", err, "")
	}

	return count, nil
}

// Update sets the given columns on every matching row. An empty filter is refused.
func (repo *Repository[T]) Update(ctx context.Context, changes map[string]any, filter dto.FilterGroup) error {
	cond, args := where(filter)
	if cond == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(changes))
	for _, name := range slices.Sorted(maps.Keys(changes)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s%s", name, setPrefix, name))
		args[setPrefix+name] = changes[name]
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.schema.table, strings.Join(assignments, ", "), cond)

	ctx, scope := repo.trace(ctx, "Update", query)
	defer scope.End()

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "update", err, repo.schema.entity+" already exists")
	}

	return nil
}

// Delete removes every matching row. An empty filter is refused.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	cond, args := where(filter)
	if cond == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.schema.table, cond)

	ctx, scope := repo.trace(ctx, "Delete", query)
	defer scope.End()

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "delete", err, repo.schema.entity+" is still referenced")
	}

	return nil
}
