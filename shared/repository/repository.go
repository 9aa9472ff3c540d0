package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"coating/infras/otel"
	"coating/infras/postgres"
	"coating/shared/constant"
	"coating/shared/dto"
	"coating/shared/logger"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
	errUnknownColumn  = errors.New("unknown column")

	// ErrNoRowsAffected is returned by Update and Delete when the filter matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// column is one selectable field. alias is set when the struct tag name differs from the column name.
type column struct {
	name  string
	table string
	alias string
}

func (c column) qualified() string {
	if c.table == "" {
		return c.name
	}

	return c.table + "." + c.name
}

func (c column) selectable() string {
	if c.table != "" && c.alias != "" {
		return c.qualified() + " AS " + c.alias
	}

	return c.qualified()
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// Repository is the generic record store shared by every domain. T is scanned with sqlx db tags;
// a `table` tag marks a joined column and `column` renames it.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

type joiner interface {
	GetJoinQuery() string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if j, ok := any(zero).(joiner); ok {
		join = j.GetJoinQuery()
	}

	return Repository[T]{
		db:            db,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

// read runs a named query on the read connection. scan receives the prepared statement.
func (repo *Repository[T]) read(ctx context.Context, scope otel.Scope, action, query string, args map[string]any, scan func(*sqlx.NamedStmt) error) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err = scan(stmt); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) write(ctx context.Context, scope otel.Scope, exec execer, action, query string, arg any) (sql.Result, error) {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := exec.NamedExecContext(ctx, query, arg)
	if err != nil {
		return nil, repo.fail(scope, action, err)
	}

	return result, nil
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, model T) error {
	ctx, scope := repo.scope(ctx, "insert")
	defer scope.End()

	placeholders := make([]string, len(repo.InsertColumns))
	for i, col := range repo.InsertColumns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))

	_, err := repo.write(ctx, scope, exec, "insert data", query, model)

	return err
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, tx *sqlx.Tx, model T) error {
	return repo.insert(ctx, tx, model)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	err := repo.read(ctx, scope, "check exist data", query, args, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	})

	return exist, err
}

// Get returns the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var model T

	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.getSelectQuery(ctx, columns...), repo.table, repo.join, where)
	err := repo.read(ctx, scope, "get data", query, args, func(stmt *sqlx.NamedStmt) error {
		if err := stmt.GetContext(ctx, &model, args); !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		return nil
	})

	return model, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var pagination string

	switch {
	case params.Page > 0 && params.Limit > 0:
		args["limit"] = params.Limit
		args["offset"] = (params.Page - 1) * params.Limit
		pagination = "LIMIT :limit OFFSET :offset"
	case params.Limit > 0:
		args["limit"] = params.Limit
		pagination = "LIMIT :limit"
	}

	var models []T

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s %s", repo.getSelectQuery(ctx, columns...), repo.table, repo.join, where, repo.orderBy(params.OrderTerms()), pagination)
	err := repo.read(ctx, scope, "get all data", query, args, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})

	return models, err
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var count int

	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)
	err := repo.read(ctx, scope, "count data", query, args, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	})

	return count, err
}

type groupCount struct {
	Value string `db:"value"`
	Total int    `db:"total"`
}

// CountBy counts rows per distinct value of one of the repository's own columns.
func (repo *Repository[T]) CountBy(ctx context.Context, columnName string, filter dto.FilterGroup) (map[string]int, error) {
	ctx, scope := repo.scope(ctx, "CountBy")
	defer scope.End()

	col, ok := repo.column(columnName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownColumn, columnName)
	}

	where, args := repo.BuildWhereClause(ctx, filter)
	target := col.qualified()

	var groups []groupCount

	query := fmt.Sprintf("SELECT %s AS value, COUNT(%s.%s) AS total FROM %s %s %s GROUP BY %s", target, repo.table, repo.primaryColumn, repo.table, repo.join, where, target)
	err := repo.read(ctx, scope, "count data by "+columnName, query, args, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &groups, args)
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(groups))
	for _, group := range groups {
		counts[group.Value] = group.Total
	}

	return counts, nil
}

// Delete removes the rows matching filter. An empty filter is refused.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	result, err := repo.write(ctx, scope, repo.db.Write, "delete data", fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args)
	if err != nil {
		return err
	}

	return affected(result)
}

// Update sets the columns in mod on the rows matching filter. An empty filter is refused.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, col+" = :"+col)
	}

	maps.Copy(args, mod)

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where)

	result, err := repo.write(ctx, scope, repo.db.Write, "update data", query, args)
	if err != nil {
		return err
	}

	return affected(result)
}

func affected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if rows == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (repo *Repository[T]) getSelectQuery(_ context.Context, only ...string) string {
	selected := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		selected = append(selected, col.selectable())
	}

	return strings.Join(selected, ", ")
}

func (repo *Repository[T]) column(name string) (column, bool) {
	idx := slices.IndexFunc(repo.columns, func(col column) bool {
		return col.name == name || (col.alias != "" && col.alias == name)
	})
	if idx < 0 {
		return column{}, false
	}

	return repo.columns[idx], true
}

// orderBy drops terms on unknown columns so sort params never reach the query verbatim.
func (repo *Repository[T]) orderBy(orders []dto.Order) string {
	terms := make([]string, 0, len(orders))

	for _, order := range orders {
		col, ok := repo.column(order.Column)
		if !ok {
			continue
		}

		dir := strings.ToUpper(order.Dir)
		if dir != dto.SortDirDesc {
			dir = dto.SortDirAsc
		}

		terms = append(terms, col.qualified()+" "+dir)
	}

	if len(terms) == 0 {
		return ""
	}

	return "ORDER BY " + strings.Join(terms, ", ")
}

// BuildWhereClause renders filter with a leading WHERE, or nothing when the filter is empty.
func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where + " ", args
}

func getColumns(table string, typ reflect.Type) (columns []column, insertColumns []string) {
	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)
		}

		tag := field.Tag.Get("db")
		if tag == "" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" || owner == table {
			owner = table
			insertColumns = append(insertColumns, tag)
		}

		if name := field.Tag.Get("column"); name != "" {
			columns = append(columns, column{name: name, table: owner, alias: tag})
		} else {
			columns = append(columns, column{name: tag, table: owner})
		}
	}

	return columns, insertColumns
}
