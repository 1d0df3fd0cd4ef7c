// Package sqlq builds the SQL statements shared by the store drivers. Only
// identifiers from closed sets are ever interpolated; every value is bound.
package sqlq

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
)

// Dialect selects the bind parameter syntax.
type Dialect int

const (
	// Dollar numbers parameters $1, $2, ... (PostgreSQL).
	Dollar Dialect = iota
	// Question uses ? for every parameter (SQLite).
	Question
)

func (d Dialect) placeholder(n int) string {
	if d == Question {
		return "?"
	}
	return "$" + strconv.Itoa(n)
}

// TaskColumns is the column list every task query selects, in scan order.
const TaskColumns = "id, user_id, title, description, status, created_at, updated_at"

// Statement is SQL text plus its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

// TaskList holds the count and page statements for one list request. Both
// share the same WHERE clause.
type TaskList struct {
	Count Statement
	Page  Statement
}

// BuildTaskList renders q for dialect d. q must already be normalised.
func BuildTaskList(d Dialect, q domain.TaskQuery) TaskList {
	var (
		conds []string
		args  []any
	)
	bind := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, col+" = "+d.placeholder(len(args)))
	}

	bind("user_id", q.UserID)
	if q.Status != nil {
		bind("status", string(*q.Status))
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	count := Statement{
		SQL:  "SELECT COUNT(*) FROM tasks" + where,
		Args: append([]any(nil), args...),
	}

	col, dir := orderBy(q.SortBy, q.Order)
	pageArgs := append(append([]any(nil), args...), q.Limit, q.Offset())
	page := Statement{
		SQL: fmt.Sprintf(
			"SELECT %s FROM tasks%s ORDER BY %s %s, id %s LIMIT %s OFFSET %s",
			TaskColumns, where, col, dir, dir,
			d.placeholder(len(args)+1), d.placeholder(len(args)+2),
		),
		Args: pageArgs,
	}

	return TaskList{Count: count, Page: page}
}

// orderBy maps the sort inputs onto their SQL spelling. Values outside the
// known sets fall back to created_at DESC.
func orderBy(f domain.SortField, o domain.SortOrder) (string, string) {
	col := "created_at"
	if f == domain.SortUpdatedAt {
		col = "updated_at"
	}
	dir := "DESC"
	if o == domain.SortAsc {
		dir = "ASC"
	}
	return col, dir
}

// UpdateTask renders the ownership-scoped partial update. Each field is
// COALESCEd so a NULL argument keeps the stored value. updated_at becomes the
// given time or one microsecond past the stored value, whichever is later, so
// it moves forward even against a concurrent writer.
func UpdateTask(d Dialect) string {
	p := d.placeholder
	bump := "GREATEST(%s, updated_at + interval '1 microsecond')"
	if d == Question {
		// Stored as integer microseconds.
		bump = "MAX(%s, updated_at + 1)"
	}
	return fmt.Sprintf(`UPDATE tasks
SET title = COALESCE(%s, title),
    description = COALESCE(%s, description),
    status = COALESCE(%s, status),
    updated_at = %s
WHERE id = %s AND user_id = %s
RETURNING %s`, p(1), p(2), p(3), fmt.Sprintf(bump, p(4)), p(5), p(6), TaskColumns)
}
