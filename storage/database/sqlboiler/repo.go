package boiledrepos

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/volatiletech/sqlboiler/v4/queries"
	"github.com/volatiletech/strmangle"

	"github.com/trezcool/studysphere/core"
)

// table describes how the rows of a table are read and written.
type table struct {
	name    string
	columns []string // every column but the primary key
}

func (t table) selectCols() string {
	return `"id", "` + strings.Join(t.columns, `", "`) + `"`
}

func (t table) selectQuery() string {
	return fmt.Sprintf(`SELECT %s FROM "%s"`, t.selectCols(), t.name)
}

func (t table) insertQuery() string {
	return fmt.Sprintf(
		`INSERT INTO "%s" ("%s") VALUES (%s) RETURNING %s`,
		t.name, strings.Join(t.columns, `", "`), strmangle.Placeholders(true, len(t.columns), 1, 1), t.selectCols())
}

func (t table) updateQuery() string {
	return fmt.Sprintf(
		`UPDATE "%s" SET %s WHERE %s RETURNING %s`,
		t.name, strmangle.SetParamNames(`"`, `"`, 1, t.columns),
		strmangle.WhereClause(`"`, `"`, len(t.columns)+1, []string{"id"}), t.selectCols())
}

func (t table) deleteQuery() string {
	return fmt.Sprintf(`DELETE FROM "%s" WHERE "id" = $1`, t.name)
}

type baseRepository struct {
	exec core.DBExecutor
}

func (repo baseRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.exec
}

// insert scans the inserted row, every column included, into dest.
func (repo baseRepository) insert(ctx context.Context, tbl table, dest []interface{}, args []interface{}, exec []core.DBExecutor) error {
	err := queries.Raw(tbl.insertQuery(), args...).QueryRowContext(ctx, repo.getExec(exec)).Scan(dest...)
	return trapConstraintErr(err, tbl.name, false, "inserting into "+tbl.name)
}

func (repo baseRepository) all(ctx context.Context, tbl table, rows interface{}, exec []core.DBExecutor) error {
	err := queries.Raw(tbl.selectQuery()+` ORDER BY "id"`).Bind(ctx, repo.getExec(exec), rows)
	return errors.Wrap(err, "querying "+tbl.name)
}

// one binds the single row matching `where`, or returns notFound.
func (repo baseRepository) one(ctx context.Context, tbl table, row interface{}, notFound error, exec []core.DBExecutor, where string, args ...interface{}) error {
	err := queries.Raw(tbl.selectQuery()+" WHERE "+where, args...).Bind(ctx, repo.getExec(exec), row)
	return trapNoRowsErr(err, notFound, "finding "+tbl.name)
}

func (repo baseRepository) update(ctx context.Context, tbl table, dest []interface{}, notFound error, id int, args []interface{}, exec []core.DBExecutor) error {
	err := queries.Raw(tbl.updateQuery(), append(args, id)...).QueryRowContext(ctx, repo.getExec(exec)).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return trapConstraintErr(err, tbl.name, false, "updating "+tbl.name)
}

func (repo baseRepository) delete(ctx context.Context, tbl table, notFound error, id int, exec []core.DBExecutor) error {
	res, err := queries.Raw(tbl.deleteQuery(), id).ExecContext(ctx, repo.getExec(exec))
	if err != nil {
		return trapConstraintErr(err, tbl.name, true, "deleting from "+tbl.name)
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting from "+tbl.name)
	}
	if cnt == 0 {
		return notFound
	}
	return nil
}

// trapNoRowsErr maps "no rows" err to the entity's not found error.
func trapNoRowsErr(err, notFound error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return errors.Wrap(err, msg)
}

var (
	pqConstraintRe     = regexp.MustCompile(`^(.+)_(key|fkey)$`)
	sqliteConstraintRe = regexp.MustCompile(`constraint failed: (\w+)\.(\w+)`)
)

// trapConstraintErr maps the engine's integrity violations to *core.ConstraintError.
func trapConstraintErr(err error, tableName string, deleting bool, msg string) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		var kind core.ConstraintKind
		switch pqErr.Code {
		case "23505":
			kind = core.UniqueConstraint
		case "23503":
			kind = core.ForeignKeyConstraint
		default:
			return errors.Wrap(err, msg)
		}
		field := ""
		if m := pqConstraintRe.FindStringSubmatch(pqErr.Constraint); m != nil {
			field = strings.TrimPrefix(m[1], pqErr.Table+"_")
		}
		return &core.ConstraintError{Kind: kind, Table: tableName, Field: field, Delete: deleting, Err: err}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		var kind core.ConstraintKind
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			kind = core.UniqueConstraint
		case sqlite3.ErrConstraintForeignKey:
			kind = core.ForeignKeyConstraint
		default:
			return errors.Wrap(err, msg)
		}
		field := ""
		if m := sqliteConstraintRe.FindStringSubmatch(liteErr.Error()); m != nil {
			field = m[2]
		}
		return &core.ConstraintError{Kind: kind, Table: tableName, Field: field, Delete: deleting, Err: err}
	}

	return errors.Wrap(err, msg)
}
