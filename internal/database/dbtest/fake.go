// Package dbtest provides an in-memory database.DB whose answers are scripted
// per query.
package dbtest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"tutor-board/internal/database"
)

// Call is one statement seen by the fake.
type Call struct {
	Query string
	Args  []any
}

// DB records every statement. Handlers pick the first rule whose fragment is
// contained in the query; unmatched Exec calls succeed with one affected row.
type DB struct {
	mu sync.Mutex

	Calls     []Call
	ExecRules []ExecRule
	RowRules  []RowRule
	Commits   int
	Rollbacks int
	BeginErr  error
	Closed    bool
}

type ExecRule struct {
	Fragment string
	Affected int64
	Err      error
}

// RowRule answers Query and QueryRow. Rows holds one value slice per row.
type RowRule struct {
	Fragment string
	Rows     [][]any
	Err      error
}

func New() *DB { return &DB{} }

func (d *DB) OnExec(fragment string, affected int64, err error) *DB {
	d.ExecRules = append(d.ExecRules, ExecRule{Fragment: fragment, Affected: affected, Err: err})
	return d
}

func (d *DB) OnQuery(fragment string, rows [][]any, err error) *DB {
	d.RowRules = append(d.RowRules, RowRule{Fragment: fragment, Rows: rows, Err: err})
	return d
}

// Executed returns the calls whose query contains fragment.
func (d *DB) Executed(fragment string) []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Call
	for _, c := range d.Calls {
		if strings.Contains(c.Query, fragment) {
			out = append(out, c)
		}
	}
	return out
}

func (d *DB) record(query string, args []any) {
	d.mu.Lock()
	d.Calls = append(d.Calls, Call{Query: query, Args: args})
	d.mu.Unlock()
}

func (d *DB) Ping(context.Context) error { return nil }

func (d *DB) Close() error {
	d.Closed = true
	return nil
}

func (d *DB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	d.record(query, args)
	for _, r := range d.ExecRules {
		if strings.Contains(query, r.Fragment) {
			return r.Affected, r.Err
		}
	}
	return 1, nil
}

func (d *DB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	d.record(query, args)
	for _, r := range d.RowRules {
		if strings.Contains(query, r.Fragment) {
			if r.Err != nil {
				return nil, r.Err
			}
			return &rows{data: r.Rows, idx: -1}, nil
		}
	}
	return &rows{idx: -1}, nil
}

func (d *DB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	rs, err := d.Query(ctx, query, args...)
	if err != nil {
		return row{err: err}
	}
	r := rs.(*rows)
	if len(r.data) == 0 {
		return row{err: database.ErrNoRows}
	}
	return row{values: r.data[0]}
}

func (d *DB) Begin(context.Context) (database.Tx, error) {
	if d.BeginErr != nil {
		return nil, d.BeginErr
	}
	return &tx{db: d}, nil
}

type tx struct {
	db   *DB
	done bool
}

func (t *tx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return t.db.Exec(ctx, query, args...)
}

func (t *tx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, query, args...)
}

func (t *tx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.db.QueryRow(ctx, query, args...)
}

func (t *tx) Commit(context.Context) error {
	if t.done {
		return errors.New("tx already closed")
	}
	t.done = true
	t.db.mu.Lock()
	t.db.Commits++
	t.db.mu.Unlock()
	return nil
}

func (t *tx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.db.mu.Lock()
	t.db.Rollbacks++
	t.db.mu.Unlock()
	return nil
}

type rows struct {
	data [][]any
	idx  int
}

func (r *rows) Close()     {}
func (r *rows) Err() error { return nil }

func (r *rows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *rows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("scan outside result set")
	}
	return assign(r.data[r.idx], dest)
}

type row struct {
	values []any
	err    error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d destinations", len(values), len(dest))
	}
	for i, v := range values {
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("scan: destination %d is not a pointer", i)
		}
		target := dv.Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		sv := reflect.ValueOf(v)
		if !sv.Type().AssignableTo(target.Type()) {
			if !sv.Type().ConvertibleTo(target.Type()) {
				return fmt.Errorf("scan: cannot assign %T to %s", v, target.Type())
			}
			sv = sv.Convert(target.Type())
		}
		target.Set(sv)
	}
	return nil
}

var _ database.DB = (*DB)(nil)
