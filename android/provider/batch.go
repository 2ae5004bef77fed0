package provider

import (
	"context"
	"database/sql"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// OpType is the kind of one batch operation.
type OpType int

const (
	// OpInsert inserts one row.
	OpInsert OpType = iota + 1
	// OpUpdate updates the rows matching the selection.
	OpUpdate
	// OpDelete deletes the rows matching the selection.
	OpDelete
)

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

var knownTables = map[string]bool{
	TableContacts:    true,
	TableRawContacts: true,
	TableData:        true,
}

// Operation is one step of a batch applied by ApplyBatch. Build it with
// NewInsert, NewUpdate or NewDelete and the With methods.
type Operation struct {
	Type     OpType
	Table    string
	values   map[string]any
	backRefs map[string]int
	where    string
	args     []any
}

// OpResult reports the outcome of one operation. ID is the new row id for
// inserts; Count is the number of affected rows.
type OpResult struct {
	ID    int64
	Count int64
}

// NewInsert starts an insert into table.
func NewInsert(table string) *Operation {
	return &Operation{Type: OpInsert, Table: table}
}

// NewUpdate starts an update of table.
func NewUpdate(table string) *Operation {
	return &Operation{Type: OpUpdate, Table: table}
}

// NewDelete starts a delete from table.
func NewDelete(table string) *Operation {
	return &Operation{Type: OpDelete, Table: table}
}

// WithValue sets column to value.
func (o *Operation) WithValue(column string, value any) *Operation {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	o.values[column] = value
	return o
}

// WithValueBackReference sets column to the ID produced by the earlier
// operation at index opIndex of the same batch.
func (o *Operation) WithValueBackReference(column string, opIndex int) *Operation {
	if o.backRefs == nil {
		o.backRefs = make(map[string]int)
	}
	o.backRefs[column] = opIndex
	return o
}

// WithSelection sets the WHERE clause of an update or delete.
func (o *Operation) WithSelection(where string, args ...any) *Operation {
	o.where = where
	o.args = args
	return o
}

// ApplyBatch runs ops in order inside one transaction. Either every
// operation is applied or none is.
func (p *Provider) ApplyBatch(ctx context.Context, ops []*Operation) ([]OpResult, error) {
	if p.readOnly {
		return nil, errors.New("provider: database is read-only")
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "provider: beginning transaction failed")
	}
	defer tx.Rollback()

	results := make([]OpResult, 0, len(ops))
	for i, op := range ops {
		res, err := op.exec(ctx, tx, results)
		if err != nil {
			return nil, errors.Wrapf(err, "provider: batch operation %d failed", i)
		}
		results = append(results, res)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "provider: committing transaction failed")
	}
	p.log.Debugw("applied batch", "operations", len(ops))
	return results, nil
}

func (o *Operation) exec(ctx context.Context, tx *sql.Tx, prior []OpResult) (OpResult, error) {
	query, args, err := o.build(prior)
	if err != nil {
		return OpResult{}, err
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return OpResult{}, err
	}

	var out OpResult
	if out.Count, err = res.RowsAffected(); err != nil {
		return OpResult{}, err
	}
	if o.Type == OpInsert {
		if out.ID, err = res.LastInsertId(); err != nil {
			return OpResult{}, err
		}
	}
	return out, nil
}

func (o *Operation) build(prior []OpResult) (string, []any, error) {
	if !knownTables[o.Table] {
		return "", nil, errors.Errorf("unknown table %q", o.Table)
	}

	values := maps.Clone(o.values)
	if values == nil {
		values = make(map[string]any)
	}
	for column, idx := range o.backRefs {
		if idx < 0 || idx >= len(prior) {
			return "", nil, errors.Errorf("back reference to operation %d out of range", idx)
		}
		values[column] = prior[idx].ID
	}

	columns := slices.Sorted(maps.Keys(values))
	for _, column := range columns {
		if !identPattern.MatchString(column) {
			return "", nil, errors.Errorf("invalid column %q", column)
		}
	}
	args := make([]any, 0, len(columns)+len(o.args))
	for _, column := range columns {
		args = append(args, values[column])
	}

	switch o.Type {
	case OpInsert:
		if len(columns) == 0 {
			return "INSERT INTO " + o.Table + " DEFAULT VALUES", nil, nil
		}
		query := "INSERT INTO " + o.Table + " (" + strings.Join(columns, ", ") + ") VALUES (" + placeholders(len(columns)) + ")"
		return query, args, nil
	case OpUpdate:
		if len(columns) == 0 {
			return "", nil, errors.New("update without values")
		}
		sets := make([]string, 0, len(columns))
		for _, column := range columns {
			sets = append(sets, column+" = ?")
		}
		query := "UPDATE " + o.Table + " SET " + strings.Join(sets, ", ")
		return withWhere(query, o.where), append(args, o.args...), nil
	case OpDelete:
		return withWhere("DELETE FROM "+o.Table, o.where), o.args, nil
	default:
		return "", nil, errors.Errorf("unknown operation type %d", o.Type)
	}
}

func withWhere(query, where string) string {
	if strings.TrimSpace(where) == "" {
		return query
	}
	return query + " WHERE " + where
}
