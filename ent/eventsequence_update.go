// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/revquiz/ent/eventsequence"
	"github.com/abhisek/revquiz/ent/predicate"
)

// EventSequenceUpdate is the builder for updating EventSequence entities.
type EventSequenceUpdate struct {
	config
	hooks    []Hook
	mutation *EventSequenceMutation
}

// Where appends a list predicates to the EventSequenceUpdate builder.
func (_u *EventSequenceUpdate) Where(ps ...predicate.EventSequence) *EventSequenceUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetNextVal sets the "next_val" field.
func (_u *EventSequenceUpdate) SetNextVal(v int64) *EventSequenceUpdate {
	_u.mutation.ResetNextVal()
	_u.mutation.SetNextVal(v)
	return _u
}

// SetNillableNextVal sets the "next_val" field if the given value is not nil.
func (_u *EventSequenceUpdate) SetNillableNextVal(v *int64) *EventSequenceUpdate {
	if v != nil {
		_u.SetNextVal(*v)
	}
	return _u
}

// AddNextVal adds value to the "next_val" field.
func (_u *EventSequenceUpdate) AddNextVal(v int64) *EventSequenceUpdate {
	_u.mutation.AddNextVal(v)
	return _u
}

// Mutation returns the EventSequenceMutation object of the builder.
func (_u *EventSequenceUpdate) Mutation() *EventSequenceMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *EventSequenceUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *EventSequenceUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *EventSequenceUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *EventSequenceUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *EventSequenceUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	_spec := sqlgraph.NewUpdateSpec(eventsequence.Table, eventsequence.Columns, sqlgraph.NewFieldSpec(eventsequence.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.NextVal(); ok {
		_spec.SetField(eventsequence.FieldNextVal, field.TypeInt64, value)
	}
	if value, ok := _u.mutation.AddedNextVal(); ok {
		_spec.AddField(eventsequence.FieldNextVal, field.TypeInt64, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{eventsequence.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// EventSequenceUpdateOne is the builder for updating a single EventSequence entity.
type EventSequenceUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *EventSequenceMutation
}

// SetNextVal sets the "next_val" field.
func (_u *EventSequenceUpdateOne) SetNextVal(v int64) *EventSequenceUpdateOne {
	_u.mutation.ResetNextVal()
	_u.mutation.SetNextVal(v)
	return _u
}

// SetNillableNextVal sets the "next_val" field if the given value is not nil.
func (_u *EventSequenceUpdateOne) SetNillableNextVal(v *int64) *EventSequenceUpdateOne {
	if v != nil {
		_u.SetNextVal(*v)
	}
	return _u
}

// AddNextVal adds value to the "next_val" field.
func (_u *EventSequenceUpdateOne) AddNextVal(v int64) *EventSequenceUpdateOne {
	_u.mutation.AddNextVal(v)
	return _u
}

// Mutation returns the EventSequenceMutation object of the builder.
func (_u *EventSequenceUpdateOne) Mutation() *EventSequenceMutation {
	return _u.mutation
}

// Where appends a list predicates to the EventSequenceUpdate builder.
func (_u *EventSequenceUpdateOne) Where(ps ...predicate.EventSequence) *EventSequenceUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *EventSequenceUpdateOne) Select(field string, fields ...string) *EventSequenceUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated EventSequence entity.
func (_u *EventSequenceUpdateOne) Save(ctx context.Context) (*EventSequence, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *EventSequenceUpdateOne) SaveX(ctx context.Context) *EventSequence {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *EventSequenceUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *EventSequenceUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *EventSequenceUpdateOne) sqlSave(ctx context.Context) (_node *EventSequence, err error) {
	_spec := sqlgraph.NewUpdateSpec(eventsequence.Table, eventsequence.Columns, sqlgraph.NewFieldSpec(eventsequence.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "EventSequence.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, eventsequence.FieldID)
		for _, f := range fields {
			if !eventsequence.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != eventsequence.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.NextVal(); ok {
		_spec.SetField(eventsequence.FieldNextVal, field.TypeInt64, value)
	}
	if value, ok := _u.mutation.AddedNextVal(); ok {
		_spec.AddField(eventsequence.FieldNextVal, field.TypeInt64, value)
	}
	_node = &EventSequence{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{eventsequence.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
