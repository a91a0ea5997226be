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
)

// EventSequenceCreate is the builder for creating a EventSequence entity.
type EventSequenceCreate struct {
	config
	mutation *EventSequenceMutation
	hooks    []Hook
	conflict []sql.ConflictOption
}

// SetNextVal sets the "next_val" field.
func (_c *EventSequenceCreate) SetNextVal(v int64) *EventSequenceCreate {
	_c.mutation.SetNextVal(v)
	return _c
}

// SetNillableNextVal sets the "next_val" field if the given value is not nil.
func (_c *EventSequenceCreate) SetNillableNextVal(v *int64) *EventSequenceCreate {
	if v != nil {
		_c.SetNextVal(*v)
	}
	return _c
}

// SetID sets the "id" field.
func (_c *EventSequenceCreate) SetID(v int) *EventSequenceCreate {
	_c.mutation.SetID(v)
	return _c
}

// Mutation returns the EventSequenceMutation object of the builder.
func (_c *EventSequenceCreate) Mutation() *EventSequenceMutation {
	return _c.mutation
}

// Save creates the EventSequence in the database.
func (_c *EventSequenceCreate) Save(ctx context.Context) (*EventSequence, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *EventSequenceCreate) SaveX(ctx context.Context) *EventSequence {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *EventSequenceCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *EventSequenceCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *EventSequenceCreate) defaults() {
	if _, ok := _c.mutation.NextVal(); !ok {
		v := eventsequence.DefaultNextVal
		_c.mutation.SetNextVal(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *EventSequenceCreate) check() error {
	if _, ok := _c.mutation.NextVal(); !ok {
		return &ValidationError{Name: "next_val", err: errors.New(`ent: missing required field "EventSequence.next_val"`)}
	}
	return nil
}

func (_c *EventSequenceCreate) sqlSave(ctx context.Context) (*EventSequence, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	if _spec.ID.Value != _node.ID {
		id := _spec.ID.Value.(int64)
		_node.ID = int(id)
	}
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *EventSequenceCreate) createSpec() (*EventSequence, *sqlgraph.CreateSpec) {
	var (
		_node = &EventSequence{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(eventsequence.Table, sqlgraph.NewFieldSpec(eventsequence.FieldID, field.TypeInt))
	)
	_spec.OnConflict = _c.conflict
	if id, ok := _c.mutation.ID(); ok {
		_node.ID = id
		_spec.ID.Value = id
	}
	if value, ok := _c.mutation.NextVal(); ok {
		_spec.SetField(eventsequence.FieldNextVal, field.TypeInt64, value)
		_node.NextVal = value
	}
	return _node, _spec
}

// OnConflict allows configuring the `ON CONFLICT` / `ON DUPLICATE KEY` clause
// of the `INSERT` statement. For example:
//
//	client.EventSequence.Create().
//		SetNextVal(v).
//		OnConflict(
//			// Update the row with the new values
//			// the was proposed for insertion.
//			sql.ResolveWithNewValues(),
//		).
//		// Override some of the fields with custom
//		// update values.
//		Update(func(u *ent.EventSequenceUpsert) {
//			SetNextVal(v+v).
//		}).
//		Exec(ctx)
func (_c *EventSequenceCreate) OnConflict(opts ...sql.ConflictOption) *EventSequenceUpsertOne {
	_c.conflict = opts
	return &EventSequenceUpsertOne{
		create: _c,
	}
}

// OnConflictColumns calls `OnConflict` and configures the columns
// as conflict target. Using this option is equivalent to using:
//
//	client.EventSequence.Create().
//		OnConflict(sql.ConflictColumns(columns...)).
//		Exec(ctx)
func (_c *EventSequenceCreate) OnConflictColumns(columns ...string) *EventSequenceUpsertOne {
	_c.conflict = append(_c.conflict, sql.ConflictColumns(columns...))
	return &EventSequenceUpsertOne{
		create: _c,
	}
}

type (
	// EventSequenceUpsertOne is the builder for "upsert"-ing
	//  one EventSequence node.
	EventSequenceUpsertOne struct {
		create *EventSequenceCreate
	}

	// EventSequenceUpsert is the "OnConflict" setter.
	EventSequenceUpsert struct {
		*sql.UpdateSet
	}
)

// SetNextVal sets the "next_val" field.
func (u *EventSequenceUpsert) SetNextVal(v int64) *EventSequenceUpsert {
	u.Set(eventsequence.FieldNextVal, v)
	return u
}

// UpdateNextVal sets the "next_val" field to the value that was provided on create.
func (u *EventSequenceUpsert) UpdateNextVal() *EventSequenceUpsert {
	u.SetExcluded(eventsequence.FieldNextVal)
	return u
}

// AddNextVal adds v to the "next_val" field.
func (u *EventSequenceUpsert) AddNextVal(v int64) *EventSequenceUpsert {
	u.Add(eventsequence.FieldNextVal, v)
	return u
}

// UpdateNewValues updates the mutable fields using the new values that were set on create except the ID field.
// Using this option is equivalent to using:
//
//	client.EventSequence.Create().
//		OnConflict(
//			sql.ResolveWithNewValues(),
//			sql.ResolveWith(func(u *sql.UpdateSet) {
//				u.SetIgnore(eventsequence.FieldID)
//			}),
//		).
//		Exec(ctx)
func (u *EventSequenceUpsertOne) UpdateNewValues() *EventSequenceUpsertOne {
	u.create.conflict = append(u.create.conflict, sql.ResolveWithNewValues())
	u.create.conflict = append(u.create.conflict, sql.ResolveWith(func(s *sql.UpdateSet) {
		if _, exists := u.create.mutation.ID(); exists {
			s.SetIgnore(eventsequence.FieldID)
		}
	}))
	return u
}

// Ignore sets each column to itself in case of conflict.
// Using this option is equivalent to using:
//
//	client.EventSequence.Create().
//	    OnConflict(sql.ResolveWithIgnore()).
//	    Exec(ctx)
func (u *EventSequenceUpsertOne) Ignore() *EventSequenceUpsertOne {
	u.create.conflict = append(u.create.conflict, sql.ResolveWithIgnore())
	return u
}

// DoNothing configures the conflict_action to `DO NOTHING`.
// Supported only by SQLite and PostgreSQL.
func (u *EventSequenceUpsertOne) DoNothing() *EventSequenceUpsertOne {
	u.create.conflict = append(u.create.conflict, sql.DoNothing())
	return u
}

// Update allows overriding fields `UPDATE` values. See the EventSequenceCreate.OnConflict
// documentation for more info.
func (u *EventSequenceUpsertOne) Update(set func(*EventSequenceUpsert)) *EventSequenceUpsertOne {
	u.create.conflict = append(u.create.conflict, sql.ResolveWith(func(update *sql.UpdateSet) {
		set(&EventSequenceUpsert{UpdateSet: update})
	}))
	return u
}

// SetNextVal sets the "next_val" field.
func (u *EventSequenceUpsertOne) SetNextVal(v int64) *EventSequenceUpsertOne {
	return u.Update(func(s *EventSequenceUpsert) {
		s.SetNextVal(v)
	})
}

// AddNextVal adds v to the "next_val" field.
func (u *EventSequenceUpsertOne) AddNextVal(v int64) *EventSequenceUpsertOne {
	return u.Update(func(s *EventSequenceUpsert) {
		s.AddNextVal(v)
	})
}

// UpdateNextVal sets the "next_val" field to the value that was provided on create.
func (u *EventSequenceUpsertOne) UpdateNextVal() *EventSequenceUpsertOne {
	return u.Update(func(s *EventSequenceUpsert) {
		s.UpdateNextVal()
	})
}

// Exec executes the query.
func (u *EventSequenceUpsertOne) Exec(ctx context.Context) error {
	if len(u.create.conflict) == 0 {
		return errors.New("ent: missing options for EventSequenceCreate.OnConflict")
	}
	return u.create.Exec(ctx)
}

// ExecX is like Exec, but panics if an error occurs.
func (u *EventSequenceUpsertOne) ExecX(ctx context.Context) {
	if err := u.create.Exec(ctx); err != nil {
		panic(err)
	}
}

// Exec executes the UPSERT query and returns the inserted/updated ID.
func (u *EventSequenceUpsertOne) ID(ctx context.Context) (id int, err error) {
	node, err := u.create.Save(ctx)
	if err != nil {
		return id, err
	}
	return node.ID, nil
}

// IDX is like ID, but panics if an error occurs.
func (u *EventSequenceUpsertOne) IDX(ctx context.Context) int {
	id, err := u.ID(ctx)
	if err != nil {
		panic(err)
	}
	return id
}

// EventSequenceCreateBulk is the builder for creating many EventSequence entities in bulk.
type EventSequenceCreateBulk struct {
	config
	err      error
	builders []*EventSequenceCreate
	conflict []sql.ConflictOption
}

// Save creates the EventSequence entities in the database.
func (_c *EventSequenceCreateBulk) Save(ctx context.Context) ([]*EventSequence, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*EventSequence, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*EventSequenceMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					spec.OnConflict = _c.conflict
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil && nodes[i].ID == 0 {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *EventSequenceCreateBulk) SaveX(ctx context.Context) []*EventSequence {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *EventSequenceCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *EventSequenceCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// OnConflict allows configuring the `ON CONFLICT` / `ON DUPLICATE KEY` clause
// of the `INSERT` statement. For example:
//
//	client.EventSequence.CreateBulk(builders...).
//		OnConflict(
//			// Update the row with the new values
//			// the was proposed for insertion.
//			sql.ResolveWithNewValues(),
//		).
//		// Override some of the fields with custom
//		// update values.
//		Update(func(u *ent.EventSequenceUpsert) {
//			SetNextVal(v+v).
//		}).
//		Exec(ctx)
func (_c *EventSequenceCreateBulk) OnConflict(opts ...sql.ConflictOption) *EventSequenceUpsertBulk {
	_c.conflict = opts
	return &EventSequenceUpsertBulk{
		create: _c,
	}
}

// OnConflictColumns calls `OnConflict` and configures the columns
// as conflict target. Using this option is equivalent to using:
//
//	client.EventSequence.Create().
//		OnConflict(sql.ConflictColumns(columns...)).
//		Exec(ctx)
func (_c *EventSequenceCreateBulk) OnConflictColumns(columns ...string) *EventSequenceUpsertBulk {
	_c.conflict = append(_c.conflict, sql.ConflictColumns(columns...))
	return &EventSequenceUpsertBulk{
		create: _c,
	}
}

// EventSequenceUpsertBulk is the builder for "upsert"-ing
// a bulk of EventSequence nodes.
type EventSequenceUpsertBulk struct {
	create *EventSequenceCreateBulk
}

// UpdateNewValues updates the mutable fields using the new values that
// were set on create. Using this option is equivalent to using:
//
//	client.EventSequence.Create().
//		OnConflict(
//			sql.ResolveWithNewValues(),
//			sql.ResolveWith(func(u *sql.UpdateSet) {
//				u.SetIgnore(eventsequence.FieldID)
//			}),
//		).
//		Exec(ctx)
func (u *EventSequenceUpsertBulk) UpdateNewValues() *EventSequenceUpsertBulk {
	u.create.conflict = append(u.create.conflict, sql.ResolveWithNewValues())
	u.create.conflict = append(u.create.conflict, sql.ResolveWith(func(s *sql.UpdateSet) {
		for _, b := range u.create.builders {
			if _, exists := b.mutation.ID(); exists {
				s.SetIgnore(eventsequence.FieldID)
			}
		}
	}))
	return u
}

// Ignore sets each column to itself in case of conflict.
// Using this option is equivalent to using:
//
//	client.EventSequence.Create().
//		OnConflict(sql.ResolveWithIgnore()).
//		Exec(ctx)
func (u *EventSequenceUpsertBulk) Ignore() *EventSequenceUpsertBulk {
	u.create.conflict = append(u.create.conflict, sql.ResolveWithIgnore())
	return u
}

// DoNothing configures the conflict_action to `DO NOTHING`.
// Supported only by SQLite and PostgreSQL.
func (u *EventSequenceUpsertBulk) DoNothing() *EventSequenceUpsertBulk {
	u.create.conflict = append(u.create.conflict, sql.DoNothing())
	return u
}

// Update allows overriding fields `UPDATE` values. See the EventSequenceCreateBulk.OnConflict
// documentation for more info.
func (u *EventSequenceUpsertBulk) Update(set func(*EventSequenceUpsert)) *EventSequenceUpsertBulk {
	u.create.conflict = append(u.create.conflict, sql.ResolveWith(func(update *sql.UpdateSet) {
		set(&EventSequenceUpsert{UpdateSet: update})
	}))
	return u
}

// SetNextVal sets the "next_val" field.
func (u *EventSequenceUpsertBulk) SetNextVal(v int64) *EventSequenceUpsertBulk {
	return u.Update(func(s *EventSequenceUpsert) {
		s.SetNextVal(v)
	})
}

// AddNextVal adds v to the "next_val" field.
func (u *EventSequenceUpsertBulk) AddNextVal(v int64) *EventSequenceUpsertBulk {
	return u.Update(func(s *EventSequenceUpsert) {
		s.AddNextVal(v)
	})
}

// UpdateNextVal sets the "next_val" field to the value that was provided on create.
func (u *EventSequenceUpsertBulk) UpdateNextVal() *EventSequenceUpsertBulk {
	return u.Update(func(s *EventSequenceUpsert) {
		s.UpdateNextVal()
	})
}

// Exec executes the query.
func (u *EventSequenceUpsertBulk) Exec(ctx context.Context) error {
	if u.create.err != nil {
		return u.create.err
	}
	for i, b := range u.create.builders {
		if len(b.conflict) != 0 {
			return fmt.Errorf("ent: OnConflict was set for builder %d. Set it on the EventSequenceCreateBulk instead", i)
		}
	}
	if len(u.create.conflict) == 0 {
		return errors.New("ent: missing options for EventSequenceCreateBulk.OnConflict")
	}
	return u.create.Exec(ctx)
}

// ExecX is like Exec, but panics if an error occurs.
func (u *EventSequenceUpsertBulk) ExecX(ctx context.Context) {
	if err := u.create.Exec(ctx); err != nil {
		panic(err)
	}
}
