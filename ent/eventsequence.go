// Code generated by ent, DO NOT EDIT.

package ent

import (
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql"
	"github.com/abhisek/revquiz/ent/eventsequence"
)

// EventSequence is the model entity for the EventSequence schema.
type EventSequence struct {
	config `json:"-"`
	// ID of the ent.
	// Always 1
	ID int `json:"id,omitempty"`
	// NextVal holds the value of the "next_val" field.
	NextVal      int64 `json:"next_val,omitempty"`
	selectValues sql.SelectValues
}

// scanValues returns the types for scanning values from sql.Rows.
func (*EventSequence) scanValues(columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i := range columns {
		switch columns[i] {
		case eventsequence.FieldID, eventsequence.FieldNextVal:
			values[i] = new(sql.NullInt64)
		default:
			values[i] = new(sql.UnknownType)
		}
	}
	return values, nil
}

// assignValues assigns the values that were returned from sql.Rows (after scanning)
// to the EventSequence fields.
func (_m *EventSequence) assignValues(columns []string, values []any) error {
	if m, n := len(values), len(columns); m < n {
		return fmt.Errorf("mismatch number of scan values: %d != %d", m, n)
	}
	for i := range columns {
		switch columns[i] {
		case eventsequence.FieldID:
			value, ok := values[i].(*sql.NullInt64)
			if !ok {
				return fmt.Errorf("unexpected type %T for field id", value)
			}
			_m.ID = int(value.Int64)
		case eventsequence.FieldNextVal:
			if value, ok := values[i].(*sql.NullInt64); !ok {
				return fmt.Errorf("unexpected type %T for field next_val", values[i])
			} else if value.Valid {
				_m.NextVal = value.Int64
			}
		default:
			_m.selectValues.Set(columns[i], values[i])
		}
	}
	return nil
}

// Value returns the ent.Value that was dynamically selected and assigned to the EventSequence.
// This includes values selected through modifiers, order, etc.
func (_m *EventSequence) Value(name string) (ent.Value, error) {
	return _m.selectValues.Get(name)
}

// Update returns a builder for updating this EventSequence.
// Note that you need to call EventSequence.Unwrap() before calling this method if this EventSequence
// was returned from a transaction, and the transaction was committed or rolled back.
func (_m *EventSequence) Update() *EventSequenceUpdateOne {
	return NewEventSequenceClient(_m.config).UpdateOne(_m)
}

// Unwrap unwraps the EventSequence entity that was returned from a transaction after it was closed,
// so that all future queries will be executed through the driver which created the transaction.
func (_m *EventSequence) Unwrap() *EventSequence {
	_tx, ok := _m.config.driver.(*txDriver)
	if !ok {
		panic("ent: EventSequence is not a transactional entity")
	}
	_m.config.driver = _tx.drv
	return _m
}

// String implements the fmt.Stringer.
func (_m *EventSequence) String() string {
	var builder strings.Builder
	builder.WriteString("EventSequence(")
	builder.WriteString(fmt.Sprintf("id=%v, ", _m.ID))
	builder.WriteString("next_val=")
	builder.WriteString(fmt.Sprintf("%v", _m.NextVal))
	builder.WriteByte(')')
	return builder.String()
}

// EventSequences is a parsable slice of EventSequence.
type EventSequences []*EventSequence
