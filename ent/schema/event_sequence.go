package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// EventSequence is the single-row counter behind EventMixin.sequence.
type EventSequence struct {
	ent.Schema
}

func (EventSequence) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id").
			Immutable().
			Comment("Always 1"),
		field.Int64("next_val").
			Default(1),
	}
}
