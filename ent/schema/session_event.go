package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records one completed quiz session.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Default("").
			Comment("UUID of the session"),
		field.String("mode").
			NotEmpty().
			Comment("chapter, standard or audio"),
		field.Int("chapter").
			Default(0).
			Comment("0 for mock exams"),
		field.Int("total"),
		field.Int("score"),
		field.Int("mistakes").
			Default(0),
		field.Int("duration_secs").
			Default(0),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("mode"),
	}
}
