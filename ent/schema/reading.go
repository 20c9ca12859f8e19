package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Reading is one finished oracle reading. The petition text is never
// stored; a covert reading only records how long the captured answer was.
type Reading struct {
	ent.Schema
}

func (Reading) Fields() []ent.Field {
	return []ent.Field{
		field.String("reading_id").
			NotEmpty().
			Unique().
			Immutable().
			Comment("UUID assigned when the reading is journaled"),
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Journal order; never reused, even after a clear"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("UTC time the reading was journaled"),
		field.Text("question").
			Comment("The public question"),
		field.Text("answer").
			Comment("The revealed answer"),
		field.Enum("source").
			Values("secret", "decoy").
			Comment("Where the answer came from"),
		field.Int("secret_length").
			Default(0).
			NonNegative().
			Comment("Rune length of the captured answer, 0 for decoys"),
	}
}

func (Reading) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
		index.Fields("source"),
	}
}
