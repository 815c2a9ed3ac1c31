package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions, laid out the way ent's generated migrate package does.
var (
	kvEntriesColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	kvEntriesTable = &schema.Table{
		Name:       "kv_entries",
		Columns:    kvEntriesColumns,
		PrimaryKey: []*schema.Column{kvEntriesColumns[0]},
	}

	lessonEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "lesson_id", Type: field.TypeString},
		{Name: "ts_unix", Type: field.TypeInt64},
		{Name: "correct", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "accuracy", Type: field.TypeInt},
		{Name: "xp", Type: field.TypeInt},
		{Name: "gems", Type: field.TypeInt},
		{Name: "streak", Type: field.TypeInt},
		{Name: "minutes", Type: field.TypeInt},
		{Name: "first_try_perfect", Type: field.TypeBool},
		{Name: "fallback", Type: field.TypeBool},
	}
	lessonEventsTable = &schema.Table{
		Name:       "lesson_events",
		Columns:    lessonEventsColumns,
		PrimaryKey: []*schema.Column{lessonEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "lessonevent_ts_unix", Columns: []*schema.Column{lessonEventsColumns[2]}},
			{Name: "lessonevent_lesson_id", Columns: []*schema.Column{lessonEventsColumns[1]}},
		},
	}

	tables = []*schema.Table{kvEntriesTable, lessonEventsTable}
)
