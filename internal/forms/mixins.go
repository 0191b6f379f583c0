package forms

// Reusable field groups shared by multiple form definitions. A definition
// lists the groups it composes explicitly; name collisions with the host
// form's own fields are rejected when the definition is constructed.

// MoodFields returns the standard mood tracking group: a multi-select grid
// over MoodChoices plus an optional free-text notes field. An empty
// selection is valid.
func MoodFields() []Field {
	return []Field{
		{
			Name:    "mood",
			Label:   "Mood",
			Kind:    KindMultiChoice,
			Choices: MoodChoices,
			Help:    "Select all that apply",
		},
		{
			Name:      "mood_notes",
			Label:     "Mood notes (optional)",
			Kind:      KindTextarea,
			MaxLength: 500,
			Help:      "Additional details about mood or behavior",
		},
	}
}

// MealFields returns, for each named meal slot, a portion choice field
// named after the slot and an optional "<slot>_food" description field.
// The portion scale keeps the blank "not specified" state distinct from
// "None".
func MealFields(slots ...string) []Field {
	fields := make([]Field, 0, len(slots)*2)
	for _, slot := range slots {
		fields = append(fields,
			Field{
				Name:    slot,
				Label:   titleLabel(slot),
				Kind:    KindChoice,
				Choices: MealPortionChoices,
			},
			Field{
				Name:      slot + "_food",
				Label:     titleLabel(slot) + " food",
				Kind:      KindText,
				MaxLength: 200,
				Help:      "What was offered or eaten",
			},
		)
	}
	return fields
}

// titleLabel turns a snake_case slot name into a display label.
func titleLabel(name string) string {
	out := make([]byte, len(name))
	upper := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			out[i] = ' '
			upper = false
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out[i] = c
	}
	return string(out)
}
