package forms

import (
	"fmt"
	"strings"
)

// Kind identifies how a field is rendered and what value shape it cleans to.
type Kind int

const (
	KindText Kind = iota
	KindTextarea
	KindChoice
	KindMultiChoice
	KindCheckbox
	KindImage
)

// Field describes one declarative form input. Definitions are built from
// slices of fields; the field itself knows how to validate raw submitted
// values into a typed value.
type Field struct {
	Name      string
	Label     string
	Kind      Kind
	Required  bool
	MaxLength int
	Choices   []Choice
	Help      string
}

// HasChoice reports whether v is a legal value for a choice field.
// The blank value is legal only when the choice set declares it.
func (f Field) HasChoice(v string) bool {
	for _, c := range f.Choices {
		if c.Value == v {
			return true
		}
	}
	return false
}

// Clean validates the raw submitted values for this field and returns the
// typed value: string for text/textarea/choice, []string for multichoice
// (deduplicated, order of submission preserved), bool for checkbox. Image
// fields are cleaned by the upload path, not here.
func (f Field) Clean(values []string) (interface{}, error) {
	switch f.Kind {
	case KindText, KindTextarea:
		v := ""
		if len(values) > 0 {
			v = values[0]
		}
		v = strings.TrimSpace(v)
		if f.Required && v == "" {
			return nil, fmt.Errorf("%s is required", f.Label)
		}
		if f.MaxLength > 0 && len(v) > f.MaxLength {
			return nil, fmt.Errorf("%s cannot exceed %d characters", f.Label, f.MaxLength)
		}
		return v, nil

	case KindChoice:
		v := ""
		if len(values) > 0 {
			v = strings.TrimSpace(values[0])
		}
		if f.Required && v == "" {
			return nil, fmt.Errorf("%s is required", f.Label)
		}
		if !f.HasChoice(v) {
			return nil, fmt.Errorf("%q is not a valid choice for %s", v, f.Label)
		}
		return v, nil

	case KindMultiChoice:
		seen := make(map[string]bool, len(values))
		selected := make([]string, 0, len(values))
		for _, raw := range values {
			v := strings.TrimSpace(raw)
			if v == "" {
				continue
			}
			if !f.HasChoice(v) {
				return nil, fmt.Errorf("%q is not a valid choice for %s", v, f.Label)
			}
			if seen[v] {
				continue
			}
			seen[v] = true
			selected = append(selected, v)
		}
		if f.Required && len(selected) == 0 {
			return nil, fmt.Errorf("%s is required", f.Label)
		}
		return selected, nil

	case KindCheckbox:
		if len(values) == 0 {
			return false, nil
		}
		switch strings.ToLower(strings.TrimSpace(values[0])) {
		case "", "false", "0", "off":
			return false, nil
		default:
			return true, nil
		}

	case KindImage:
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown field kind for %s", f.Name)
	}
}
