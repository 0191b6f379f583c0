package forms

import (
	"fmt"
	"strings"
)

// AllKey is the FieldErrors key used for errors that apply to the whole
// submission rather than a single field.
const AllKey = "__all__"

// Payload is the flat field-name-to-value record stored with an entry.
// Values are strings or bools; multi-select fields are joined to a
// comma-separated string before storage.
type Payload map[string]interface{}

// FieldErrors collects validation messages keyed by field name.
type FieldErrors map[string][]string

func (e FieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// HasErrors reports whether any message was recorded.
func (e FieldErrors) HasErrors() bool { return len(e) > 0 }

// Definition describes one form type: its fields, its version, and an
// optional cross-field validation hook that runs only after every
// per-field check passes.
type Definition struct {
	Type          string
	Version       int
	Fields        []Field
	CrossValidate func(cleaned map[string]interface{}) error

	byName map[string]Field
}

// NewDefinition assembles a definition from one or more field groups.
// Duplicate field names across groups are a construction error, caught
// before the definition can ever validate a submission.
func NewDefinition(formType string, version int, crossValidate func(map[string]interface{}) error, groups ...[]Field) (*Definition, error) {
	d := &Definition{
		Type:          formType,
		Version:       version,
		CrossValidate: crossValidate,
		byName:        make(map[string]Field),
	}
	for _, group := range groups {
		for _, f := range group {
			if f.Name == "" {
				return nil, fmt.Errorf("form %q: field with empty name", formType)
			}
			if _, dup := d.byName[f.Name]; dup {
				return nil, fmt.Errorf("form %q: duplicate field name %q", formType, f.Name)
			}
			d.byName[f.Name] = f
			d.Fields = append(d.Fields, f)
		}
	}
	if len(d.Fields) == 0 {
		return nil, fmt.Errorf("form %q: no fields declared", formType)
	}
	return d, nil
}

// HasImageField reports whether the definition declares any image field.
func (d *Definition) HasImageField() bool {
	for _, f := range d.Fields {
		if f.Kind == KindImage {
			return true
		}
	}
	return false
}

// ImageFieldNames returns the names of the definition's image fields in
// declaration order.
func (d *Definition) ImageFieldNames() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Kind == KindImage {
			names = append(names, f.Name)
		}
	}
	return names
}

// Validate cleans the raw submitted values against every declared field,
// runs cross-field validation when all fields pass, and serializes the
// result into a flat payload. On failure it returns nil and the field
// errors; nothing may be persisted from a failed validation.
//
// Serialization rules: empty strings and empty selections are dropped,
// multi-select values are joined with ", ", booleans are kept as-is, and
// image fields never appear in the payload (the upload path stores them
// separately). Keys the definition does not declare are ignored.
func (d *Definition) Validate(raw map[string][]string) (Payload, FieldErrors) {
	errs := make(FieldErrors)
	cleaned := make(map[string]interface{}, len(d.Fields))

	for _, f := range d.Fields {
		if f.Kind == KindImage {
			// The upload path validates the file itself; here the field
			// only contributes presence, for required checks and
			// cross-field validation.
			attached := len(raw[f.Name]) > 0 && raw[f.Name][0] != ""
			if f.Required && !attached {
				errs.add(f.Name, f.Label+" is required")
				continue
			}
			cleaned[f.Name] = attached
			continue
		}
		value, err := f.Clean(raw[f.Name])
		if err != nil {
			errs.add(f.Name, err.Error())
			continue
		}
		cleaned[f.Name] = value
	}

	if errs.HasErrors() {
		return nil, errs
	}

	if d.CrossValidate != nil {
		if err := d.CrossValidate(cleaned); err != nil {
			errs.add(AllKey, err.Error())
			return nil, errs
		}
	}

	payload := make(Payload, len(cleaned))
	for name, value := range cleaned {
		if d.byName[name].Kind == KindImage {
			continue
		}
		switch v := value.(type) {
		case string:
			if v == "" {
				// Choice fields keep the explicit blank "not specified"
				// state; free-text empties are dropped.
				if f := d.byName[name]; f.Kind == KindChoice && f.HasChoice("") && fieldSubmitted(raw, name) {
					payload[name] = v
				}
				continue
			}
			payload[name] = v
		case []string:
			if len(v) == 0 {
				continue
			}
			payload[name] = strings.Join(v, ", ")
		case bool:
			payload[name] = v
		}
	}
	return payload, nil
}

func fieldSubmitted(raw map[string][]string, name string) bool {
	_, ok := raw[name]
	return ok
}
