package forms

import (
	"fmt"
	"sort"
)

// FormType bundles a definition with its display metadata. The registry is
// the authoritative list of what form types exist; the form_types database
// table is a cache of it, re-synchronized explicitly by an administrator.
type FormType struct {
	Definition  *Definition
	Name        string
	Icon        string
	Description string
}

// Registry is an immutable lookup from type key to form type. It is
// constructed once at process start and shared read-only across requests.
type Registry struct {
	types map[string]FormType
	keys  []string
}

// NewRegistry builds a registry from the given form types. Duplicate type
// keys and malformed entries are construction errors; there is no ambient
// registration, so every type the process supports is visible right here.
func NewRegistry(types ...FormType) (*Registry, error) {
	r := &Registry{types: make(map[string]FormType, len(types))}
	for _, ft := range types {
		if ft.Definition == nil {
			return nil, fmt.Errorf("form type %q: nil definition", ft.Name)
		}
		key := ft.Definition.Type
		if key == "" {
			return nil, fmt.Errorf("form type %q: empty type key", ft.Name)
		}
		if _, dup := r.types[key]; dup {
			return nil, fmt.Errorf("duplicate form type key %q", key)
		}
		r.types[key] = ft
		r.keys = append(r.keys, key)
	}
	sort.Strings(r.keys)
	return r, nil
}

// Lookup returns the form type for a key. A missing key is a not-found
// condition for the caller, never a panic.
func (r *Registry) Lookup(key string) (FormType, bool) {
	ft, ok := r.types[key]
	return ft, ok
}

// Keys returns all registered type keys in sorted order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of registered form types.
func (r *Registry) Len() int { return len(r.types) }

// DefaultRegistry assembles the standard set of form types. Adding a new
// entry type means adding a definition constructor and a row here, then
// running the admin sync so the database learns about it.
func DefaultRegistry() (*Registry, error) {
	build := []struct {
		construct   func() (*Definition, error)
		name        string
		icon        string
		description string
	}{
		{NewTextDefinition, "Text Post", "📝", "Create a simple text post with title and content"},
		{NewPhotoDefinition, "Photo", "📸", "Upload a photo with an optional caption"},
		{NewOvernightDefinition, "Overnight", "🌙", "Track the overnight routine - dinner, sleep, and breakfast"},
		{NewSchoolDayDefinition, "School Day", "🎒", "Track daily school activities, meals, specials, and notes"},
		{NewWeekendDefinition, "My Weekend", "🎉", "Share photos and highlights from the weekend"},
		{NewWordsDefinition, "New Words", "💬", "Track new words and phrases"},
		{NewPickupDefinition, "Pickup & Dropoff", "🚗", "Track pickup and dropoff times, stops, and meals"},
	}

	types := make([]FormType, 0, len(build))
	for _, b := range build {
		def, err := b.construct()
		if err != nil {
			return nil, err
		}
		types = append(types, FormType{
			Definition:  def,
			Name:        b.name,
			Icon:        b.icon,
			Description: b.description,
		})
	}
	return NewRegistry(types...)
}
