package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r, err := DefaultRegistry()
	require.NoError(t, err)

	assert.Equal(t, 7, r.Len())
	assert.Equal(t,
		[]string{"overnight", "photo", "pickup", "schoolday", "text", "weekend", "words"},
		r.Keys())

	ft, ok := r.Lookup("schoolday")
	require.True(t, ok)
	assert.Equal(t, "School Day", ft.Name)
	assert.Equal(t, "schoolday", ft.Definition.Type)

	_, ok = r.Lookup("unknown")
	assert.False(t, ok)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	def, err := NewTextDefinition()
	require.NoError(t, err)

	_, err = NewRegistry(
		FormType{Definition: def, Name: "Text Post"},
		FormType{Definition: def, Name: "Text Again"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate form type key "text"`)
}

func TestNewRegistryRejectsNilDefinition(t *testing.T) {
	_, err := NewRegistry(FormType{Name: "Broken"})
	require.Error(t, err)
}

func TestRegistryKeysAreACopy(t *testing.T) {
	r, err := DefaultRegistry()
	require.NoError(t, err)

	keys := r.Keys()
	keys[0] = "mutated"
	assert.Equal(t, "overnight", r.Keys()[0])
}
