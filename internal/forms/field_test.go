package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldCleanText(t *testing.T) {
	f := Field{Name: "title", Label: "Title", Kind: KindText, Required: true, MaxLength: 10}

	v, err := f.Clean([]string{"  hello  "})
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	_, err = f.Clean([]string{"   "})
	assert.EqualError(t, err, "Title is required")

	_, err = f.Clean(nil)
	assert.EqualError(t, err, "Title is required")

	_, err = f.Clean([]string{"12345678901"})
	assert.EqualError(t, err, "Title cannot exceed 10 characters")
}

func TestFieldCleanOptionalText(t *testing.T) {
	f := Field{Name: "notes", Label: "Notes", Kind: KindTextarea}

	v, err := f.Clean(nil)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestFieldCleanChoice(t *testing.T) {
	f := Field{Name: "dinner", Label: "Dinner", Kind: KindChoice, Choices: MealPortionChoices}

	v, err := f.Clean([]string{"Some"})
	require.NoError(t, err)
	assert.Equal(t, "Some", v)

	// Blank is declared in the portion scale, so an empty submission is legal
	v, err = f.Clean([]string{""})
	require.NoError(t, err)
	assert.Equal(t, "", v)

	_, err = f.Clean([]string{"Lots"})
	assert.EqualError(t, err, `"Lots" is not a valid choice for Dinner`)
}

func TestFieldCleanRequiredChoice(t *testing.T) {
	f := Field{Name: "pickup_time", Label: "Pickup Time", Kind: KindChoice, Required: true, Choices: PickupTimeChoices}

	_, err := f.Clean([]string{""})
	assert.EqualError(t, err, "Pickup Time is required")

	v, err := f.Clean([]string{"3:00 PM"})
	require.NoError(t, err)
	assert.Equal(t, "3:00 PM", v)
}

func TestFieldCleanMultiChoice(t *testing.T) {
	f := Field{Name: "mood", Label: "Mood", Kind: KindMultiChoice, Choices: MoodChoices}

	v, err := f.Clean([]string{"happy", "tired", "happy"})
	require.NoError(t, err)
	assert.Equal(t, []string{"happy", "tired"}, v, "duplicates collapse, submission order kept")

	v, err = f.Clean(nil)
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = f.Clean([]string{"happy", "grumpy"})
	assert.EqualError(t, err, `"grumpy" is not a valid choice for Mood`)
}

func TestFieldCleanCheckbox(t *testing.T) {
	f := Field{Name: "had_lunch", Label: "Had lunch?", Kind: KindCheckbox}

	tests := []struct {
		raw  []string
		want bool
	}{
		{nil, false},
		{[]string{""}, false},
		{[]string{"false"}, false},
		{[]string{"0"}, false},
		{[]string{"off"}, false},
		{[]string{"on"}, true},
		{[]string{"true"}, true},
		{[]string{"1"}, true},
	}
	for _, tt := range tests {
		v, err := f.Clean(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v, "raw %v", tt.raw)
	}
}

func TestMealPortionScale(t *testing.T) {
	values := make([]string, 0, len(MealPortionChoices))
	for _, c := range MealPortionChoices {
		values = append(values, c.Value)
	}
	assert.Equal(t, []string{"", "None", "Some", "Most", "All"}, values)
}
