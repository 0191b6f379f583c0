package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefinitionRejectsDuplicateNames(t *testing.T) {
	own := []Field{{Name: "mood", Label: "Mood", Kind: KindText}}

	_, err := NewDefinition("clash", 1, nil, own, MoodFields())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate field name "mood"`)
}

func TestNewDefinitionRejectsEmptyForms(t *testing.T) {
	_, err := NewDefinition("empty", 1, nil)
	require.Error(t, err)

	_, err = NewDefinition("blank", 1, nil, []Field{{Label: "No name"}})
	require.Error(t, err)
}

func TestValidateCollectsAllFieldErrors(t *testing.T) {
	def, err := NewTextDefinition()
	require.NoError(t, err)

	payload, errs := def.Validate(map[string][]string{
		"mood": {"nonsense"},
	})
	assert.Nil(t, payload)
	require.True(t, errs.HasErrors())
	assert.Len(t, errs["title"], 1)
	assert.Len(t, errs["content"], 1)
	assert.Len(t, errs["mood"], 1)
}

func TestValidateSerializesPayload(t *testing.T) {
	def, err := NewTextDefinition()
	require.NoError(t, err)

	payload, errs := def.Validate(map[string][]string{
		"title":      {"First day back"},
		"content":    {"Went great."},
		"mood":       {"happy", "tired"},
		"mood_notes": {""},
		"ignored":    {"dropped silently"},
	})
	require.False(t, errs.HasErrors())

	assert.Equal(t, Payload{
		"title":   "First day back",
		"content": "Went great.",
		"mood":    "happy, tired",
	}, payload, "empties dropped, multi-select joined, unknown keys ignored")
}

func TestValidateKeepsExplicitBlankChoice(t *testing.T) {
	def, err := NewOvernightDefinition()
	require.NoError(t, err)

	// Dinner explicitly submitted as blank stays in the payload as the
	// "not specified" state; bedtime carries the real value.
	payload, errs := def.Validate(map[string][]string{
		"dinner":  {""},
		"bedtime": {"Late"},
	})
	require.False(t, errs.HasErrors())
	assert.Equal(t, "", payload["dinner"])
	assert.Equal(t, "Late", payload["bedtime"])

	// Not submitting dinner at all leaves it out entirely
	payload, errs = def.Validate(map[string][]string{
		"bedtime": {"Late"},
	})
	require.False(t, errs.HasErrors())
	_, present := payload["dinner"]
	assert.False(t, present)
}

func TestCrossValidateRunsOnlyWhenFieldsPass(t *testing.T) {
	def, err := NewOvernightDefinition()
	require.NoError(t, err)

	// Everything empty: per-field checks pass, cross-validation rejects
	payload, errs := def.Validate(map[string][]string{})
	assert.Nil(t, payload)
	require.True(t, errs.HasErrors())
	assert.Equal(t, []string{"Please fill in at least one field."}, errs[AllKey])

	// A bad field value masks the cross-field check
	_, errs = def.Validate(map[string][]string{
		"bedtime": {"Whenever"},
	})
	require.True(t, errs.HasErrors())
	assert.NotContains(t, errs, AllKey)
	assert.Len(t, errs["bedtime"], 1)
}

func TestOvernightAcceptsAnySingleField(t *testing.T) {
	def, err := NewOvernightDefinition()
	require.NoError(t, err)

	payload, errs := def.Validate(map[string][]string{
		"breakfast": {"All"},
	})
	require.False(t, errs.HasErrors())
	assert.Equal(t, "All", payload["breakfast"])
}

func TestPhotoRequiresImage(t *testing.T) {
	def, err := NewPhotoDefinition()
	require.NoError(t, err)
	require.True(t, def.HasImageField())
	assert.Equal(t, []string{"image"}, def.ImageFieldNames())

	_, errs := def.Validate(map[string][]string{
		"caption": {"At the park"},
	})
	require.True(t, errs.HasErrors())
	assert.Equal(t, []string{"Photo is required"}, errs["image"])

	payload, errs := def.Validate(map[string][]string{
		"image":   {"park.jpg"},
		"caption": {"At the park"},
	})
	require.False(t, errs.HasErrors())
	assert.Equal(t, "At the park", payload["caption"])
	_, present := payload["image"]
	assert.False(t, present, "image fields never land in the payload")
}

func TestWeekendRequiresSomeContent(t *testing.T) {
	def, err := NewWeekendDefinition()
	require.NoError(t, err)

	_, errs := def.Validate(map[string][]string{})
	require.True(t, errs.HasErrors())
	assert.Equal(t, []string{"Please add at least one photo, description, or note."}, errs[AllKey])

	// Each kind of content satisfies the check on its own
	for _, raw := range []map[string][]string{
		{"saturday_text": {"Zoo trip"}},
		{"mood": {"happy"}},
		{"image": {"zoo.jpg"}},
	} {
		_, errs := def.Validate(raw)
		assert.False(t, errs.HasErrors(), "raw %v", raw)
	}
}

func TestPickupClearsLunchWithoutMeal(t *testing.T) {
	def, err := NewPickupDefinition()
	require.NoError(t, err)

	payload, errs := def.Validate(map[string][]string{
		"pickup_time":     {"3:00 PM"},
		"pickup_location": {"School"},
		"lunch":           {"Most"},
		"lunch_food":      {"sandwich"},
	})
	require.False(t, errs.HasErrors())
	assert.Equal(t, "", payload["lunch"], "portion reset to not-specified when had_lunch is unset")
	_, present := payload["lunch_food"]
	assert.False(t, present)

	payload, errs = def.Validate(map[string][]string{
		"pickup_time":     {"3:00 PM"},
		"pickup_location": {"School"},
		"had_lunch":       {"on"},
		"lunch":           {"Most"},
		"lunch_food":      {"sandwich"},
	})
	require.False(t, errs.HasErrors())
	assert.Equal(t, "Most", payload["lunch"])
	assert.Equal(t, "sandwich", payload["lunch_food"])
	assert.Equal(t, true, payload["had_lunch"])
}

func TestPickupRequiresTimeAndLocation(t *testing.T) {
	def, err := NewPickupDefinition()
	require.NoError(t, err)

	_, errs := def.Validate(map[string][]string{})
	require.True(t, errs.HasErrors())
	assert.Len(t, errs["pickup_time"], 1)
	assert.Len(t, errs["pickup_location"], 1)
}

func TestSchoolDayComposesAllGroups(t *testing.T) {
	def, err := NewSchoolDayDefinition()
	require.NoError(t, err)

	payload, errs := def.Validate(map[string][]string{
		"snacks":             {"Some"},
		"lunch_from_home":    {"All"},
		"inclusion_specials": {"Art", "Music"},
		"mood":               {"energetic"},
		"notes_about_day":    {"Good day overall"},
	})
	require.False(t, errs.HasErrors())
	assert.Equal(t, "Some", payload["snacks"])
	assert.Equal(t, "All", payload["lunch_from_home"])
	assert.Equal(t, "Art, Music", payload["inclusion_specials"])
	assert.Equal(t, "energetic", payload["mood"])
	assert.Equal(t, "Good day overall", payload["notes_about_day"])
}

func TestWordsForm(t *testing.T) {
	def, err := NewWordsDefinition()
	require.NoError(t, err)

	_, errs := def.Validate(map[string][]string{})
	require.True(t, errs.HasErrors())
	assert.Len(t, errs["words"], 1)

	payload, errs := def.Validate(map[string][]string{
		"words": {"hello, bye bye, more please"},
	})
	require.False(t, errs.HasErrors())
	assert.Equal(t, "hello, bye bye, more please", payload["words"])
}
