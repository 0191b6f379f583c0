package forms

// NewSchoolDayDefinition builds the school day form: bathroom times, snack
// and lunch meal slots, specials and related services multi-selects, mood,
// and end-of-day notes.
func NewSchoolDayDefinition() (*Definition, error) {
	own := []Field{
		{Name: "bathroom", Label: "Bathroom Times", Kind: KindText, MaxLength: 200, Help: "Enter times separated by commas or spaces"},
		{Name: "other_food", Label: "Other Food", Kind: KindText, MaxLength: 200},
		{Name: "inclusion_specials", Label: "Inclusion Specials", Kind: KindMultiChoice, Choices: InclusionSpecialsChoices},
		{Name: "small_group_specials", Label: "Small Group Specials", Kind: KindMultiChoice, Choices: SmallGroupSpecialsChoices},
		{Name: "related_services", Label: "Related Services", Kind: KindMultiChoice, Choices: RelatedServicesChoices},
		{Name: "related_other", Label: "Related Services - Other", Kind: KindText, MaxLength: 200},
		{Name: "notes_about_day", Label: "Notes About My Day", Kind: KindTextarea},
	}
	return NewDefinition("schoolday", 1, nil, own, MealFields("snacks", "lunch_from_home"), MoodFields())
}
