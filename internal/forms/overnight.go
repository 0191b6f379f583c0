package forms

import "errors"

var errAtLeastOneField = errors.New("Please fill in at least one field.")

// NewOvernightDefinition builds the overnight routine form: dinner and
// breakfast meal slots, bedtime and wake-up buckets, and free-form notes.
func NewOvernightDefinition() (*Definition, error) {
	own := []Field{
		{Name: "bedtime", Label: "Bedtime", Kind: KindChoice, Choices: TimeChoices},
		{Name: "woke_up", Label: "Woke Up", Kind: KindChoice, Choices: TimeChoices},
		{Name: "notes", Label: "Notes", Kind: KindTextarea},
	}
	crossValidate := func(cleaned map[string]interface{}) error {
		for _, name := range []string{"dinner", "bedtime", "woke_up", "breakfast"} {
			if s, _ := cleaned[name].(string); s != "" {
				return nil
			}
		}
		return errAtLeastOneField
	}
	return NewDefinition("overnight", 1, crossValidate, MealFields("dinner", "breakfast"), own)
}
