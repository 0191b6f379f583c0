package forms

import "errors"

var errWeekendEmpty = errors.New("Please add at least one photo, description, or note.")

// NewWeekendDefinition builds the weekend summary form: an optional photo,
// a one-line highlight per day, weekend notes, and the mood group. At
// least one photo, text, note, or mood selection must be present.
func NewWeekendDefinition() (*Definition, error) {
	own := []Field{
		{Name: "image", Label: "Weekend Photo", Kind: KindImage, Help: "Upload a photo from the weekend"},
		{Name: "friday_text", Label: "Friday", Kind: KindText, MaxLength: 500},
		{Name: "saturday_text", Label: "Saturday", Kind: KindText, MaxLength: 500},
		{Name: "sunday_text", Label: "Sunday", Kind: KindText, MaxLength: 500},
		{Name: "notes", Label: "Weekend Notes", Kind: KindTextarea},
	}
	crossValidate := func(cleaned map[string]interface{}) error {
		for _, name := range []string{"friday_text", "saturday_text", "sunday_text", "notes"} {
			if s, _ := cleaned[name].(string); s != "" {
				return nil
			}
		}
		if moods, _ := cleaned["mood"].([]string); len(moods) > 0 {
			return nil
		}
		if attached, _ := cleaned["image"].(bool); attached {
			return nil
		}
		return errWeekendEmpty
	}
	return NewDefinition("weekend", 1, crossValidate, own, MoodFields())
}
