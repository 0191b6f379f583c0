package forms

// NewPickupDefinition builds the pickup/dropoff form used by babysitters
// and family members: pickup and dropoff time/location, stop notes, a
// lunch meal slot, and the mood group. Lunch fields are cleared when
// had_lunch is unset so a stray portion cannot be stored without a meal.
func NewPickupDefinition() (*Definition, error) {
	own := []Field{
		{Name: "pickup_time", Label: "Pickup Time", Kind: KindChoice, Required: true, Choices: PickupTimeChoices},
		{Name: "pickup_location", Label: "Pickup Location", Kind: KindChoice, Required: true, Choices: PickupLocationChoices},
		{Name: "stops_notes", Label: "Any stops or activities?", Kind: KindTextarea},
		{Name: "had_lunch", Label: "Had lunch or snack?", Kind: KindCheckbox},
		{Name: "dropoff_time", Label: "Dropoff Time", Kind: KindChoice, Choices: PickupTimeChoices},
		{Name: "dropoff_location", Label: "Dropoff Location", Kind: KindChoice, Choices: PickupLocationChoices},
	}
	crossValidate := func(cleaned map[string]interface{}) error {
		if had, _ := cleaned["had_lunch"].(bool); !had {
			cleaned["lunch"] = ""
			cleaned["lunch_food"] = ""
		}
		return nil
	}
	return NewDefinition("pickup", 1, crossValidate, own, MealFields("lunch"), MoodFields())
}
