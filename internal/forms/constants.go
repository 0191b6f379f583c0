package forms

// Choice pairs a stored value with its display label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// MealPortionChoices is the portion scale used by every meal field. The
// blank value means "not specified" and is distinct from "None".
var MealPortionChoices = []Choice{
	{Value: "", Label: "Not specified"},
	{Value: "None", Label: "None"},
	{Value: "Some", Label: "Some"},
	{Value: "Most", Label: "Most"},
	{Value: "All", Label: "All"},
}

// TimeChoices buckets bedtime / wake-up times.
var TimeChoices = []Choice{
	{Value: "", Label: "-- Select --"},
	{Value: "Early", Label: "Early"},
	{Value: "Normal", Label: "Normal"},
	{Value: "Late", Label: "Late"},
}

// MoodChoices is the multi-select mood grid. Labels carry the emoji shown
// in the grid next to the short state name.
var MoodChoices = []Choice{
	{Value: "happy", Label: "😀 Happy"},
	{Value: "calm", Label: "😌 Calm"},
	{Value: "silly", Label: "🤪 Silly"},
	{Value: "energetic", Label: "⚡ Energetic"},
	{Value: "tired", Label: "😴 Tired"},
	{Value: "frustrated", Label: "😤 Frustrated"},
	{Value: "sad", Label: "😢 Sad"},
	{Value: "anxious", Label: "😟 Anxious"},
}

var InclusionSpecialsChoices = []Choice{
	{Value: "Art", Label: "Art"},
	{Value: "Music", Label: "Music"},
	{Value: "Gym", Label: "Gym"},
	{Value: "Library", Label: "Library"},
}

var SmallGroupSpecialsChoices = []Choice{
	{Value: "Art", Label: "Art"},
	{Value: "Music", Label: "Music"},
	{Value: "Library", Label: "Library"},
}

var RelatedServicesChoices = []Choice{
	{Value: "Speech", Label: "Speech"},
	{Value: "OT", Label: "OT"},
}

// PickupTimeChoices lists half-hour pickup/dropoff slots.
var PickupTimeChoices = []Choice{
	{Value: "", Label: "-- Select --"},
	{Value: "11:00 AM", Label: "11:00 AM"},
	{Value: "11:30 AM", Label: "11:30 AM"},
	{Value: "12:00 PM", Label: "12:00 PM"},
	{Value: "12:30 PM", Label: "12:30 PM"},
	{Value: "1:00 PM", Label: "1:00 PM"},
	{Value: "1:30 PM", Label: "1:30 PM"},
	{Value: "2:00 PM", Label: "2:00 PM"},
	{Value: "2:30 PM", Label: "2:30 PM"},
	{Value: "3:00 PM", Label: "3:00 PM"},
	{Value: "3:30 PM", Label: "3:30 PM"},
	{Value: "4:00 PM", Label: "4:00 PM"},
	{Value: "4:30 PM", Label: "4:30 PM"},
	{Value: "5:00 PM", Label: "5:00 PM"},
	{Value: "5:30 PM", Label: "5:30 PM"},
	{Value: "6:00 PM", Label: "6:00 PM"},
}

// PickupLocationChoices lists common pickup/dropoff locations.
var PickupLocationChoices = []Choice{
	{Value: "", Label: "-- Select --"},
	{Value: "School", Label: "School"},
	{Value: "Home", Label: "Home"},
	{Value: "Other", Label: "Other (specify in notes)"},
}
