package forms

// NewTextDefinition builds the plain text post form: required title and
// content plus the mood group.
func NewTextDefinition() (*Definition, error) {
	own := []Field{
		{Name: "title", Label: "Title", Kind: KindText, Required: true, MaxLength: 200},
		{Name: "content", Label: "Content", Kind: KindTextarea, Required: true},
	}
	return NewDefinition("text", 1, nil, own, MoodFields())
}
