package forms

// NewPhotoDefinition builds the photo form: a required image, an optional
// caption, and the mood group. The image itself is validated and stored by
// the upload path; only the caption and mood land in the payload.
func NewPhotoDefinition() (*Definition, error) {
	own := []Field{
		{Name: "image", Label: "Photo", Kind: KindImage, Required: true, Help: "Upload a photo (JPG, PNG, GIF, or WebP)"},
		{Name: "caption", Label: "Caption", Kind: KindTextarea, MaxLength: 500},
	}
	return NewDefinition("photo", 1, nil, own, MoodFields())
}
