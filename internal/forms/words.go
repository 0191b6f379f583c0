package forms

// NewWordsDefinition builds the new-words form: a single required
// comma-separated list of words and phrases.
func NewWordsDefinition() (*Definition, error) {
	own := []Field{
		{Name: "words", Label: "Words and Phrases", Kind: KindText, Required: true,
			Help: "Separate each word or phrase with a comma (e.g., 'hello, bye bye, more please')"},
	}
	return NewDefinition("words", 1, nil, own)
}
