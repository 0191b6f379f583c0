package syncforms

// SyncFormsResponse reports what the registry sync changed. Running the
// sync twice in a row yields empty created/updated/deactivated sets.
type SyncFormsResponse struct {
	Created     []string `json:"created"`
	Updated     []string `json:"updated"`
	Deactivated []string `json:"deactivated"`
	Unchanged   []string `json:"unchanged"`
}
