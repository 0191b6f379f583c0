package updateprofile

// UpdateProfileRequest carries the self-service profile fields. Permission
// flags are deliberately absent; only an administrator changes those.
type UpdateProfileRequest struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PositionRole string `json:"positionRole"`
}
