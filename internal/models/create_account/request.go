package createaccount

// CreateAccountRequest carries the signup fields. Registration is gated
// by a shared code handed out by an administrator.
type CreateAccountRequest struct {
	Username         string `json:"username" binding:"required"`
	Password         string `json:"password" binding:"required,min=8"`
	RegistrationCode string `json:"registrationCode" binding:"required"`
	DisplayName      string `json:"displayName" binding:"required"`
	EmailAddress     string `json:"emailAddress" binding:"required,email"`
	FirstName        string `json:"firstName" binding:"required"`
	LastName         string `json:"lastName" binding:"required"`
	PositionRole     string `json:"positionRole"`
}
