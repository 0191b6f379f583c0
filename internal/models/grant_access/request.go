package grantaccess

type GrantAccessRequest struct {
	UserID   string `json:"uid" binding:"required"`
	FormType string `json:"formType" binding:"required"`
}

// UpdatePermissionsRequest sets a user's pin/delete permission flags.
type UpdatePermissionsRequest struct {
	UserID       string `json:"uid" binding:"required"`
	CanPinOwn    *bool  `json:"canPinOwn"`
	CanPinAny    *bool  `json:"canPinAny"`
	CanDeleteAny *bool  `json:"canDeleteAny"`
}
