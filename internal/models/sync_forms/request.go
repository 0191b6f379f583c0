package syncforms

// UpdateFormTypeRequest sets a form type's operator flags. Omitted flags
// keep their current value; sync never writes either one.
type UpdateFormTypeRequest struct {
	Type      string `json:"type" binding:"required"`
	IsActive  *bool  `json:"isActive"`
	IsDefault *bool  `json:"isDefault"`
}
