package getentry

import (
	models "io.winapps.timelineapp/internal/models/account"
)

type GetEntryResponse struct {
	Entry      models.Entry `json:"entry"`
	AuthorName string       `json:"authorName"`
	FormName   string       `json:"formName"`
	FormIcon   string       `json:"formIcon"`
	CanPin     bool         `json:"canPin"`
	CanDelete  bool         `json:"canDelete"`
}
