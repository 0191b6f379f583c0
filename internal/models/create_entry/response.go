package createentry

import (
	models "io.winapps.timelineapp/internal/models/account"
)

type CreateEntryResponse struct {
	Entry    models.Entry `json:"entry"`
	FormName string       `json:"formName"`
	FormIcon string       `json:"formIcon"`
}
