package createaccount

import (
	"time"

	models "io.winapps.timelineapp/internal/models/account"
)

type CreateAccountResponse struct {
	Token        string             `json:"token"`
	ExpiresAt    time.Time          `json:"expiresAt"`
	User         models.User        `json:"user"`
	Profile      models.UserProfile `json:"profile"`
	GrantedForms []string           `json:"grantedForms"`
}
