package login

import (
	"time"

	models "io.winapps.timelineapp/internal/models/account"
)

type LoginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      models.User        `json:"user"`
	Profile   models.UserProfile `json:"profile"`
}
