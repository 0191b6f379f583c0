package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	models "io.winapps.timelineapp/internal/models/account"
)

func TestCanPin(t *testing.T) {
	author := "author-uid"
	other := "other-uid"

	tests := []struct {
		name    string
		profile *models.UserProfile
		user    string
		want    bool
	}{
		{"no profile", nil, author, false},
		{"no flags", &models.UserProfile{}, author, false},
		{"own entry with can_pin_own", &models.UserProfile{CanPinOwn: true}, author, true},
		{"someone else's entry with can_pin_own", &models.UserProfile{CanPinOwn: true}, other, false},
		{"someone else's entry with can_pin_any", &models.UserProfile{CanPinAny: true}, other, true},
		{"own entry with can_pin_any only", &models.UserProfile{CanPinAny: true}, author, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPin(tt.profile, author, tt.user))
		})
	}
}

func TestCanDelete(t *testing.T) {
	author := "author-uid"
	other := "other-uid"

	tests := []struct {
		name    string
		profile *models.UserProfile
		user    string
		want    bool
	}{
		{"author deletes own entry without flags", &models.UserProfile{}, author, true},
		{"author deletes own entry without profile", nil, author, true},
		{"other user without flag", &models.UserProfile{}, other, false},
		{"other user with can_delete_any", &models.UserProfile{CanDeleteAny: true}, other, true},
		{"other user without profile", nil, other, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDelete(tt.profile, author, tt.user))
		})
	}
}
