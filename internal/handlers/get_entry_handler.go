package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"io.winapps.timelineapp/internal/authz"
	models "io.winapps.timelineapp/internal/models/account"
	getentry "io.winapps.timelineapp/internal/models/get_entry"
)

// GetEntry returns a single entry with its author and form metadata,
// plus the pin/delete capabilities of the requesting user.
func (h *EntryHandler) GetEntry(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	entryID := c.Param("id")
	ctx := context.Background()

	entry, err := h.cachedEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		h.logError(c, err, "failed to fetch entry")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
		return
	}

	var (
		authorName string
		formName   string
		formIcon   string
	)
	metaQuery := `
		SELECT COALESCE(p.display_name, u.username), t.name, t.icon
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		JOIN form_types t ON t.type = $2
		WHERE u.id = $1
	`
	if err := h.postgres.QueryRow(ctx, metaQuery, entry.UserID, entry.FormType).Scan(&authorName, &formName, &formIcon); err != nil {
		h.logError(c, err, "failed to fetch entry metadata")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
		return
	}

	profile, err := h.fetchProfilePermissions(ctx, uid)
	if err != nil {
		h.logError(c, err, "failed to fetch user permissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
		return
	}

	c.JSON(http.StatusOK, getentry.GetEntryResponse{
		Entry:      *entry,
		AuthorName: authorName,
		FormName:   formName,
		FormIcon:   formIcon,
		CanPin:     authz.CanPin(profile, entry.UserID, uid),
		CanDelete:  authz.CanDelete(profile, entry.UserID, uid),
	})
}

// cachedEntry checks redis before hitting postgres, re-warming the cache
// on a miss. Cache failures fall through to the database.
func (h *EntryHandler) cachedEntry(ctx context.Context, entryID string) (*models.Entry, error) {
	if cached, err := h.redis.Get(ctx, "entry:"+entryID).Result(); err == nil && cached != "" {
		var entry models.Entry
		if err := json.Unmarshal([]byte(cached), &entry); err == nil {
			return &entry, nil
		}
	}

	entry, err := h.fetchEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entry); err == nil {
		if err := h.redis.Set(ctx, "entry:"+entryID, data, 24*time.Hour).Err(); err != nil {
			h.logger.Warnf("Failed to cache entry in Redis: %v", err)
		}
	}
	return entry, nil
}

func (h *EntryHandler) fetchProfilePermissions(ctx context.Context, uid string) (*models.UserProfile, error) {
	var profile models.UserProfile
	query := `
		SELECT user_id, COALESCE(display_name, ''), can_pin_own, can_pin_any, can_delete_any
		FROM user_profiles WHERE user_id = $1
	`
	err := h.postgres.QueryRow(ctx, query, uid).Scan(
		&profile.UserID, &profile.DisplayName,
		&profile.CanPinOwn, &profile.CanPinAny, &profile.CanDeleteAny,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
