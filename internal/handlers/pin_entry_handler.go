package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"io.winapps.timelineapp/internal/authz"
)

// PinEntry marks an entry pinned so it sorts to the top of the timeline.
func (h *EntryHandler) PinEntry(c *gin.Context) {
	h.setPinned(c, true)
}

// UnpinEntry clears the pinned flag.
func (h *EntryHandler) UnpinEntry(c *gin.Context) {
	h.setPinned(c, false)
}

func (h *EntryHandler) setPinned(c *gin.Context, pinned bool) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	entryID := c.Param("id")
	ctx := context.Background()

	entry, err := h.fetchEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		h.logError(c, err, "failed to fetch entry")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}

	profile, err := h.fetchProfilePermissions(ctx, uid)
	if err != nil {
		h.logError(c, err, "failed to fetch user permissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}

	if !authz.CanPin(profile, entry.UserID, uid) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to pin this entry"})
		return
	}

	tx, err := h.postgres.Begin(ctx)
	if err != nil {
		h.logError(c, err, "failed to begin transaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE entries SET pinned = $1 WHERE id = $2`, pinned, entryID); err != nil {
		h.logError(c, err, "failed to update pinned flag")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}

	if err := tx.Commit(ctx); err != nil {
		h.logError(c, err, "failed to commit transaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}

	h.redis.Del(ctx, "entry:"+entryID)
	h.invalidateTimeline(ctx)

	c.JSON(http.StatusOK, gin.H{"id": entryID, "pinned": pinned})
}
