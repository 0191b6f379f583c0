package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"io.winapps.timelineapp/internal/authz"
)

// DeleteEntry removes an entry and its stored image. Authors may delete
// their own entries; can_delete_any extends that to every entry.
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	profile, err := h.fetchProfilePermissions(ctx, uid)
	if err != nil {
		h.logError(c, err, "failed to fetch user permissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	if !authz.CanDelete(profile, entry.UserID, uid) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this entry"})
		return
	}

	tx, err := h.postgres.Begin(ctx)
	if err != nil {
		h.logError(c, err, "failed to begin transaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM entries WHERE id = $1`, entryID); err != nil {
		h.logError(c, err, "failed to delete entry")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	if err := tx.Commit(ctx); err != nil {
		h.logError(c, err, "failed to commit transaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	// Best effort; an orphaned file is preferable to a failed delete.
	if entry.ImagePath != nil {
		if err := h.images.Remove(*entry.ImagePath); err != nil {
			h.logger.Warnf("Failed to remove entry image: %v", err)
		}
	}

	h.redis.Del(ctx, "entry:"+entryID)
	h.invalidateTimeline(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}
