package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"io.winapps.timelineapp/internal/forms"
	models "io.winapps.timelineapp/internal/models/account"
)

const apiMaxLimit = 100

// ApiListEntries is the read-only JSON API used by external integrations.
// Results match the timeline ordering and can be filtered by form type.
func (h *EntryHandler) ApiListEntries(c *gin.Context) {
	if c.GetString("uid") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 {
		limit = 50
	}
	if limit > apiMaxLimit {
		limit = apiMaxLimit
	}

	ctx := context.Background()
	formType := c.Query("form_type")

	query := `
		SELECT id, user_id, form_type, schema_version, pinned, payload, image_path, created_at
		FROM entries
	`
	args := []interface{}{}
	if formType != "" {
		query += " WHERE form_type = $1"
		args = append(args, formType)
	}
	query += " ORDER BY pinned DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)+1)
	args = append(args, limit)

	rows, err := h.postgres.Query(ctx, query, args...)
	if err != nil {
		h.logError(c, err, "failed to query entries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}
	defer rows.Close()

	entries := make([]models.Entry, 0, limit)
	for rows.Next() {
		var (
			entry       models.Entry
			payloadJSON []byte
		)
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.FormType, &entry.SchemaVersion,
			&entry.Pinned, &payloadJSON, &entry.ImagePath, &entry.CreatedAt,
		); err != nil {
			h.logError(c, err, "failed to scan entry")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
			return
		}
		if err := json.Unmarshal(payloadJSON, &entry.Payload); err != nil {
			entry.Payload = forms.Payload{}
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// ApiListForms returns the active form types the caller holds a grant for.
func (h *EntryHandler) ApiListForms(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := context.Background()
	query := `
		SELECT t.type, t.name, t.icon, t.description, t.schema_version, t.is_active, t.is_default, t.created_at, t.updated_at
		FROM form_types t
		JOIN form_access a ON a.form_type = t.type
		WHERE a.user_id = $1 AND t.is_active = TRUE
		ORDER BY t.name
	`
	rows, err := h.postgres.Query(ctx, query, uid)
	if err != nil {
		h.logError(c, err, "failed to query form types")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list forms"})
		return
	}
	defer rows.Close()

	formList := make([]models.FormTypeRow, 0)
	for rows.Next() {
		var f models.FormTypeRow
		if err := rows.Scan(&f.Type, &f.Name, &f.Icon, &f.Description, &f.SchemaVersion,
			&f.IsActive, &f.IsDefault, &f.CreatedAt, &f.UpdatedAt); err != nil {
			h.logError(c, err, "failed to scan form type")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list forms"})
			return
		}
		formList = append(formList, f)
	}

	c.JSON(http.StatusOK, gin.H{"forms": formList})
}
