package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"io.winapps.timelineapp/internal/forms"
	models "io.winapps.timelineapp/internal/models/account"
	grantaccess "io.winapps.timelineapp/internal/models/grant_access"
	syncforms "io.winapps.timelineapp/internal/models/sync_forms"
)

type AdminHandler struct {
	postgres *pgxpool.Pool
	redis    *redis.Client
	logger   *zap.SugaredLogger
	registry *forms.Registry
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(postgres *pgxpool.Pool, redisClient *redis.Client, logger *zap.SugaredLogger, registry *forms.Registry) *AdminHandler {
	return &AdminHandler{
		postgres: postgres,
		redis:    redisClient,
		logger:   logger,
		registry: registry,
	}
}

type syncAction int

const (
	syncCreate syncAction = iota
	syncUpdate
	syncUnchanged
)

// decideSync compares one registry form type against its database row.
// The flags never enter the comparison: is_active and is_default belong
// to the deployment operator and are changed only through UpdateFormType,
// so a re-run of the sync cannot undo a per-deployment disable.
func decideSync(row *models.FormTypeRow, ft forms.FormType) syncAction {
	if row == nil {
		return syncCreate
	}
	if row.Name != ft.Name || row.Icon != ft.Icon || row.Description != ft.Description ||
		row.SchemaVersion != ft.Definition.Version {
		return syncUpdate
	}
	return syncUnchanged
}

// SyncForms reconciles the code registry into the form_types table:
// new types are inserted (active, but not default; an administrator
// marks defaults explicitly), changed metadata is updated, and rows
// whose key no longer exists in the registry are deactivated. Rows are
// never deleted so old entries keep a valid type reference. The
// operation is idempotent; a second run reports everything unchanged.
func (h *AdminHandler) SyncForms(c *gin.Context) {
	ctx := context.Background()

	tx, err := h.postgres.Begin(ctx)
	if err != nil {
		h.logError(c, err, "failed to begin transaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync forms"})
		return
	}
	defer tx.Rollback(ctx)

	existing := map[string]models.FormTypeRow{}
	rows, err := tx.Query(ctx, `SELECT type, name, icon, description, schema_version, is_active FROM form_types`)
	if err != nil {
		h.logError(c, err, "failed to load form types")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync forms"})
		return
	}
	for rows.Next() {
		var row models.FormTypeRow
		if err := rows.Scan(&row.Type, &row.Name, &row.Icon, &row.Description, &row.SchemaVersion, &row.IsActive); err != nil {
			rows.Close()
			h.logError(c, err, "failed to scan form type")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync forms"})
			return
		}
		existing[row.Type] = row
	}
	rows.Close()

	response := syncforms.SyncFormsResponse{
		Created:     []string{},
		Updated:     []string{},
		Deactivated: []string{},
		Unchanged:   []string{},
	}

	for _, key := range h.registry.Keys() {
		ft, _ := h.registry.Lookup(key)
		var row *models.FormTypeRow
		if r, exists := existing[key]; exists {
			row = &r
		}
		switch decideSync(row, ft) {
		case syncCreate:
			_, err = tx.Exec(ctx, `
				INSERT INTO form_types (type, name, icon, description, schema_version, is_active, is_default)
				VALUES ($1, $2, $3, $4, $5, TRUE, FALSE)
			`, key, ft.Name, ft.Icon, ft.Description, ft.Definition.Version)
			if err == nil {
				response.Created = append(response.Created, key)
			}
		case syncUpdate:
			_, err = tx.Exec(ctx, `
				UPDATE form_types
				SET name = $2, icon = $3, description = $4, schema_version = $5, updated_at = NOW()
				WHERE type = $1
			`, key, ft.Name, ft.Icon, ft.Description, ft.Definition.Version)
			if err == nil {
				response.Updated = append(response.Updated, key)
			}
		default:
			response.Unchanged = append(response.Unchanged, key)
		}
		if err != nil {
			h.logError(c, err, "failed to upsert form type", "form_type", key)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync forms"})
			return
		}
		delete(existing, key)
	}

	// Whatever is left in the map has no registry counterpart
	for key, row := range existing {
		if !row.IsActive {
			response.Unchanged = append(response.Unchanged, key)
			continue
		}
		if _, err := tx.Exec(ctx, `
			UPDATE form_types SET is_active = FALSE, updated_at = NOW() WHERE type = $1
		`, key); err != nil {
			h.logError(c, err, "failed to deactivate form type", "form_type", key)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync forms"})
			return
		}
		response.Deactivated = append(response.Deactivated, key)
	}

	if err := tx.Commit(ctx); err != nil {
		h.logError(c, err, "failed to commit transaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync forms"})
		return
	}

	h.logger.Infow("Form registry synced",
		"created", len(response.Created),
		"updated", len(response.Updated),
		"deactivated", len(response.Deactivated),
	)
	c.JSON(http.StatusOK, response)
}

// UpdateFormType sets a form type's operator flags: is_active controls
// per-deployment availability, is_default marks types auto-granted at
// signup. This is the only code path that writes either flag for an
// existing row; it also reactivates a type that returned to the registry.
func (h *AdminHandler) UpdateFormType(c *gin.Context) {
	var req syncforms.UpdateFormTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := context.Background()
	tag, err := h.postgres.Exec(ctx, `
		UPDATE form_types
		SET is_active = COALESCE($2, is_active),
		    is_default = COALESCE($3, is_default),
		    updated_at = NOW()
		WHERE type = $1
	`, req.Type, req.IsActive, req.IsDefault)
	if err != nil {
		h.logError(c, err, "failed to update form type flags", "form_type", req.Type)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update form type"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form type not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Form type updated"})
}

// GrantAccess gives a user create rights for one form type. Granting an
// already-held type is a no-op.
func (h *AdminHandler) GrantAccess(c *gin.Context) {
	adminID := c.GetString("uid")

	var req grantaccess.GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := context.Background()

	var exists bool
	if err := h.postgres.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM form_types WHERE type = $1)`, req.FormType,
	).Scan(&exists); err != nil {
		h.logError(c, err, "failed to check form type")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant access"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form type not found"})
		return
	}

	grant := models.FormAccessGrant{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		FormType:  req.FormType,
		GrantedBy: &adminID,
		GrantedAt: time.Now(),
	}
	tag, err := h.postgres.Exec(ctx, `
		INSERT INTO form_access (id, user_id, form_type, granted_by, granted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, form_type) DO NOTHING
	`, grant.ID, grant.UserID, grant.FormType, grant.GrantedBy, grant.GrantedAt)
	if err != nil {
		h.logError(c, err, "failed to grant access")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant access"})
		return
	}

	if tag.RowsAffected() == 0 {
		// The user already held the type; nothing was written
		c.JSON(http.StatusOK, gin.H{"message": "Access granted", "granted": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Access granted",
		"granted": true,
		"grant":   grant,
	})
}

// RevokeAccess removes a user's create rights for one form type.
// Existing entries of that type are untouched.
func (h *AdminHandler) RevokeAccess(c *gin.Context) {
	var req grantaccess.GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := context.Background()
	tag, err := h.postgres.Exec(ctx,
		`DELETE FROM form_access WHERE user_id = $1 AND form_type = $2`,
		req.UserID, req.FormType,
	)
	if err != nil {
		h.logError(c, err, "failed to revoke access")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke access"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Access revoked",
		"revoked": tag.RowsAffected() > 0,
	})
}

// UpdatePermissions sets a user's pin/delete flags. Omitted flags keep
// their current value.
func (h *AdminHandler) UpdatePermissions(c *gin.Context) {
	var req grantaccess.UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := context.Background()
	tag, err := h.postgres.Exec(ctx, `
		UPDATE user_profiles
		SET can_pin_own = COALESCE($2, can_pin_own),
		    can_pin_any = COALESCE($3, can_pin_any),
		    can_delete_any = COALESCE($4, can_delete_any),
		    updated_at = NOW()
		WHERE user_id = $1
	`, req.UserID, req.CanPinOwn, req.CanPinAny, req.CanDeleteAny)
	if err != nil {
		h.logError(c, err, "failed to update permissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update permissions"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Permissions updated"})
}

// Stats reports entry counts per form type and per author.
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := context.Background()

	byType := map[string]int{}
	rows, err := h.postgres.Query(ctx,
		`SELECT form_type, COUNT(*) FROM entries GROUP BY form_type`)
	if err != nil {
		h.logError(c, err, "failed to query entry stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	for rows.Next() {
		var (
			formType string
			count    int
		)
		if err := rows.Scan(&formType, &count); err != nil {
			rows.Close()
			h.logError(c, err, "failed to scan entry stats")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
			return
		}
		byType[formType] = count
	}
	rows.Close()

	byAuthor := map[string]int{}
	rows, err = h.postgres.Query(ctx, `
		SELECT COALESCE(p.display_name, u.username), COUNT(*)
		FROM entries e
		JOIN users u ON u.id = e.user_id
		LEFT JOIN user_profiles p ON p.user_id = e.user_id
		GROUP BY 1
	`)
	if err != nil {
		h.logError(c, err, "failed to query author stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	for rows.Next() {
		var (
			author string
			count  int
		)
		if err := rows.Scan(&author, &count); err != nil {
			rows.Close()
			h.logError(c, err, "failed to scan author stats")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
			return
		}
		byAuthor[author] = count
	}
	rows.Close()

	var totalUsers, totalEntries, pinnedEntries int
	if err := h.postgres.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM entries),
			(SELECT COUNT(*) FROM entries WHERE pinned = TRUE)
	`).Scan(&totalUsers, &totalEntries, &pinnedEntries); err != nil {
		h.logError(c, err, "failed to query totals")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":      totalUsers,
		"totalEntries":    totalEntries,
		"pinnedEntries":   pinnedEntries,
		"entriesByType":   byType,
		"entriesByAuthor": byAuthor,
	})
}
