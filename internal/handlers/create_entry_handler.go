package handlers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"io.winapps.timelineapp/internal/forms"
	"io.winapps.timelineapp/internal/images"
	models "io.winapps.timelineapp/internal/models/account"
	createmodels "io.winapps.timelineapp/internal/models/create_entry"
)

type EntryHandler struct {
	postgres *pgxpool.Pool
	redis    *redis.Client
	logger   *zap.SugaredLogger
	registry *forms.Registry
	images   *images.Store
	location *time.Location
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(postgres *pgxpool.Pool, redisClient *redis.Client, logger *zap.SugaredLogger, registry *forms.Registry, imageStore *images.Store, loc *time.Location) *EntryHandler {
	return &EntryHandler{
		postgres: postgres,
		redis:    redisClient,
		logger:   logger,
		registry: registry,
		images:   imageStore,
		location: loc,
	}
}

// CreateEntry handles creation of a timeline entry of the requested form
// type. The submission is validated against the type's definition; the
// payload is stored only when every check passes, together with the
// definition version that produced it.
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	typeKey := c.Param("type")
	formType, ok := h.registry.Lookup(typeKey)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form type not found"})
		return
	}

	ctx := context.Background()

	// The database row gates per-deployment visibility. A type the
	// registry knows but the database has deactivated (or never synced)
	// is not available for new entries.
	var isActive bool
	if err := h.postgres.QueryRow(ctx, `SELECT is_active FROM form_types WHERE type = $1`, typeKey).Scan(&isActive); err != nil || !isActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form type not available"})
		return
	}

	allowed, err := h.userCanCreate(ctx, uid, typeKey)
	if err != nil {
		h.logError(c, err, "failed to check form access", "form_type", typeKey)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this form"})
		return
	}

	raw, fileHeader, err := h.submittedValues(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if fileHeader != nil {
		if !formType.Definition.HasImageField() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": forms.FieldErrors{"image": {"This form does not accept an image"}}})
			return
		}
		if err := images.Validate(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": forms.FieldErrors{"image": {err.Error()}}})
			return
		}
		// Validation sees only the attachment's presence
		for _, name := range formType.Definition.ImageFieldNames() {
			raw[name] = []string{fileHeader.Filename}
		}
	}

	payload, fieldErrors := formType.Definition.Validate(raw)
	if fieldErrors.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	now := time.Now()
	entryID := uuid.New().String()

	var imagePath *string
	if fileHeader != nil {
		rel, err := h.images.Save(fileHeader, now)
		if err != nil {
			h.logError(c, err, "failed to store image", "form_type", typeKey)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
			return
		}
		imagePath = &rel
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		h.logError(c, err, "failed to marshal payload")
		h.discardImage(imagePath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}

	tx, err := h.postgres.Begin(ctx)
	if err != nil {
		h.logError(c, err, "failed to start transaction")
		h.discardImage(imagePath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}
	defer tx.Rollback(ctx)

	entryQuery := `
		INSERT INTO entries (id, user_id, form_type, schema_version, pinned, payload, image_path, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6, $7)
	`
	if _, err = tx.Exec(ctx, entryQuery, entryID, uid, typeKey, formType.Definition.Version, payloadJSON, imagePath, now); err != nil {
		h.logError(c, err, "failed to insert entry", "form_type", typeKey)
		h.discardImage(imagePath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}

	if err = tx.Commit(ctx); err != nil {
		h.logError(c, err, "failed to commit entry")
		h.discardImage(imagePath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}

	entry := models.Entry{
		ID:            entryID,
		UserID:        uid,
		FormType:      typeKey,
		SchemaVersion: formType.Definition.Version,
		Payload:       payload,
		ImagePath:     imagePath,
		CreatedAt:     now,
	}

	// Cache the entry and drop the stale first timeline page; failures
	// here never fail the request since the entry was saved
	if entryJSON, err := json.Marshal(entry); err == nil {
		if err := h.redis.Set(ctx, "entry:"+entryID, entryJSON, 24*time.Hour).Err(); err != nil {
			h.logError(c, err, "failed to cache entry")
		}
	}
	h.invalidateTimeline(ctx)

	c.JSON(http.StatusCreated, createmodels.CreateEntryResponse{
		Entry:    entry,
		FormName: formType.Name,
		FormIcon: formType.Icon,
	})
}

// userCanCreate reports whether a grant exists for the user and form type.
// The active check runs against form_types so a deactivated type denies
// creation even while historical entries stay viewable.
func (h *EntryHandler) userCanCreate(ctx context.Context, uid, typeKey string) (bool, error) {
	var allowed bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM form_access a
			JOIN form_types t ON t.type = a.form_type
			WHERE a.user_id = $1 AND a.form_type = $2 AND t.is_active = TRUE
		)
	`
	err := h.postgres.QueryRow(ctx, query, uid, typeKey).Scan(&allowed)
	return allowed, err
}

// submittedValues extracts the raw field values and the optional image
// upload from either a multipart or a urlencoded submission.
func (h *EntryHandler) submittedValues(c *gin.Context) (map[string][]string, *multipart.FileHeader, error) {
	contentType := c.ContentType()
	if contentType == "multipart/form-data" {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, nil, err
		}
		raw := map[string][]string(form.Value)
		if files := form.File["image"]; len(files) > 0 {
			return raw, files[0], nil
		}
		return raw, nil, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, nil, err
	}
	return c.Request.PostForm, nil, nil
}

func (h *EntryHandler) discardImage(rel *string) {
	if rel == nil {
		return
	}
	if err := h.images.Remove(*rel); err != nil {
		h.logger.Warnw("failed to remove orphaned image", "path", *rel, "error", err)
	}
}

// invalidateTimeline drops the cached first timeline page after any write.
func (h *EntryHandler) invalidateTimeline(ctx context.Context) {
	if err := h.redis.Del(ctx, "timeline:first").Err(); err != nil {
		h.logger.Warnw("failed to invalidate timeline cache", "error", err)
	}
}
