package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"io.winapps.timelineapp/internal/forms"
	models "io.winapps.timelineapp/internal/models/account"
	listmodels "io.winapps.timelineapp/internal/models/list_timeline"
	"io.winapps.timelineapp/internal/timeline"
)

const defaultPageSize = 20

// ListTimeline returns the shared timeline: entries from every caregiver,
// pinned first, newest first within each pinned state, annotated with
// date dividers computed in the configured local timezone.
func (h *EntryHandler) ListTimeline(c *gin.Context) {
	if c.GetString("uid") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}

	ctx := context.Background()
	formFilter := c.Query("form")

	// The first unfiltered page is the hot path; serve it from cache
	cacheable := page == 1 && pageSize == defaultPageSize && formFilter == ""
	if cacheable {
		if cached, err := h.redis.Get(ctx, "timeline:first").Result(); err == nil && cached != "" {
			var cachedResponse listmodels.ListTimelineResponse
			if err := json.Unmarshal([]byte(cached), &cachedResponse); err == nil {
				c.JSON(http.StatusOK, cachedResponse)
				return
			}
		}
	}

	where := ""
	args := []interface{}{}
	if formFilter != "" {
		where = "WHERE e.form_type = $1"
		args = append(args, formFilter)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM entries e " + where
	if err := h.postgres.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		h.logError(c, err, "failed to count entries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline"})
		return
	}

	limitPos := len(args) + 1
	listQuery := `
		SELECT e.id, e.user_id, e.form_type, e.schema_version, e.pinned, e.payload, e.image_path, e.created_at,
		       COALESCE(p.display_name, u.username) AS author_name,
		       t.name, t.icon
		FROM entries e
		JOIN users u ON u.id = e.user_id
		LEFT JOIN user_profiles p ON p.user_id = e.user_id
		JOIN form_types t ON t.type = e.form_type
		` + where + `
		ORDER BY e.pinned DESC, e.created_at DESC
		LIMIT $` + strconv.Itoa(limitPos) + ` OFFSET $` + strconv.Itoa(limitPos+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := h.postgres.Query(ctx, listQuery, args...)
	if err != nil {
		h.logError(c, err, "failed to query timeline")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline"})
		return
	}
	defer rows.Close()

	items := make([]timeline.Item, 0, pageSize)
	for rows.Next() {
		var (
			item        timeline.Item
			payloadJSON []byte
		)
		if err := rows.Scan(
			&item.Entry.ID, &item.Entry.UserID, &item.Entry.FormType, &item.Entry.SchemaVersion,
			&item.Entry.Pinned, &payloadJSON, &item.Entry.ImagePath, &item.Entry.CreatedAt,
			&item.AuthorName, &item.FormName, &item.FormIcon,
		); err != nil {
			h.logError(c, err, "failed to scan entry")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline"})
			return
		}
		if err := json.Unmarshal(payloadJSON, &item.Entry.Payload); err != nil {
			item.Entry.Payload = forms.Payload{}
		}
		items = append(items, item)
	}

	timeline.Annotate(items, h.location)

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	response := listmodels.ListTimelineResponse{
		Items: items,
		Pagination: listmodels.Pagination{
			Page:        page,
			PageSize:    pageSize,
			Total:       total,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
	}

	if cacheable {
		if data, err := json.Marshal(response); err == nil {
			h.redis.Set(ctx, "timeline:first", data, 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, response)
}

// fetchEntry loads one entry row. A pgx.ErrNoRows passes through for the
// caller to turn into a 404.
func (h *EntryHandler) fetchEntry(ctx context.Context, entryID string) (*models.Entry, error) {
	var (
		entry       models.Entry
		payloadJSON []byte
	)
	query := `
		SELECT id, user_id, form_type, schema_version, pinned, payload, image_path, created_at
		FROM entries WHERE id = $1
	`
	err := h.postgres.QueryRow(ctx, query, entryID).Scan(
		&entry.ID, &entry.UserID, &entry.FormType, &entry.SchemaVersion,
		&entry.Pinned, &payloadJSON, &entry.ImagePath, &entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payloadJSON, &entry.Payload); err != nil {
		entry.Payload = forms.Payload{}
	}
	return &entry, nil
}
