package models

import (
	"time"

	"io.winapps.timelineapp/internal/forms"
)

// Entry is one timeline post. The payload keys are exactly the field names
// the entry's form definition declared at submission time; SchemaVersion
// records which version of the definition produced them, so older entries
// keep rendering after a field rename.
type Entry struct {
	ID            string        `json:"id" db:"id"`
	UserID        string        `json:"uid" db:"user_id"`
	FormType      string        `json:"formType" db:"form_type"`
	SchemaVersion int           `json:"schemaVersion" db:"schema_version"`
	Pinned        bool          `json:"pinned" db:"pinned"`
	Payload       forms.Payload `json:"payload" db:"payload"`
	ImagePath     *string       `json:"imagePath,omitempty" db:"image_path"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
}
