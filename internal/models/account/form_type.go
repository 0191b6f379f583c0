package models

import "time"

// FormTypeRow is the database cache of one registry form type. Rows whose
// key has left the registry are deactivated, never deleted, so historical
// entries keep a valid type reference.
type FormTypeRow struct {
	Type          string    `json:"type" db:"type"`
	Name          string    `json:"name" db:"name"`
	Icon          string    `json:"icon" db:"icon"`
	Description   string    `json:"description" db:"description"`
	SchemaVersion int       `json:"schemaVersion" db:"schema_version"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	IsDefault     bool      `json:"isDefault" db:"is_default"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// FormAccessGrant records that one user may create entries of one form
// type. At most one grant exists per (user, form type) pair.
type FormAccessGrant struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"uid" db:"user_id"`
	FormType  string    `json:"formType" db:"form_type"`
	GrantedBy *string   `json:"grantedBy,omitempty" db:"granted_by"`
	GrantedAt time.Time `json:"grantedAt" db:"granted_at"`
}
