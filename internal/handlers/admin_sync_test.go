package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"io.winapps.timelineapp/internal/forms"
	models "io.winapps.timelineapp/internal/models/account"
)

func photoFormType(t *testing.T) forms.FormType {
	t.Helper()
	def, err := forms.NewPhotoDefinition()
	require.NoError(t, err)
	return forms.FormType{
		Definition:  def,
		Name:        "Photo",
		Icon:        "📸",
		Description: "Upload a photo with an optional caption",
	}
}

func matchingRow(ft forms.FormType) models.FormTypeRow {
	return models.FormTypeRow{
		Type:          ft.Definition.Type,
		Name:          ft.Name,
		Icon:          ft.Icon,
		Description:   ft.Description,
		SchemaVersion: ft.Definition.Version,
		IsActive:      true,
	}
}

func TestDecideSyncCreatesMissingTypes(t *testing.T) {
	assert.Equal(t, syncCreate, decideSync(nil, photoFormType(t)))
}

func TestDecideSyncLeavesMatchingRowsAlone(t *testing.T) {
	ft := photoFormType(t)
	row := matchingRow(ft)
	assert.Equal(t, syncUnchanged, decideSync(&row, ft))
}

func TestDecideSyncDoesNotReactivateDisabledTypes(t *testing.T) {
	ft := photoFormType(t)
	row := matchingRow(ft)

	// An operator disabled the type for this deployment; re-running the
	// sync must not flip it back on.
	row.IsActive = false
	assert.Equal(t, syncUnchanged, decideSync(&row, ft))

	// The default flag is equally off-limits to the sync
	row.IsActive = true
	row.IsDefault = true
	assert.Equal(t, syncUnchanged, decideSync(&row, ft))
}

func TestDecideSyncUpdatesChangedMetadata(t *testing.T) {
	ft := photoFormType(t)

	changed := matchingRow(ft)
	changed.Icon = "🖼️"
	assert.Equal(t, syncUpdate, decideSync(&changed, ft))

	changed = matchingRow(ft)
	changed.Name = "Old Photo Name"
	assert.Equal(t, syncUpdate, decideSync(&changed, ft))

	changed = matchingRow(ft)
	changed.SchemaVersion = ft.Definition.Version - 1
	assert.Equal(t, syncUpdate, decideSync(&changed, ft))
}
