package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "io.winapps.timelineapp/internal/models/account"
)

func entryAt(id string, pinned bool, at time.Time) models.Entry {
	return models.Entry{ID: id, Pinned: pinned, CreatedAt: at}
}

func TestSortPinnedFirstThenNewest(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		entryAt("old", false, base.Add(-48*time.Hour)),
		entryAt("pinned-old", true, base.Add(-72*time.Hour)),
		entryAt("new", false, base),
		entryAt("pinned-new", true, base.Add(-24*time.Hour)),
	}

	Sort(entries)

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"pinned-new", "pinned-old", "new", "old"}, ids,
		"an old pinned entry outranks the newest unpinned one")
}

func TestSortIsDeterministicForEqualKeys(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		entryAt("a", false, at),
		entryAt("b", false, at),
	}

	Sort(entries)

	assert.Equal(t, "a", entries[0].ID, "stable sort keeps input order on ties")
	assert.Equal(t, "b", entries[1].ID)
}

func TestAnnotateMarksFirstEntryOfEachDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	items := []Item{
		{Entry: entryAt("1", false, time.Date(2026, 3, 10, 21, 0, 0, 0, loc))},
		{Entry: entryAt("2", false, time.Date(2026, 3, 10, 9, 0, 0, 0, loc))},
		{Entry: entryAt("3", false, time.Date(2026, 3, 9, 15, 0, 0, 0, loc))},
	}

	Annotate(items, loc)

	assert.True(t, items[0].ShowDateDivider)
	assert.Equal(t, "Tuesday, March 10", items[0].DateLabel)
	assert.False(t, items[1].ShowDateDivider)
	assert.True(t, items[2].ShowDateDivider)
	assert.Equal(t, "Monday, March 9", items[2].DateLabel)
}

func TestAnnotateComparesDaysInLocalZone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 01:30 UTC on the 11th is still the evening of the 10th in New York,
	// so both entries share one divider.
	items := []Item{
		{Entry: entryAt("late", false, time.Date(2026, 3, 11, 1, 30, 0, 0, time.UTC))},
		{Entry: entryAt("earlier", false, time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC))},
	}

	Annotate(items, loc)

	assert.True(t, items[0].ShowDateDivider)
	assert.Equal(t, "Tuesday, March 10", items[0].DateLabel)
	assert.False(t, items[1].ShowDateDivider)
}

func TestAnnotateEmpty(t *testing.T) {
	assert.NotPanics(t, func() {
		Annotate(nil, time.UTC)
	})
}
