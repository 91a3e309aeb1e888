package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGameID(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		isNew  bool
		wantID string
	}{
		{name: "empty id is new", id: "", isNew: true},
		{name: "client placeholder is new", id: "g_1700000000000", isNew: true},
		{name: "temp placeholder is new", id: "temp_1700000000000", isNew: true},
		{name: "store-assigned id is existing", id: "abc-123-store-id", isNew: false, wantID: "abc-123-store-id"},
		{name: "uuid is existing", id: "7d3f9c2a-1b4e-4f6d-9a8c-2e5b7d1f0a3c", isNew: false, wantID: "7d3f9c2a-1b4e-4f6d-9a8c-2e5b7d1f0a3c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rid := ParseGameID(tt.id)
			assert.Equal(t, tt.isNew, rid.IsNew())
			assert.Equal(t, tt.wantID, rid.String())
		})
	}
}

func TestParseChangelogID(t *testing.T) {
	assert.True(t, ParseChangelogID("").IsNew())
	assert.True(t, ParseChangelogID("c_1700000000000").IsNew())

	// The game placeholder prefixes mean nothing for changelogs.
	rid := ParseChangelogID("g_not_a_changelog_prefix")
	assert.False(t, rid.IsNew())
	assert.Equal(t, "g_not_a_changelog_prefix", rid.String())

	existing := ParseChangelogID("c1")
	assert.False(t, existing.IsNew())
	assert.Equal(t, "c1", existing.String())
}

func TestRecordIDConstructors(t *testing.T) {
	assert.True(t, NewRecord().IsNew())
	assert.Empty(t, NewRecord().String())

	rid := ExistingRecord("store-id")
	assert.False(t, rid.IsNew())
	assert.Equal(t, "store-id", rid.String())
}
