package types

// ChangelogType categorizes a changelog entry for display.
type ChangelogType string

const (
	ChangelogUpdate      ChangelogType = "update"
	ChangelogEvent       ChangelogType = "event"
	ChangelogMaintenance ChangelogType = "maintenance"
)

// Valid reports whether t is one of the known changelog types.
func (t ChangelogType) Valid() bool {
	switch t {
	case ChangelogUpdate, ChangelogEvent, ChangelogMaintenance:
		return true
	}
	return false
}

// Changelog is one entry in the studio's update feed.
//
// Date is a free-text label, not a parsed calendar date. Display ordering is
// whatever the store's descending string ordering on it yields.
type Changelog struct {
	// ID is empty for records that have never been persisted; otherwise it
	// is the store-assigned identifier.
	ID string `json:"id" db:"id"`

	// Title is the headline of the entry.
	Title string `json:"title" db:"title"`

	// Version is a free-text version label ("v8.0", "Community", ...).
	Version string `json:"version" db:"version"`

	// Date is the free-text date label shown on the feed.
	Date string `json:"date" db:"date"`

	// Description is the body of the entry.
	Description string `json:"description" db:"description"`

	// Type categorizes the entry.
	Type ChangelogType `json:"type" db:"type"`
}
