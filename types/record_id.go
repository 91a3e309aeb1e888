package types

import "strings"

// RecordID distinguishes a record that has never been persisted from one
// stored under a known identifier. It replaces the client-side convention of
// sniffing id prefixes at every call site: the prefix rules are applied once,
// where a RecordID is constructed, and everything downstream branches on
// IsNew.
type RecordID struct {
	id string
}

// NewRecord returns the identity of a record that has not been persisted yet.
func NewRecord() RecordID {
	return RecordID{}
}

// ExistingRecord returns the identity of a record stored under id.
func ExistingRecord(id string) RecordID {
	return RecordID{id: id}
}

// IsNew reports whether the record must be inserted rather than updated.
func (r RecordID) IsNew() bool {
	return r.id == ""
}

// String returns the store-assigned identifier, or "" for a new record.
func (r RecordID) String() string {
	return r.id
}

// Placeholder prefixes generated by legacy clients for records that were
// never persisted. Ids carrying one of these are treated as new.
var (
	gameUnsavedPrefixes      = []string{"g_", "temp_"}
	changelogUnsavedPrefixes = []string{"c_"}
)

// ParseGameID interprets a wire-level game id. Empty ids and client-generated
// placeholders ("g_<ts>", "temp_<ts>") mean a new record; anything else is an
// existing store-assigned id.
func ParseGameID(id string) RecordID {
	return parseRecordID(id, gameUnsavedPrefixes)
}

// ParseChangelogID interprets a wire-level changelog id. Empty ids and
// client-generated placeholders ("c_<ts>") mean a new record.
func ParseChangelogID(id string) RecordID {
	return parseRecordID(id, changelogUnsavedPrefixes)
}

func parseRecordID(id string, unsavedPrefixes []string) RecordID {
	if id == "" {
		return NewRecord()
	}
	for _, prefix := range unsavedPrefixes {
		if strings.HasPrefix(id, prefix) {
			return NewRecord()
		}
	}
	return ExistingRecord(id)
}
