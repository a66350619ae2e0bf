package wire

// Field names of a write concern document, in the order they are emitted.
const (
	// FieldW carries the acknowledgment level, either a node count or a label.
	FieldW = "w"

	// FieldWTimeout carries the server-side wait budget in milliseconds.
	FieldWTimeout = "wtimeout"

	// FieldFsync carries the deprecated flush-to-disk requirement.
	FieldFsync = "fsync"

	// FieldJournal carries the journal commit requirement.
	FieldJournal = "j"
)

// LabelMajority is the well-known label requiring a majority of data-bearing
// members to acknowledge a write.
const LabelMajority = "majority"

var knownFields = map[string]struct{}{
	FieldW:        {},
	FieldWTimeout: {},
	FieldFsync:    {},
	FieldJournal:  {},
}

// IsKnownField reports whether key is one of the write concern field names.
func IsKnownField(key string) bool {
	_, ok := knownFields[key]
	return ok
}
