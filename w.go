package ackspec

import (
	"fmt"
	"math"
	"strconv"
)

// WKind identifies which variant of W is active.
type WKind uint8

const (
	// WKindUnset indicates no explicit acknowledgment level, deferring to the server default.
	WKindUnset = WKind(0x00)

	// WKindCount indicates a minimum number of members that must apply the write.
	WKindCount = WKind(0x01)

	// WKindLabel indicates a named acknowledgment policy such as "majority" or a tag set name.
	WKindLabel = WKind(0x02)
)

func (k WKind) String() string {
	switch k {
	case WKindUnset:
		return "unset"
	case WKindCount:
		return "count"
	case WKindLabel:
		return "label"
	}

	return fmt.Sprintf("unknown (%d)", uint8(k))
}

// W is the acknowledgment level of a write concern. Exactly one variant is active;
// the zero value is the unset variant.
type W struct {
	kind  WKind
	count int
	label string
}

// WUnset returns the unset variant, deferring to the server's configured default.
func WUnset() W {
	return W{}
}

// WCount returns the count variant. The count is validated when the W is used to
// build an AckSpec.
func WCount(n int) W {
	return W{kind: WKindCount, count: n}
}

// WLabel returns the label variant. The label is validated when the W is used to
// build an AckSpec.
func WLabel(s string) W {
	return W{kind: WKindLabel, label: s}
}

// Kind returns the active variant.
func (w W) Kind() WKind {
	return w.kind
}

// Count returns the node count and true if the count variant is active.
func (w W) Count() (int, bool) {
	if w.kind != WKindCount {
		return 0, false
	}
	return w.count, true
}

// Label returns the label and true if the label variant is active.
func (w W) Label() (string, bool) {
	if w.kind != WKindLabel {
		return "", false
	}
	return w.label, true
}

func (w W) String() string {
	switch w.kind {
	case WKindCount:
		return strconv.Itoa(w.count)
	case WKindLabel:
		return w.label
	}
	return "<unset>"
}

func (w W) validate() error {
	switch w.kind {
	case WKindUnset:
	case WKindCount:
		if w.count < 0 {
			return wrapError(ErrInvalidArgument, fmt.Sprintf("w count must be >= 0, was %d", w.count))
		}
		if w.count > math.MaxInt32 {
			return wrapError(ErrInvalidArgument, fmt.Sprintf("w count must fit in 32 bits, was %d", w.count))
		}
	case WKindLabel:
		if w.label == "" {
			logDebugf("Rejected write concern label %s", redactUserData(w.label))
			return wrapError(ErrInvalidArgument, "w label cannot be empty")
		}
	default:
		return wrapError(ErrInvalidArgument, fmt.Sprintf("unknown w kind %s", w.kind))
	}

	return nil
}
