// Package ackspec models the write concern a client attaches to a write: how many
// members, or which named policy, must acknowledge it, how long the server may
// wait for them, and whether the write must reach the journal or disk first.
package ackspec

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/docdb/ackspec/wire"
)

// AckSpec is an immutable write concern. The zero value is the server default,
// identical to Unset().
type AckSpec struct {
	w             W
	timeoutMillis int
	fsync         bool
	journal       bool
}

// Make builds an AckSpec from all of its fields. The unset w cannot be combined
// with a timeout or either durability flag.
func Make(w W, timeoutMillis int, fsync, journal bool) (AckSpec, error) {
	if err := w.validate(); err != nil {
		return AckSpec{}, err
	}

	if timeoutMillis < 0 {
		return AckSpec{}, wrapError(ErrInvalidArgument, fmt.Sprintf("wtimeout must be >= 0, was %d", timeoutMillis))
	}
	if timeoutMillis > math.MaxInt32 {
		return AckSpec{}, wrapError(ErrInvalidArgument, fmt.Sprintf("wtimeout must fit in 32 bits, was %d", timeoutMillis))
	}

	if w.kind == WKindUnset {
		if timeoutMillis != 0 {
			return AckSpec{}, wrapError(ErrInvalidArgument, "wtimeout must be 0 when w is unset")
		}
		if fsync {
			return AckSpec{}, wrapError(ErrInvalidArgument, "fsync must be false when w is unset")
		}
		if journal {
			return AckSpec{}, wrapError(ErrInvalidArgument, "j must be false when w is unset")
		}
	}

	return AckSpec{
		w:             w,
		timeoutMillis: timeoutMillis,
		fsync:         fsync,
		journal:       journal,
	}, nil
}

// Unset returns the server default write concern.
func Unset() AckSpec {
	return AckSpec{}
}

// FromCount returns a write concern waiting for n members to apply the write.
// A count of 0 requests no acknowledgment at all.
func FromCount(n int) (AckSpec, error) {
	return Make(WCount(n), 0, false, false)
}

// FromLabel returns a write concern waiting on a named policy, either "majority"
// or a tag set name. Do not pass string representations of counts.
func FromLabel(s string) (AckSpec, error) {
	return Make(WLabel(s), 0, false, false)
}

// Majority returns a majority write concern with the given qualifiers.
func Majority(timeoutMillis int, fsync, journal bool) (AckSpec, error) {
	return Make(WLabel(wire.LabelMajority), timeoutMillis, fsync, journal)
}

// W returns the acknowledgment level.
func (s AckSpec) W() W {
	return s.w
}

// TimeoutMillis returns how long the server may wait for acknowledgment, 0 meaning
// indefinitely.
func (s AckSpec) TimeoutMillis() int {
	return s.timeoutMillis
}

// Timeout returns TimeoutMillis as a duration.
func (s AckSpec) Timeout() time.Duration {
	return time.Duration(s.timeoutMillis) * time.Millisecond
}

// Fsync reports whether the server must flush to disk before acknowledging.
//
// Deprecated: prefer Journal.
func (s AckSpec) Fsync() bool {
	return s.fsync
}

// Journal reports whether the server must commit to its journal before acknowledging.
func (s AckSpec) Journal() bool {
	return s.journal
}

// WithCount returns a copy with w replaced by a member count.
func (s AckSpec) WithCount(n int) (AckSpec, error) {
	return Make(WCount(n), s.timeoutMillis, s.fsync, s.journal)
}

// WithLabel returns a copy with w replaced by a named policy.
func (s AckSpec) WithLabel(label string) (AckSpec, error) {
	return Make(WLabel(label), s.timeoutMillis, s.fsync, s.journal)
}

// WithTimeoutMillis returns a copy with the given wtimeout. An unset w becomes a
// count of 1.
func (s AckSpec) WithTimeoutMillis(timeoutMillis int) (AckSpec, error) {
	return Make(s.concreteW(), timeoutMillis, s.fsync, s.journal)
}

// WithFsync returns a copy with the given fsync flag. An unset w becomes a count of 1.
//
// Deprecated: prefer WithJournal.
func (s AckSpec) WithFsync(fsync bool) (AckSpec, error) {
	return Make(s.concreteW(), s.timeoutMillis, fsync, s.journal)
}

// WithJournal returns a copy with the given journal flag. An unset w becomes a
// count of 1.
func (s AckSpec) WithJournal(journal bool) (AckSpec, error) {
	return Make(s.concreteW(), s.timeoutMillis, s.fsync, journal)
}

// A qualifier on the server default needs an explicit level to attach to.
func (s AckSpec) concreteW() W {
	if s.w.kind == WKindUnset {
		return WCount(1)
	}
	return s.w
}

// IsServerDefault reports whether w is unset.
func (s AckSpec) IsServerDefault() bool {
	return s.w.kind == WKindUnset
}

// IsAcknowledged reports whether writes using this concern wait for a response.
// Only a count of 0 is unacknowledged; the server default and every label count
// as acknowledged.
func (s AckSpec) IsAcknowledged() bool {
	if n, ok := s.w.Count(); ok {
		return n > 0
	}
	return true
}

// Equal reports whether both write concerns have identical fields. It is
// equivalent to ==.
func (s AckSpec) Equal(other AckSpec) bool {
	return s == other
}

// Hash returns a digest of all four fields. Equal values hash equal.
func (s AckSpec) Hash() uint64 {
	var buf [8]byte
	d := xxhash.New()

	buf[0] = byte(s.w.kind)
	_, _ = d.Write(buf[:1])

	switch s.w.kind {
	case WKindCount:
		binary.BigEndian.PutUint32(buf[:4], uint32(s.w.count))
		_, _ = d.Write(buf[:4])
	case WKindLabel:
		binary.BigEndian.PutUint32(buf[:4], uint32(len(s.w.label)))
		_, _ = d.Write(buf[:4])
		_, _ = d.WriteString(s.w.label)
	}

	binary.BigEndian.PutUint32(buf[:4], uint32(s.timeoutMillis))
	_, _ = d.Write(buf[:4])

	var flags byte
	if s.fsync {
		flags |= 0x01
	}
	if s.journal {
		flags |= 0x02
	}
	buf[0] = flags
	_, _ = d.Write(buf[:1])

	return d.Sum64()
}

func (s AckSpec) String() string {
	return fmt.Sprintf("AckSpec{w=%s, wtimeout=%d, fsync=%t, j=%t}", s.w, s.timeoutMillis, s.fsync, s.journal)
}

// AsWireDocument returns the fields to send to the server. Unset or false fields
// are omitted, so the server default encodes as the empty document.
func (s AckSpec) AsWireDocument() wire.Document {
	var doc wire.Document

	switch s.w.kind {
	case WKindCount:
		doc = doc.With(wire.FieldW, int32(s.w.count))
	case WKindLabel:
		doc = doc.With(wire.FieldW, s.w.label)
	}

	if s.timeoutMillis > 0 {
		doc = doc.With(wire.FieldWTimeout, int32(s.timeoutMillis))
	}
	if s.fsync {
		doc = doc.With(wire.FieldFsync, true)
	}
	if s.journal {
		doc = doc.With(wire.FieldJournal, true)
	}

	return doc
}

// FromWireDocument rebuilds a write concern from the fields of a wire document.
// Absent fields take their defaults: no w is the server default, no wtimeout is 0.
func FromWireDocument(doc wire.Document) (AckSpec, error) {
	var (
		w             W
		timeoutMillis int
		fsync         bool
		journal       bool
	)

	for _, field := range doc.Fields() {
		switch field.Key {
		case wire.FieldW:
			if label, ok := field.Value.(string); ok {
				w = WLabel(label)
				continue
			}
			n, ok := wireInt(field.Value)
			if !ok {
				return AckSpec{}, wrapError(ErrInvalidArgument, fmt.Sprintf("w must be an integer or string, was %T", field.Value))
			}
			w = WCount(n)
		case wire.FieldWTimeout:
			n, ok := wireInt(field.Value)
			if !ok {
				return AckSpec{}, wrapError(ErrInvalidArgument, fmt.Sprintf("wtimeout must be an integer, was %T", field.Value))
			}
			timeoutMillis = n
		case wire.FieldFsync:
			b, ok := field.Value.(bool)
			if !ok {
				return AckSpec{}, wrapError(ErrInvalidArgument, fmt.Sprintf("fsync must be a boolean, was %T", field.Value))
			}
			fsync = b
		case wire.FieldJournal:
			b, ok := field.Value.(bool)
			if !ok {
				return AckSpec{}, wrapError(ErrInvalidArgument, fmt.Sprintf("j must be a boolean, was %T", field.Value))
			}
			journal = b
		default:
			return AckSpec{}, wrapError(ErrInvalidArgument, fmt.Sprintf("unknown write concern field %s", field.Key))
		}
	}

	return Make(w, timeoutMillis, fsync, journal)
}

func wireInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int32:
		return int(n), true
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
