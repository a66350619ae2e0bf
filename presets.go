package ackspec

import (
	"github.com/docdb/ackspec/wire"
)

var (
	// Acknowledged waits for the primary to acknowledge, using the server's
	// configured default write concern.
	Acknowledged = Unset()

	// Unacknowledged returns as soon as the write is on the socket. Network errors
	// are reported, server errors are not.
	Unacknowledged = mustMake(WCount(0), 0, false, false)

	// W1 waits for acknowledgment from a single member.
	W1 = mustMake(WCount(1), 0, false, false)

	// W2 waits for acknowledgment from two members.
	W2 = mustMake(WCount(2), 0, false, false)

	// W3 waits for acknowledgment from three members.
	W3 = mustMake(WCount(3), 0, false, false)

	// Journaled waits for the primary to group commit the write to its journal.
	Journaled = mustMake(WCount(1), 0, false, true)

	// MajorityAck waits for a majority of members to acknowledge.
	MajorityAck = mustMake(WLabel(wire.LabelMajority), 0, false, false)

	// Fsynced waits for the primary to flush the write to disk.
	//
	// Deprecated: prefer Journaled.
	Fsynced = mustMake(WCount(1), 0, true, false)
)

// Order matters: the first name declared for a value is its canonical name.
var namedAckSpecs = []NamedAckSpec{
	{Name: "acknowledged", Spec: Acknowledged},
	{Name: "server_default", Spec: Acknowledged},
	{Name: "unacknowledged", Spec: Unacknowledged},
	{Name: "w1", Spec: W1},
	{Name: "w2", Spec: W2},
	{Name: "w3", Spec: W3},
	{Name: "journaled", Spec: Journaled},
	{Name: "majority", Spec: MajorityAck},
	{Name: "fsynced", Spec: Fsynced, Replacement: "journaled"},
	{Name: "replica_acknowledged", Spec: W2, Replacement: "w2"},
	{Name: "normal", Spec: Unacknowledged, Replacement: "unacknowledged"},
	{Name: "safe", Spec: Acknowledged, Replacement: "acknowledged"},
	{Name: "fsync_safe", Spec: Fsynced, Replacement: "journaled"},
	{Name: "journal_safe", Spec: Journaled, Replacement: "journaled"},
	{Name: "replicas_safe", Spec: W2, Replacement: "w2"},
}

var defaultRegistry = mustNewRegistry(namedAckSpecs)

// DefaultRegistry returns the registry of the named write concerns above.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Resolve looks name up in DefaultRegistry, case-insensitively.
func Resolve(name string) (AckSpec, bool) {
	return defaultRegistry.Resolve(name)
}

func mustMake(w W, timeoutMillis int, fsync, journal bool) AckSpec {
	spec, err := Make(w, timeoutMillis, fsync, journal)
	if err != nil {
		panic(err)
	}
	return spec
}

func mustNewRegistry(entries []NamedAckSpec) *Registry {
	r, err := NewRegistry(entries)
	if err != nil {
		panic(err)
	}
	return r
}
