package ackspec

import (
	"fmt"
	"sort"
	"strings"
)

// NamedAckSpec pairs a registry name with its write concern.
type NamedAckSpec struct {
	Name string
	Spec AckSpec

	// Replacement marks the name as deprecated and names the entry to use instead.
	// The replacement may hold a different value than this entry, so it is only
	// reported to users; Canonical and NameOf never follow it.
	Replacement string
}

// Registry maps lowercase names to write concerns. It is never modified after
// NewRegistry returns, so concurrent lookups need no locking.
type Registry struct {
	entries map[string]NamedAckSpec
	order   []string
}

// NewRegistry builds a registry from entries. Names are stored lowercase; an
// empty or repeated name fails with ErrInvalidArgument. When several entries hold
// the same value, the first declared one is that value's canonical name.
func NewRegistry(entries []NamedAckSpec) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]NamedAckSpec, len(entries)),
		order:   make([]string, 0, len(entries)),
	}

	for _, entry := range entries {
		key := strings.ToLower(entry.Name)
		if key == "" {
			return nil, wrapError(ErrInvalidArgument, "write concern name cannot be empty")
		}
		if _, ok := r.entries[key]; ok {
			return nil, wrapError(ErrInvalidArgument, fmt.Sprintf("duplicate write concern name %s", key))
		}

		entry.Name = key
		entry.Replacement = strings.ToLower(entry.Replacement)
		r.entries[key] = entry
		r.order = append(r.order, key)
	}

	for _, key := range r.order {
		replacement := r.entries[key].Replacement
		if replacement == "" {
			continue
		}
		if _, ok := r.entries[replacement]; !ok {
			return nil, wrapError(ErrInvalidArgument, fmt.Sprintf("write concern name %s is replaced by unknown name %s", key, replacement))
		}
	}

	logDebugf("Built write concern registry with %d names", len(r.order))

	return r, nil
}

// Resolve returns the write concern registered under name, compared case-insensitively.
// A missing name returns false.
func (r *Registry) Resolve(name string) (AckSpec, bool) {
	entry, ok := r.entries[strings.ToLower(name)]
	if !ok {
		logTracef("No write concern registered as %s", redactUserData(name))
		return AckSpec{}, false
	}

	if entry.Replacement != "" {
		logWarnf("Write concern name %s is deprecated, prefer %s", entry.Name, entry.Replacement)
	}

	return entry.Spec, true
}

// Canonical returns the first declared name holding the same value as name.
func (r *Registry) Canonical(name string) (string, bool) {
	entry, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return "", false
	}

	for _, key := range r.order {
		if r.entries[key].Spec == entry.Spec {
			return key, true
		}
	}
	return entry.Name, true
}

// NameOf returns the first declared non-deprecated name for spec, falling back to
// a deprecated name when that is all the registry has.
func (r *Registry) NameOf(spec AckSpec) (string, bool) {
	var fallback string

	for _, key := range r.order {
		entry := r.entries[key]
		if entry.Spec != spec {
			continue
		}
		if entry.Replacement == "" {
			return key, true
		}
		if fallback == "" {
			fallback = key
		}
	}

	return fallback, fallback != ""
}

// IsDeprecated reports whether name is registered and deprecated.
func (r *Registry) IsDeprecated(name string) bool {
	entry, ok := r.entries[strings.ToLower(name)]
	return ok && entry.Replacement != ""
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.order)
}
