package ackspec

import (
	"errors"
)

var (
	// ErrInvalidArgument occurs when a write concern is built or derived from values
	// that violate its invariants: a negative count or timeout, an empty label, or
	// qualifiers attached to the server default.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownName occurs when text naming a write concern does not match any
	// registry entry. Registry lookups themselves never return it.
	ErrUnknownName = errors.New("unknown write concern name")
)
