package engine

import "errors"

var (
	ErrUnknownEntity      = errors.New("unknown entity")
	ErrInvalidBody        = errors.New("invalid body")
	ErrInvalidGrid        = errors.New("invalid grid")
	ErrOutOfBounds        = errors.New("out of bounds")
	ErrNotActivable       = errors.New("entity is not activable")
	ErrNotShooting        = errors.New("entity cannot shoot")
	ErrPlacementExhausted = errors.New("random placement attempts exhausted")
	ErrInvariant          = errors.New("grid invariant violated")
)
