package entity

import "errors"

// Error kinds shared across services and mapped to HTTP status codes at the
// handler boundary. Store and processor failures are wrapped before they
// reach a caller; raw driver errors never do. The auth middleware writes its
// 403 body directly since it rejects before any handler runs; ErrForbidden
// keeps the 403 mapping available to handlers alongside the rest of the
// taxonomy.
var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUnauthenticated = errors.New("unauthorized access")
	ErrForbidden       = errors.New("forbidden access")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream failure")
)
