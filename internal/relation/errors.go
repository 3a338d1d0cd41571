package relation

import "errors"

// Sentinel errors returned by the engines. The HTTP layer maps these to
// status codes with errors.Is; anything else is a store failure.
var (
	// ErrSelfReference is returned when a caller targets their own account.
	ErrSelfReference = errors.New("relation: cannot target yourself")

	// ErrAlreadyExists is returned when a send would duplicate an edge that
	// is already pending or accepted.
	ErrAlreadyExists = errors.New("relation: edge already exists")

	// ErrNotFound is returned when an accept/reject/unsend matches no edge.
	// It deliberately does not distinguish "never existed", "already
	// resolved" and "wrong caller".
	ErrNotFound = errors.New("relation: no matching edge")
)
