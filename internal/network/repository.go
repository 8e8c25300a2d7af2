package network

import (
	"context"
	"errors"
)

// ErrContactNotFound is returned when a repository has no contact for the id.
var ErrContactNotFound = errors.New("contact not found")

// ContactRepository provides contact snapshots to the engine.
type ContactRepository interface {
	GetContact(ctx context.Context, id string) (*Contact, error)
	// ListCandidates returns potential introduction targets for the seeker,
	// excluding the seeker itself. limit <= 0 means no limit.
	ListCandidates(ctx context.Context, seekerID string, limit int) (*Contacts, error)
}

// ConnectionRepository provides edges of the social graph.
type ConnectionRepository interface {
	ConnectionsOf(ctx context.Context, id string) ([]*Connection, error)
	All(ctx context.Context) ([]*Connection, error)
	CountConnections(ctx context.Context, id string) (int, error)
}
