package network

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot is a point-in-time copy of the whole network, typically loaded
// from a JSON file. It implements both repository interfaces, which makes it
// the default backing store for the cli and for tests.
type Snapshot struct {
	Contacts    []*Contact    `json:"contacts"`
	Connections []*Connection `json:"connections"`

	byID      map[string]*Contact
	adjacency map[string][]*Connection
}

// LoadSnapshot reads a network snapshot from a JSON file.
func LoadSnapshot(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var snap Snapshot
	if err := json.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding network snapshot %q: %w", path, err)
	}

	snap.index()
	return &snap, nil
}

// NewSnapshot builds an indexed snapshot from in-memory data.
func NewSnapshot(contacts []*Contact, connections []*Connection) *Snapshot {
	snap := &Snapshot{Contacts: contacts, Connections: connections}
	snap.index()
	return snap
}

func (s *Snapshot) index() {
	s.byID = make(map[string]*Contact, len(s.Contacts))
	for _, contact := range s.Contacts {
		s.byID[contact.ID] = contact
	}

	s.adjacency = make(map[string][]*Connection)
	for _, conn := range s.Connections {
		normalized := conn.Normalized()
		s.adjacency[conn.From] = append(s.adjacency[conn.From], normalized)
		s.adjacency[conn.To] = append(s.adjacency[conn.To], &Connection{
			From:     normalized.To,
			To:       normalized.From,
			Strength: normalized.Strength,
			Trust:    normalized.Trust,
		})
	}
}

func (s *Snapshot) GetContact(_ context.Context, id string) (*Contact, error) {
	contact, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContactNotFound, id)
	}
	return contact, nil
}

func (s *Snapshot) ListCandidates(_ context.Context, seekerID string, limit int) (*Contacts, error) {
	if _, ok := s.byID[seekerID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrContactNotFound, seekerID)
	}

	candidates := &Contacts{}
	for _, contact := range s.Contacts {
		if contact.ID == seekerID {
			continue
		}
		candidates.Items = append(candidates.Items, contact)
		if limit > 0 && candidates.Len() >= limit {
			break
		}
	}
	return candidates, nil
}

func (s *Snapshot) ConnectionsOf(_ context.Context, id string) ([]*Connection, error) {
	return s.adjacency[id], nil
}

func (s *Snapshot) All(_ context.Context) ([]*Connection, error) {
	return s.Connections, nil
}

func (s *Snapshot) CountConnections(_ context.Context, id string) (int, error) {
	return len(s.adjacency[id]), nil
}
