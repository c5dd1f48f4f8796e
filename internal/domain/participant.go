package domain

import (
	"fmt"
	"strings"
)

// Participant is one side of the shared ledger.
type Participant struct {
	ID   string
	Name string
}

// DisplayName returns the configured name, falling back to the raw identity.
func (p Participant) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// ParticipantPair is the fixed pair of counterparties sharing the ledger.
type ParticipantPair struct {
	A Participant
	B Participant
}

// NewParticipantPair validates and builds a ParticipantPair.
func NewParticipantPair(a, b Participant) (ParticipantPair, error) {
	a.ID = strings.TrimSpace(a.ID)
	b.ID = strings.TrimSpace(b.ID)

	if a.ID == "" || b.ID == "" {
		return ParticipantPair{}, fmt.Errorf("%w: both participant identities are required", ErrInvalidParticipants)
	}

	if a.ID == b.ID {
		return ParticipantPair{}, fmt.Errorf("%w: participants must be distinct", ErrInvalidParticipants)
	}

	return ParticipantPair{A: a, B: b}, nil
}

// Contains reports whether id is one of the two participants.
func (p ParticipantPair) Contains(id string) bool {
	return id == p.A.ID || id == p.B.ID
}

// Counterpart returns the other participant for id.
func (p ParticipantPair) Counterpart(id string) (string, bool) {
	switch id {
	case p.A.ID:
		return p.B.ID, true
	case p.B.ID:
		return p.A.ID, true
	default:
		return "", false
	}
}

// Name returns the display name for id, or id itself when unknown.
func (p ParticipantPair) Name(id string) string {
	switch id {
	case p.A.ID:
		return p.A.DisplayName()
	case p.B.ID:
		return p.B.DisplayName()
	default:
		return id
	}
}
