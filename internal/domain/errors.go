package domain

import "errors"

var (
	// Parse errors
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrUnknownCommand = errors.New("unknown command")

	// Participant errors
	ErrUnknownParticipant  = errors.New("sender is not a configured participant")
	ErrInvalidParticipants = errors.New("invalid participant pair")

	// Ledger errors
	ErrEntryNotFound  = errors.New("entry not found")
	ErrNotCorrectable = errors.New("entry kind cannot be corrected")
	ErrInvalidKind    = errors.New("invalid entry kind")
)
