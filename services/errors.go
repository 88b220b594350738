package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/brackets"
)

var (
	// ErrStoreUnavailable wraps every unexpected failure of the record store.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrPreconditionViolated is the parent of every rule an operation checks before running.
	ErrPreconditionViolated = errors.New("precondition violated")

	ErrInvalidReference = errors.New("match references a player that is not registered")

	ErrSelfMatch        = fmt.Errorf("%w: winner and loser must be different players", ErrPreconditionViolated)
	ErrOddPlayerCount   = brackets.ErrOddPlayerCount
	ErrNotEnoughPlayers = brackets.ErrNotEnoughPlayers

	ErrInvalidCredentials = errors.New("invalid organizer password")
	ErrLoginDisabled      = errors.New("organizer login is not configured")
	ErrStorageDisabled    = errors.New("snapshot storage is not configured")
	ErrInvalidSnapshotKey = errors.New("not a snapshot key")
)

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
