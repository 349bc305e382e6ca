package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrConflict              = errors.New("conflict")
	ErrRoomNumberTaken       = errors.New("room number already in use")
	ErrInvalidRange          = errors.New("invalid stay range")
	ErrInvalidID             = errors.New("invalid id")
	ErrInvalidStatus         = errors.New("invalid room status")
	ErrInvalidPolicy         = errors.New("invalid blocking policy")
	ErrInvalidRoomInput      = errors.New("invalid room input")
	ErrStorage               = errors.New("storage failure")
)

// ConflictError reports a write refused because reservations still depend on the room.
type ConflictError struct {
	RoomID       int64
	Action       string
	Reservations int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s room %d: blocked by %d reservation(s)", e.Action, e.RoomID, e.Reservations)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// StorageError wraps a driver or statement failure with the repository operation name.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// ValidationError lists the RoomInput fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid room input: %v", e.Fields)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRoomInput
}
