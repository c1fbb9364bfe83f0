package core

import "fmt"

var (
	// ErrEmptyName is returned when a record is added under an empty name.
	ErrEmptyName = fmt.Errorf("manipulation name must not be empty")

	// ErrZeroPayload is returned when a record carries its payload type's
	// zero value (nil for pointer or interface payloads). An unset payload is
	// a caller bug and is rejected before any store mutation.
	ErrZeroPayload = fmt.Errorf("manipulation payload must not be zero")
)
