// Package dserrors holds the error type used to carry a player-facing message
// alongside the usual technical error text.
package dserrors

import (
	"errors"
	"fmt"
)

// PlayerError is an error caused by player input that cannot be carried out,
// either because it was not understood or because it asks for something
// impossible right now. Message is what the player is shown; Cause is the
// condition behind it and is what errors.Is matches against.
type PlayerError struct {
	Message string
	Cause   error
}

func (e *PlayerError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("player error %q", e.Message)
	}
	return fmt.Sprintf("%s (told player %q)", e.Cause.Error(), e.Message)
}

func (e *PlayerError) Unwrap() error {
	return e.Cause
}

// Wrap returns a PlayerError that shows msg to the player and wraps cause.
func Wrap(cause error, msg string) error {
	return &PlayerError{Message: msg, Cause: cause}
}

// GameMessage gets the message to display to the player for the given error.
// If err is or wraps a PlayerError, its Message is returned. Otherwise,
// err.Error() is returned.
func GameMessage(err error) string {
	var pe *PlayerError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}
