package game

import "fmt"

// IllegalMoveError reports a move outside the current legal set, including
// wrong-phase moves. It is fatal to the search invocation that produced it.
type IllegalMoveError struct {
	Move   Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

func illegal(m Move, reason string) error {
	return &IllegalMoveError{Move: m, Reason: reason}
}
