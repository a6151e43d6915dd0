package texasholdem

import "fmt"

// Kind classifies an error returned by the game
type Kind string

// error kinds
const (
	KindRoomFull         Kind = "room_full"
	KindNotEnoughPlayers Kind = "not_enough_players"
	KindNotYourTurn      Kind = "not_your_turn"
	KindIllegalAction    Kind = "illegal_action"
	KindUnauthorized     Kind = "unauthorized"
	KindRoomNotFound     Kind = "room_not_found"
	KindPlayerNotFound   Kind = "player_not_found"
)

// Error is a validation error that is safe to return to the client
// A rejected operation never mutates the game
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any error of the same kind, so errors.Is(err, ErrNotYourTurn) works with custom messages
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// sentinel errors, match with errors.Is()
var (
	ErrRoomFull         = &Error{Kind: KindRoomFull, Message: "the room is full"}
	ErrNotEnoughPlayers = &Error{Kind: KindNotEnoughPlayers, Message: "at least two players with chips are required"}
	ErrNotYourTurn      = &Error{Kind: KindNotYourTurn, Message: "it is not your turn"}
	ErrIllegalAction    = &Error{Kind: KindIllegalAction, Message: "you cannot perform that action"}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized, Message: "only the room creator can do that"}
	ErrRoomNotFound     = &Error{Kind: KindRoomNotFound, Message: "room not found"}
	ErrPlayerNotFound   = &Error{Kind: KindPlayerNotFound, Message: "player not found"}
)

func newError(kind *Error, format string, a ...interface{}) *Error {
	return &Error{
		Kind:    kind.Kind,
		Message: fmt.Sprintf(format, a...),
	}
}
