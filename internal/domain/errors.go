package domain

import "errors"

// Kind classifies errors a caller can correct. Anything without a Kind is an
// unclassified fault.
type Kind string

const (
	KindInvalidOperation Kind = "INVALID_OPERATION"
	KindConflict         Kind = "CONFLICT"
	KindNotFound         Kind = "NOT_FOUND"
)

// Error is a classified domain error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrSelfChatroom     = newError(KindInvalidOperation, "cannot create chatroom with self")
	ErrChatroomExists   = newError(KindConflict, "chatroom already exists")
	ErrChatroomNotFound = newError(KindNotFound, "chatroom not found or not a member")
	ErrNoMessages       = newError(KindNotFound, "no messages")
	ErrNoChatrooms      = newError(KindNotFound, "no chatrooms")
)

// KindOf returns the Kind of err, or "" when err is not a domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
