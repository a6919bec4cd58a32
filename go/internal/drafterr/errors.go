// Package drafterr defines the failure kinds returned by the draft core.
//
// Every error returned by an app layer either wraps one of the sentinels
// below or is an unclassified store failure. KindOf recovers the kind from
// anywhere in a wrapped chain so transports can map it to a response.
package drafterr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the transport layer.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindNotFound
	KindConflict
	KindUnavailable
	KindInvalidState
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	case KindInvalidState:
		return "invalid_state"
	default:
		return "unknown"
	}
}

// Error is a classified sentinel.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	ErrParticipantNotFound = newError(KindNotFound, "participant not found")
	ErrDraftNotFound       = newError(KindNotFound, "draft not found")
	ErrSetNotFound         = newError(KindNotFound, "no cards found for this set")

	ErrDuplicateParticipant = newError(KindConflict, "participant already exists")
	ErrAlreadyJoined        = newError(KindConflict, "participant already joined this draft")

	ErrNotInDraft           = newError(KindNotFound, "participant not in draft")
	ErrPoolEntryUnavailable = newError(KindUnavailable, "pool entry unavailable")

	ErrEmptyDraft          = newError(KindInvalidState, "no participants found for this draft")
	ErrOrderLocked         = newError(KindInvalidState, "turn order cannot change after picks have been made")
	ErrTurnOrderUnassigned = newError(KindInvalidState, "turn order has not been assigned")
	ErrNotYourTurn         = newError(KindInvalidState, "not this participant's turn")
)

// InvalidArgument builds a validation failure.
func InvalidArgument(format string, args ...any) error {
	return newError(KindInvalidArgument, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
