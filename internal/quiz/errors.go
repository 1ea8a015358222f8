package quiz

import (
	"errors"
	"fmt"
)

// Kind classifies the outcomes the core reports to its callers.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindQuestionNotFound
	KindInvalidOption
	KindAlreadyAnswered
	KindNoAnswersFound
	KindInconsistentState
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindQuestionNotFound:
		return "question_not_found"
	case KindInvalidOption:
		return "invalid_option"
	case KindAlreadyAnswered:
		return "already_answered"
	case KindNoAnswersFound:
		return "no_answers_found"
	case KindInconsistentState:
		return "inconsistent_state"
	default:
		return "internal"
	}
}

// Error is a core failure tagged with its Kind. Two errors match under
// errors.Is when their kinds are equal, so wrapped or detailed variants still
// compare equal to the package sentinels.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

var (
	ErrQuizNotFound       = &Error{Kind: KindNotFound, Message: "quiz not found"}
	ErrQuestionNotFound   = &Error{Kind: KindQuestionNotFound, Message: "question not found"}
	ErrInvalidOption      = &Error{Kind: KindInvalidOption, Message: "invalid option selected, please select a correct option"}
	ErrAlreadyAnswered    = &Error{Kind: KindAlreadyAnswered, Message: "you have already answered this question"}
	ErrNoAnswersFound     = &Error{Kind: KindNoAnswersFound, Message: "no answers found for this user in this quiz"}
	ErrInconsistentState  = &Error{Kind: KindInconsistentState, Message: "inconsistent quiz state"}
	ErrImporterNotEnabled = errors.New("question importer is not configured")
	ErrQuestionSource     = errors.New("question source unavailable")
)

// KindOf reports the Kind carried by err. Errors that did not originate in
// this package are KindInternal.
func KindOf(err error) Kind {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Kind
	}
	return KindInternal
}

func inconsistentState(format string, args ...any) error {
	return &Error{
		Kind:    KindInconsistentState,
		Message: ErrInconsistentState.Message,
		Err:     fmt.Errorf(format, args...),
	}
}
