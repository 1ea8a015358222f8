package quiz

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "sentinel", err: ErrAlreadyAnswered, want: KindAlreadyAnswered},
		{name: "wrapped", err: fmt.Errorf("submit: %w", ErrInvalidOption), want: KindInvalidOption},
		{name: "detailed", err: inconsistentState("question %q missing", "q1"), want: KindInconsistentState},
		{name: "foreign", err: errors.New("boom"), want: KindInternal},
		{name: "nil", err: nil, want: KindInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestErrorIsMatchesByKind(t *testing.T) {
	detailed := inconsistentState("quiz %q missing", "quiz-1")
	if !errors.Is(detailed, ErrInconsistentState) {
		t.Fatalf("detailed error does not match its sentinel")
	}
	if errors.Is(detailed, ErrQuizNotFound) {
		t.Fatalf("errors of different kinds matched")
	}

	wrapped := fmt.Errorf("load: %w", &Error{Kind: KindNotFound, Message: "quiz not found", Err: errors.New("no rows")})
	if !errors.Is(wrapped, ErrQuizNotFound) {
		t.Fatalf("wrapped not-found error does not match ErrQuizNotFound")
	}
	if got := wrapped.Error(); got != "load: quiz not found: no rows" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestKindString(t *testing.T) {
	if KindNoAnswersFound.String() != "no_answers_found" {
		t.Fatalf("unexpected kind name %q", KindNoAnswersFound.String())
	}
	if Kind(99).String() != "internal" {
		t.Fatalf("unknown kinds should read as internal, got %q", Kind(99).String())
	}
}
