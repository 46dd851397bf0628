package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "dropped with resource and id",
			err:  AlreadyDropped("output", 0xAAAA),
			want: "[already_dropped] output 0xAAAA",
		},
		{
			name: "borrowed with resource and id",
			err:  AlreadyBorrowed("tablet-pad", 0xBEEF),
			want: "[already_borrowed] tablet-pad 0xBEEF",
		},
		{
			name: "closed with detail",
			err:  Closed("backend shut down"),
			want: "[closed]: backend shut down",
		},
		{
			name: "unknown object",
			err:  UnknownObject(0x10),
			want: "[unknown_object] 0x10: no such native object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := AlreadyDropped("output", 0xAAAA)

	if !stderrors.Is(err, AlreadyDropped("", 0)) {
		t.Fatal("expected match on kind alone")
	}
	if stderrors.Is(err, AlreadyBorrowed("", 0)) {
		t.Fatal("kinds should not cross-match")
	}
}

func TestError_Predicates(t *testing.T) {
	dropped := AlreadyDropped("pointer", 1)
	borrowed := AlreadyBorrowed("pointer", 1)

	if !IsAlreadyDropped(dropped) || IsAlreadyDropped(borrowed) {
		t.Fatal("IsAlreadyDropped misclassified")
	}
	if !IsAlreadyBorrowed(borrowed) || IsAlreadyBorrowed(dropped) {
		t.Fatal("IsAlreadyBorrowed misclassified")
	}
	if IsAlreadyDropped(nil) || IsAlreadyBorrowed(nil) {
		t.Fatal("predicates must be false for nil")
	}
}

func TestError_PredicatesSeeThroughWrapping(t *testing.T) {
	inner := AlreadyDropped("keyboard", 7)
	wrapped := fmt.Errorf("focus update: %w", inner)

	if !IsAlreadyDropped(wrapped) {
		t.Fatal("predicate should unwrap fmt-wrapped errors")
	}
}

func TestError_UnwrapCause(t *testing.T) {
	cause := stderrors.New("yaml: line 3")
	err := Wrap(KindInvalidData, cause, "parse scenario")

	if !stderrors.Is(err, cause) {
		t.Fatal("Unwrap should expose the cause")
	}
	if !strings.Contains(err.Error(), "caused by: yaml: line 3") {
		t.Fatalf("cause missing from message: %s", err.Error())
	}
}

func TestInvalidData_Formats(t *testing.T) {
	err := InvalidData("step %d: unknown action %q", 3, "warp")
	want := `step 3: unknown action "warp"`
	if err.Detail != want {
		t.Fatalf("Detail = %q, want %q", err.Detail, want)
	}
}
