package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func mustTransition(t *testing.T, dom, rng string) Transition {
	t.Helper()
	tr, err := ParseTransition(dom, rng)
	if err != nil {
		t.Fatalf("ParseTransition(%q, %q): %v", dom, rng, err)
	}
	return tr
}

func TestMachine_TapeLibrary(t *testing.T) {
	m := NewMachine("lib", "q0", []State{"qf"}, []Transition{
		mustTransition(t, "q0,b,a", "q1,x,y,>,>"),
		mustTransition(t, "q1,a,c", "q0,z,z,<,-"),
		mustTransition(t, "q1,b,b", "qf,b,b,-,-"),
	})

	want := []Symbol{"b", "a", "c"}
	if got := m.TapeLibrary(); !reflect.DeepEqual(got, want) {
		t.Errorf("TapeLibrary() = %v, want %v (write symbols must not count)", got, want)
	}
	if m.Tapes() != 2 {
		t.Errorf("Tapes() = %d, want 2", m.Tapes())
	}
}

func TestMachine_Empty(t *testing.T) {
	m := NewMachine("empty", "q0", nil, nil)
	if m.Len() != 0 || m.Tapes() != 0 || len(m.TapeLibrary()) != 0 {
		t.Errorf("empty machine reports content: len=%d tapes=%d lib=%v", m.Len(), m.Tapes(), m.TapeLibrary())
	}
	if _, ok := m.Origin(0); ok {
		t.Error("Origin(0) should be unknown on an empty machine")
	}
}

func TestMachine_MarshalText(t *testing.T) {
	m := NewMachine("Inc", "q0", []State{"qf", "qg"}, []Transition{
		mustTransition(t, "q0,1", "qf,0,>"),
	}, WithHeaders(Header{Key: "Author", Value: "me"}))

	data, err := m.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"Name: Inc",
		"StartState: q0",
		"AcceptStates: qf,qg",
		"Author: me",
		"q0,1",
		"qf,0,>",
		"",
	}, "\n")
	if string(data) != want {
		t.Errorf("MarshalText() =\n%s\nwant\n%s", data, want)
	}
}

func TestMachine_MarshalTextEmptyAccept(t *testing.T) {
	m := NewMachine("Flat", "q0", nil, nil)
	data, _ := m.MarshalText()
	if !strings.Contains(string(data), "AcceptStates:\n") {
		t.Errorf("expected bare AcceptStates header, got:\n%s", data)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&FieldError{Key: KeyName}, KindMissingField},
		{&AlphabetError{Symbols: []Symbol{Boundary}}, KindInvalidAlphabet},
		{&ArityError{Index: 1, Want: 2, Got: 3}, KindInconsistentArity},
		{&TransitionError{Reason: "x"}, KindMalformedTransition},
		{Join(&ArityError{Index: 1, Want: 2, Got: 3}, &AlphabetError{Symbols: []Symbol{Blank}}), KindInvalidAlphabet},
		{errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestAggregateError_Is(t *testing.T) {
	err := Join(&ArityError{Index: 2, Want: 1, Got: 2}, &AlphabetError{Symbols: []Symbol{EndOfTape}})

	var agg *AggregateError
	if !errors.As(err, &agg) || len(agg.Errors) != 2 {
		t.Fatalf("expected AggregateError with 2 errors, got %T %v", err, err)
	}
	if !errors.Is(err, ErrInconsistentArity) || !errors.Is(err, ErrInvalidAlphabet) {
		t.Errorf("errors.Is should see through the aggregate: %v", err)
	}
	if !strings.Contains(err.Error(), "2 validation errors") {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if Join(nil, nil) != nil {
		t.Error("Join of nils should be nil")
	}
}
