package diagnostic

import (
	"testing"

	"github.com/gql-run/gitql/token"
)

func TestClosestNameWithinDistance(t *testing.T) {
	got := ClosestName("nmae", []string{"name", "email", "title"})
	if got != "name" {
		t.Fatalf("got %q, want %q", got, "name")
	}
}

func TestClosestNameTooFar(t *testing.T) {
	got := ClosestName("zzzzzzzz", []string{"name", "email", "title"})
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestUnknownNameAttachesSuggestion(t *testing.T) {
	d := UnknownName("parser", "column", "nmae", token.Pos{Line: 1, Column: 1}, []string{"name"})
	if len(d.Helps) != 1 {
		t.Fatalf("expected a help suggestion, got %v", d.Helps)
	}
}

func TestDiagnosticErrorFormatting(t *testing.T) {
	d := New("parser", "unexpected token", token.Pos{Line: 3, Column: 7})
	want := "parser(3:7): unexpected token"
	if d.Error() != want {
		t.Fatalf("got %q, want %q", d.Error(), want)
	}
}
