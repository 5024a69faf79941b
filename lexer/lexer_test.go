package lexer

import (
	"testing"

	"github.com/gql-run/gitql/token"
)

func collect(t *testing.T, input string) []token.Item {
	t.Helper()
	l := New(input)
	var items []token.Item
	for {
		it, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		items = append(items, it)
		if it.Type == token.EOF {
			return items
		}
	}
}

func TestLexKeywordsCaseInsensitive(t *testing.T) {
	items := collect(t, "SeLeCt * from T")
	want := []token.Token{token.SELECT, token.ASTERISK, token.FROM, token.IDENT, token.EOF}
	if len(items) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(items), len(want))
	}
	for i, w := range want {
		if items[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, items[i].Type, w)
		}
	}
}

func TestLexStringEscapes(t *testing.T) {
	items := collect(t, `'a\nb\'c'`)
	if items[0].Type != token.STRING || items[0].Value != "a\nb'c" {
		t.Fatalf("got %q, want %q", items[0].Value, "a\nb'c")
	}
}

func TestLexNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Token
	}{
		{"123", token.INT},
		{"0x1F", token.INT},
		{"0o17", token.INT},
		{"0b101", token.INT},
		{"1.5", token.FLOAT},
		{"1e10", token.FLOAT},
		{".5", token.FLOAT},
	}
	for _, tt := range tests {
		items := collect(t, tt.input)
		if items[0].Type != tt.typ {
			t.Errorf("%q: got %s, want %s", tt.input, items[0].Type, tt.typ)
		}
		if items[0].Value != tt.input {
			t.Errorf("%q: literal round-trip got %q", tt.input, items[0].Value)
		}
	}
}

func TestLexOperators(t *testing.T) {
	items := collect(t, "<= <> != <=> ::")
	want := []token.Token{token.LTE, token.NEQ, token.NEQ, token.SPACESHIP, token.DCOLON, token.EOF}
	for i, w := range want {
		if items[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, items[i].Type, w)
		}
	}
}

func TestLexGlobalVariable(t *testing.T) {
	items := collect(t, "@name")
	if items[0].Type != token.GLOBAL || items[0].Value != "@name" {
		t.Fatalf("got %+v", items[0])
	}
}

func TestLexUnterminatedString(t *testing.T) {
	l := New("'abc")
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected unterminated string error")
	}
}

func TestLexSkipsCommentsAndWhitespace(t *testing.T) {
	items := collect(t, "SELECT -- trailing comment\n  /* block */ 1")
	want := []token.Token{token.SELECT, token.INT, token.EOF}
	if len(items) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(items), len(want))
	}
}

func TestLexPeekDoesNotConsume(t *testing.T) {
	l := New("SELECT 1")
	first, _ := l.Peek()
	second, _ := l.Next()
	if first.Type != second.Type || first.Value != second.Value {
		t.Fatalf("peek/next mismatch: %+v vs %+v", first, second)
	}
	next, _ := l.Next()
	if next.Type != token.INT {
		t.Fatalf("expected INT after SELECT, got %s", next.Type)
	}
}

func TestLexUnknownCharacter(t *testing.T) {
	l := New("SELECT $ FROM t")
	l.Next()
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected error for unknown character")
	}
}
