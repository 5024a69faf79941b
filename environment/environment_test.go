package environment

import (
	"testing"

	"github.com/gql-run/gitql/types"
)

func newTestSchema() *Schema {
	s := NewSchema()
	s.TableFields["commits"] = []string{"hash", "author", "message"}
	s.FieldTypes["hash"] = types.TextType
	s.FieldTypes["author"] = types.TextType
	s.FieldTypes["message"] = types.TextType
	return s
}

func TestResolveTypeLocalVsGlobal(t *testing.T) {
	env := New(newTestSchema())
	env.Define("author", types.TextType)
	env.DefineGlobal("@count", types.IntType)

	if _, ok := env.ResolveType("author"); !ok {
		t.Error("expected local scope to resolve 'author'")
	}
	if _, ok := env.ResolveType("@count"); !ok {
		t.Error("expected globals to resolve '@count'")
	}
	if _, ok := env.ResolveType("@missing"); ok {
		t.Error("unregistered global should not resolve")
	}
}

func TestClearSessionKeepsGlobals(t *testing.T) {
	env := New(newTestSchema())
	env.Define("author", types.TextType)
	env.DefineGlobal("@count", types.IntType)

	env.ClearSession()

	if env.Contains("author") {
		t.Error("ClearSession should drop local scope")
	}
	if !env.Contains("@count") {
		t.Error("ClearSession should retain globals")
	}
}

func TestSchemaTablesSorted(t *testing.T) {
	s := NewSchema()
	s.TableFields["zeta"] = nil
	s.TableFields["alpha"] = nil
	got := s.Tables()
	if got[0] != "alpha" || got[1] != "zeta" {
		t.Errorf("got %v, want sorted [alpha zeta]", got)
	}
}

func TestSuggestColumnNearMiss(t *testing.T) {
	env := New(newTestSchema())
	if got := env.SuggestColumn("authr"); got != "author" {
		t.Errorf("SuggestColumn(%q) = %q, want %q", "authr", got, "author")
	}
}
