package executor

import (
	"bytes"
	"testing"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/object"
	"github.com/gql-run/gitql/parser"
	"github.com/gql-run/gitql/stdlib"
	"github.com/gql-run/gitql/types"
	"github.com/gql-run/gitql/values"
)

// fakeProvider is an in-memory DataProvider test double: a fixed set
// of named tables, each a column-name-indexed row matrix.
type fakeProvider struct {
	tables map[string][]map[string]values.Value
}

func (f *fakeProvider) Provide(table string, selectedColumns []string) ([]object.Row, error) {
	rows := f.tables[table]
	out := make([]object.Row, len(rows))
	for i, r := range rows {
		vs := make([]values.Value, len(selectedColumns))
		for j, c := range selectedColumns {
			vs[j] = r[c]
		}
		out[i] = object.Row{Values: vs}
	}
	return out, nil
}

func testEnv() *environment.Environment {
	schema := environment.NewSchema()
	schema.TableFields["commits"] = []string{"hash", "author", "additions", "deletions"}
	schema.FieldTypes["hash"] = types.TextType
	schema.FieldTypes["author"] = types.TextType
	schema.FieldTypes["additions"] = types.IntType
	schema.FieldTypes["deletions"] = types.IntType
	schema.TableFields["authors"] = []string{"name", "team"}
	schema.FieldTypes["name"] = types.TextType
	schema.FieldTypes["team"] = types.TextType
	return environment.New(schema)
}

func commitsProvider() *fakeProvider {
	return &fakeProvider{tables: map[string][]map[string]values.Value{
		"commits": {
			{"hash": values.TextValue("h1"), "author": values.TextValue("a"), "additions": values.IntValue(10), "deletions": values.IntValue(1)},
			{"hash": values.TextValue("h2"), "author": values.TextValue("c"), "additions": values.IntValue(5), "deletions": values.IntValue(2)},
			{"hash": values.TextValue("h3"), "author": values.TextValue("a"), "additions": values.IntValue(3), "deletions": values.IntValue(0)},
			{"hash": values.TextValue("h4"), "author": values.TextValue("c"), "additions": values.IntValue(1), "deletions": values.IntValue(1)},
			{"hash": values.TextValue("h5"), "author": values.TextValue("c"), "additions": values.IntValue(7), "deletions": values.IntValue(3)},
		},
		"authors": {
			{"name": values.TextValue("a"), "team": values.TextValue("core")},
			{"name": values.TextValue("c"), "team": values.TextValue("core")},
		},
	}}
}

func run(t *testing.T, query string) *object.GitQLObject {
	t.Helper()
	env := testEnv()
	funcs := stdlib.Standard()
	p := parser.New(query, env, funcs)
	stmt, _, diag := p.Parse()
	if diag != nil {
		t.Fatalf("Parse(%q) failed: %s", query, diag.Error())
	}
	obj, err := Execute(stmt, env, funcs, Options{Provider: commitsProvider()})
	if err != nil {
		t.Fatalf("Execute(%q) failed: %v", query, err)
	}
	return obj
}

func visibleRows(obj *object.GitQLObject) [][]values.Value {
	var out [][]values.Value
	for _, g := range obj.Groups {
		for _, r := range g.Rows {
			out = append(out, obj.VisibleValues(r))
		}
	}
	return out
}

func TestSelectFilterOrderLimit(t *testing.T) {
	obj := run(t, "SELECT hash FROM commits WHERE additions > 4 ORDER BY hash DESC LIMIT 2")
	rows := visibleRows(obj)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0].Literal() != "h5" || rows[1][0].Literal() != "h2" {
		t.Fatalf("unexpected order: %v, %v", rows[0][0].Literal(), rows[1][0].Literal())
	}
}

func TestGroupByAggregationOrdered(t *testing.T) {
	obj := run(t, "SELECT author, COUNT(author) FROM commits GROUP BY author ORDER BY COUNT(author) DESC LIMIT 2")
	rows := visibleRows(obj)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0].Literal() != "c" || rows[0][1].Literal() != "3" {
		t.Fatalf("expected (c,3) first, got (%s,%s)", rows[0][0].Literal(), rows[0][1].Literal())
	}
	if rows[1][0].Literal() != "a" || rows[1][1].Literal() != "2" {
		t.Fatalf("expected (a,2) second, got (%s,%s)", rows[1][0].Literal(), rows[1][1].Literal())
	}
}

func TestHavingFiltersGroups(t *testing.T) {
	obj := run(t, "SELECT author, COUNT(author) FROM commits GROUP BY author HAVING COUNT(author) > 2")
	rows := visibleRows(obj)
	if len(rows) != 1 || rows[0][0].Literal() != "c" {
		t.Fatalf("expected only author c, got %v", rows)
	}
}

func TestAggregateWithoutGroupByOnEmptyFilterStillProducesOneRow(t *testing.T) {
	obj := run(t, "SELECT COUNT(hash) FROM commits WHERE additions > 1000")
	rows := visibleRows(obj)
	if len(rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(rows))
	}
	if rows[0][0].Literal() != "0" {
		t.Fatalf("expected COUNT == 0, got %s", rows[0][0].Literal())
	}
}

func TestDistinct(t *testing.T) {
	obj := run(t, "SELECT DISTINCT author FROM commits ORDER BY author ASC")
	rows := visibleRows(obj)
	if len(rows) != 2 {
		t.Fatalf("expected 2 distinct authors, got %d", len(rows))
	}
	if rows[0][0].Literal() != "a" || rows[1][0].Literal() != "c" {
		t.Fatalf("unexpected distinct rows: %v", rows)
	}
}

func TestInnerJoin(t *testing.T) {
	obj := run(t, "SELECT commits.hash, authors.team FROM commits JOIN authors ON commits.author = authors.name ORDER BY commits.hash ASC")
	rows := visibleRows(obj)
	if len(rows) != 5 {
		t.Fatalf("expected 5 joined rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r[1].Literal() != "core" {
			t.Fatalf("expected team core, got %s", r[1].Literal())
		}
	}
}

func TestWindowRowNumber(t *testing.T) {
	obj := run(t, "SELECT hash, ROW_NUMBER() OVER (PARTITION BY author ORDER BY additions ASC) FROM commits ORDER BY author ASC, additions ASC")
	rows := visibleRows(obj)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	// author "a" rows: h3(3), h1(10) -> row numbers 1,2
	if rows[0][1].Literal() != "1" || rows[1][1].Literal() != "2" {
		t.Fatalf("unexpected row numbers for author a: %v, %v", rows[0][1].Literal(), rows[1][1].Literal())
	}
}

func TestDescribeAndShowTables(t *testing.T) {
	env := testEnv()
	funcs := stdlib.Standard()

	p := parser.New("DESCRIBE commits", env, funcs)
	stmt, _, diag := p.Parse()
	if diag != nil {
		t.Fatalf("Parse failed: %s", diag.Error())
	}
	obj, err := Execute(stmt, env, funcs, Options{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(obj.Groups[0].Rows) != 4 {
		t.Fatalf("expected 4 described columns, got %d", len(obj.Groups[0].Rows))
	}

	p2 := parser.New("SHOW TABLES", env, funcs)
	stmt2, _, diag2 := p2.Parse()
	if diag2 != nil {
		t.Fatalf("Parse failed: %s", diag2.Error())
	}
	obj2, err := Execute(stmt2, env, funcs, Options{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(obj2.Groups[0].Rows) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(obj2.Groups[0].Rows))
	}
}

func TestSetGlobalPersistsAcrossQueries(t *testing.T) {
	env := testEnv()
	funcs := stdlib.Standard()

	p := parser.New("SET @min_additions = 4", env, funcs)
	stmt, _, diag := p.Parse()
	if diag != nil {
		t.Fatalf("Parse failed: %s", diag.Error())
	}
	if _, err := Execute(stmt, env, funcs, Options{}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	p2 := parser.New("SELECT hash FROM commits WHERE additions > @min_additions", env, funcs)
	stmt2, _, diag2 := p2.Parse()
	if diag2 != nil {
		t.Fatalf("Parse failed: %s", diag2.Error())
	}
	obj, err := Execute(stmt2, env, funcs, Options{Provider: commitsProvider()})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(obj.Groups[0].Rows) != 3 {
		t.Fatalf("expected 3 rows with additions > 4, got %d", len(obj.Groups[0].Rows))
	}
}

func TestIntoOutfile(t *testing.T) {
	env := testEnv()
	funcs := stdlib.Standard()
	p := parser.New("SELECT hash FROM commits WHERE author = 'a' ORDER BY hash ASC INTO OUTFILE 'out.csv'", env, funcs)
	stmt, _, diag := p.Parse()
	if diag != nil {
		t.Fatalf("Parse failed: %s", diag.Error())
	}
	var buf bytes.Buffer
	if _, err := Execute(stmt, env, funcs, Options{Provider: commitsProvider(), Into: &buf}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	want := "hash\nh1\nh3\n"
	if buf.String() != want {
		t.Fatalf("unexpected INTO output: %q, want %q", buf.String(), want)
	}
}

func TestOrderByNullsPolicy(t *testing.T) {
	env := testEnv()
	funcs := stdlib.Standard()
	provider := &fakeProvider{tables: map[string][]map[string]values.Value{
		"commits": {
			{"hash": values.TextValue("h1"), "author": values.NullValue{}, "additions": values.IntValue(1), "deletions": values.IntValue(0)},
			{"hash": values.TextValue("h2"), "author": values.TextValue("a"), "additions": values.IntValue(2), "deletions": values.IntValue(0)},
		},
	}}
	p := parser.New("SELECT hash FROM commits ORDER BY author ASC", env, funcs)
	stmt, _, diag := p.Parse()
	if diag != nil {
		t.Fatalf("Parse failed: %s", diag.Error())
	}
	obj, err := Execute(stmt, env, funcs, Options{Provider: provider})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	rows := visibleRows(obj)
	if len(rows) != 2 || rows[0][0].Literal() != "h2" {
		t.Fatalf("expected ASC to sort NULL last by default, got %v", rows)
	}
}

func TestCastStringToIntViaBoolIntermediate(t *testing.T) {
	obj := run(t, "SELECT CAST('true' AS INTEGER) AS n FROM commits LIMIT 1")
	rows := visibleRows(obj)
	if len(rows) != 1 || rows[0][0].Literal() != "1" {
		t.Fatalf("expected CAST('true' AS INTEGER) = Int 1, got %v", rows)
	}
}

func ast_unused(s *ast.SelectStmt) {}
