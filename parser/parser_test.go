package parser

import (
	"testing"

	"github.com/gql-run/gitql/ast"
	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/stdlib"
	"github.com/gql-run/gitql/types"
)

func testEnv() *environment.Environment {
	schema := environment.NewSchema()
	schema.TableFields["users"] = []string{"id", "name", "age", "active", "created_at"}
	schema.FieldTypes["id"] = types.IntType
	schema.FieldTypes["name"] = types.TextType
	schema.FieldTypes["age"] = types.IntType
	schema.FieldTypes["active"] = types.BoolType
	schema.FieldTypes["created_at"] = types.DateTimeType
	schema.TableFields["orders"] = []string{"id", "user_id", "total"}
	schema.FieldTypes["user_id"] = types.IntType
	schema.FieldTypes["total"] = types.FloatType
	return environment.New(schema)
}

func mustParse(t *testing.T, input string) *ast.SelectStmt {
	t.Helper()
	p := New(input, testEnv(), stdlib.Standard())
	stmt, _, diag := p.Parse()
	if diag != nil {
		t.Fatalf("Parse(%q) failed: %s", input, diag.Error())
	}
	sel, ok := stmt.(*ast.SelectStmt)
	if !ok {
		t.Fatalf("Parse(%q): expected *ast.SelectStmt, got %T", input, stmt)
	}
	return sel
}

func mustFail(t *testing.T, input string) string {
	t.Helper()
	p := New(input, testEnv(), stdlib.Standard())
	stmt, _, diag := p.Parse()
	if diag == nil {
		t.Fatalf("Parse(%q): expected an error, got statement %#v", input, stmt)
	}
	return diag.Error()
}

func TestParseProjection(t *testing.T) {
	tests := []struct {
		input      string
		wantLabels []string
	}{
		{"SELECT id FROM users", []string{"id"}},
		{"SELECT id, name FROM users", []string{"id", "name"}},
		{"SELECT UPPER(name) AS upper_name FROM users", []string{"upper_name"}},
		{"SELECT 1 + 2, 3 * 4 FROM users", []string{"column_1", "column_2"}},
		{"SELECT id AS user_id FROM users", []string{"user_id"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sel := mustParse(t, tt.input)
			if len(sel.Projection) != len(tt.wantLabels) {
				t.Fatalf("got %d projection items, want %d", len(sel.Projection), len(tt.wantLabels))
			}
			for i, label := range tt.wantLabels {
				if sel.Projection[i].Label != label {
					t.Errorf("item %d: got label %q, want %q", i, sel.Projection[i].Label, label)
				}
			}
		})
	}
}

func TestParseSelectStar(t *testing.T) {
	sel := mustParse(t, "SELECT * FROM users")
	if sel.Projection != nil {
		t.Fatalf("expected a nil projection marking SELECT *, got %v", sel.Projection)
	}
	if len(sel.Tables) != 1 || sel.Tables[0].Name != "users" {
		t.Fatalf("expected a single users table, got %+v", sel.Tables)
	}
}

func TestParseWhereGroupHavingOrderLimit(t *testing.T) {
	input := "SELECT age, COUNT(*) AS total FROM users WHERE age > 18 GROUP BY age HAVING COUNT(*) > 1 ORDER BY total DESC LIMIT 10"
	sel := mustParse(t, input)
	if sel.Where == nil {
		t.Fatal("expected a WHERE clause")
	}
	if sel.GroupBy == nil || len(sel.GroupBy.Values) != 1 {
		t.Fatalf("expected one GROUP BY value, got %+v", sel.GroupBy)
	}
	if sel.Having == nil {
		t.Fatal("expected a HAVING clause")
	}
	if sel.OrderBy == nil || len(sel.OrderBy.Args) != 1 {
		t.Fatalf("expected one ORDER BY argument, got %+v", sel.OrderBy)
	}
	if sel.OrderBy.Args[0].Order != ast.Descending {
		t.Errorf("expected DESC order")
	}
	if sel.OrderBy.Args[0].Nulls != ast.NullsFirst {
		t.Errorf("expected NullsFirst default for DESC, got %v", sel.OrderBy.Args[0].Nulls)
	}
	if sel.Limit == nil {
		t.Fatal("expected a LIMIT clause")
	}
	if !sel.HasAggregation {
		t.Error("expected HasAggregation to be true")
	}
	// COUNT(*) appears twice (projection and HAVING) and each occurrence
	// hoists independently -- no common-subexpression elimination.
	if len(sel.HiddenSelections) != 2 {
		t.Fatalf("expected two hoisted hidden columns, got %d", len(sel.HiddenSelections))
	}
}

func TestParseOrderByNullsAndUsing(t *testing.T) {
	sel := mustParse(t, "SELECT id FROM users ORDER BY name ASC NULLS FIRST")
	if sel.OrderBy.Args[0].Nulls != ast.NullsFirst {
		t.Errorf("expected explicit NULLS FIRST to override the ASC default")
	}

	sel2 := mustParse(t, "SELECT id FROM users ORDER BY name USING >")
	if sel2.OrderBy.Args[0].Order != ast.Descending {
		t.Errorf("expected USING > to mean descending order")
	}
}

func TestParseDistinctOn(t *testing.T) {
	sel := mustParse(t, "SELECT DISTINCT ON (name) name, age FROM users")
	if !sel.Distinct {
		t.Fatal("expected Distinct to be true")
	}
	if len(sel.DistinctOn) != 1 || sel.DistinctOn[0] != "name" {
		t.Fatalf("expected DISTINCT ON (name), got %v", sel.DistinctOn)
	}
}

func TestParseCastImplicitFromStringLiteral(t *testing.T) {
	sel := mustParse(t, "SELECT CAST('yes' AS BOOLEAN) AS flag FROM users")
	cast, ok := sel.Projection[0].Expr.(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected *ast.CastExpr, got %T", sel.Projection[0].Expr)
	}
	if !types.Equal(cast.Target, types.BoolType) {
		t.Errorf("expected cast target Bool, got %s", cast.Target.Literal())
	}
}

func TestParseCastRejectsIntToDate(t *testing.T) {
	mustFail(t, "SELECT CAST(1 AS DATE) FROM users")
}

func TestParseCastStringToIntViaBoolIntermediate(t *testing.T) {
	sel := mustParse(t, "SELECT CAST('true' AS INTEGER) AS n FROM users")
	outer, ok := sel.Projection[0].Expr.(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected *ast.CastExpr, got %T", sel.Projection[0].Expr)
	}
	if !types.Equal(outer.Target, types.IntType) {
		t.Errorf("expected outer cast target Int, got %s", outer.Target.Literal())
	}
	inner, ok := outer.Operand.(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected the outer cast's operand to be an intermediate *ast.CastExpr, got %T", outer.Operand)
	}
	if !types.Equal(inner.Target, types.BoolType) {
		t.Errorf("expected intermediate cast target Bool, got %s", inner.Target.Literal())
	}
}

func TestParseIntervalLiteral(t *testing.T) {
	sel := mustParse(t, "SELECT INTERVAL '1 year 2 mons 03:04:05' AS span FROM users")
	lit, ok := sel.Projection[0].Expr.(*ast.LiteralExpr)
	if !ok || lit.Kind != ast.LiteralInterval {
		t.Fatalf("expected an interval literal, got %#v", sel.Projection[0].Expr)
	}
	if lit.Text != "1 year 2 mons 03:04:05" {
		t.Errorf("unexpected interval text %q", lit.Text)
	}
}

func TestParseGroupByWithRollup(t *testing.T) {
	sel := mustParse(t, "SELECT age FROM users GROUP BY age WITH ROLLUP")
	if !sel.GroupBy.HasWithRollup {
		t.Error("expected HasWithRollup to be true")
	}
}

func TestParseWindowFunction(t *testing.T) {
	sel := mustParse(t, "SELECT id, ROW_NUMBER() OVER (PARTITION BY age ORDER BY id) AS rn FROM users")
	if _, ok := sel.Projection[1].Expr.(*ast.WindowPlaceholder); !ok {
		t.Fatalf("expected a WindowPlaceholder, got %T", sel.Projection[1].Expr)
	}
	if len(sel.HiddenSelections) != 1 {
		t.Fatalf("expected one hoisted window column, got %d", len(sel.HiddenSelections))
	}
}

func TestParseJoins(t *testing.T) {
	sel := mustParse(t, "SELECT users.id, orders.total FROM users JOIN orders ON users.id = orders.user_id")
	if len(sel.Tables) != 2 {
		t.Fatalf("expected two tables, got %d", len(sel.Tables))
	}
	if len(sel.Joins) != 1 || sel.Joins[0].Kind != ast.InnerJoin {
		t.Fatalf("expected one inner join, got %+v", sel.Joins)
	}
}

func TestParseIntoOutfile(t *testing.T) {
	sel := mustParse(t, "SELECT id FROM users INTO OUTFILE '/tmp/out.csv' FIELDS TERMINATED BY ';' LINES TERMINATED BY '\\n'")
	if sel.Into == nil {
		t.Fatal("expected an INTO clause")
	}
	if sel.Into.Outfile != "/tmp/out.csv" {
		t.Errorf("unexpected outfile path %q", sel.Into.Outfile)
	}
	if sel.Into.FieldsTerminator != ";" {
		t.Errorf("unexpected fields terminator %q", sel.Into.FieldsTerminator)
	}
}

func TestParseCaseExpr(t *testing.T) {
	sel := mustParse(t, "SELECT CASE WHEN age > 18 THEN 'adult' ELSE 'minor' END AS bucket FROM users")
	c, ok := sel.Projection[0].Expr.(*ast.CaseExpr)
	if !ok {
		t.Fatalf("expected *ast.CaseExpr, got %T", sel.Projection[0].Expr)
	}
	if len(c.Arms) != 1 || c.Else == nil {
		t.Fatalf("expected one arm and an ELSE, got %+v", c)
	}
}

func TestParseUnknownColumnSuggestsClosestName(t *testing.T) {
	msg := mustFail(t, "SELECT nmae FROM users")
	if !contains(msg, `did you mean "name"`) {
		t.Errorf("expected a closest-name suggestion for %q, got: %s", "nmae", msg)
	}
}

func TestParseAggregateInWhereRejected(t *testing.T) {
	mustFail(t, "SELECT id FROM users WHERE COUNT(*) > 1")
}

func TestParseWindowFunctionInWhereRejected(t *testing.T) {
	mustFail(t, "SELECT id FROM users WHERE ROW_NUMBER() OVER (ORDER BY id) > 1")
}

func TestParseSetGlobalAndDo(t *testing.T) {
	env := testEnv()
	p := New("SET @threshold = 18", env, stdlib.Standard())
	stmt, _, diag := p.Parse()
	if diag != nil {
		t.Fatalf("unexpected error: %s", diag.Error())
	}
	decl, ok := stmt.(*ast.GlobalVariableDecl)
	if !ok {
		t.Fatalf("expected *ast.GlobalVariableDecl, got %T", stmt)
	}
	if decl.Name != "@threshold" {
		t.Errorf("unexpected global name %q", decl.Name)
	}

	p2 := New("DO @threshold", env, stdlib.Standard())
	if _, _, diag := p2.Parse(); diag != nil {
		t.Fatalf("unexpected error resolving a previously declared global: %s", diag.Error())
	}
}

func TestParseDescribeAndShowTables(t *testing.T) {
	sel := New("DESCRIBE users", testEnv(), stdlib.Standard())
	stmt, _, diag := sel.Parse()
	if diag != nil {
		t.Fatalf("unexpected error: %s", diag.Error())
	}
	if _, ok := stmt.(*ast.DescribeTableStmt); !ok {
		t.Fatalf("expected *ast.DescribeTableStmt, got %T", stmt)
	}

	mustFail(t, "DESCRIBE nosuchtable")

	p := New("SHOW TABLES", testEnv(), stdlib.Standard())
	stmt2, _, diag2 := p.Parse()
	if diag2 != nil {
		t.Fatalf("unexpected error: %s", diag2.Error())
	}
	if _, ok := stmt2.(*ast.ShowTablesStmt); !ok {
		t.Fatalf("expected *ast.ShowTablesStmt, got %T", stmt2)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
