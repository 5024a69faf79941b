// Package fuzz fuzzes this module's own lexer and parser. Adapted
// from the teacher's fuzz/fuzz_test.go (same testing.F/seed-corpus
// shape) but retargeted at this grammar: the seed corpus is GQL
// SELECT/SET/DESCRIBE/SHOW TABLES queries (spec.md §6), not the
// teacher's INSERT/UPDATE/DELETE/CREATE TABLE/transaction corpus,
// since this engine's grammar excludes DML/DDL (spec.md §1
// Non-goals).
package fuzz

import (
	"testing"

	"github.com/gql-run/gitql/environment"
	"github.com/gql-run/gitql/lexer"
	"github.com/gql-run/gitql/parser"
	"github.com/gql-run/gitql/stdlib"
	"github.com/gql-run/gitql/token"
	"github.com/gql-run/gitql/types"
)

func fuzzSchema() *environment.Environment {
	schema := environment.NewSchema()
	schema.TableFields["commits"] = []string{"hash", "title", "name", "email", "time"}
	schema.FieldTypes["hash"] = types.TextType
	schema.FieldTypes["title"] = types.TextType
	schema.FieldTypes["name"] = types.TextType
	schema.FieldTypes["email"] = types.TextType
	schema.FieldTypes["time"] = types.DateTimeType
	schema.TableFields["branches"] = []string{"name", "commit_count", "is_head"}
	schema.FieldTypes["commit_count"] = types.IntType
	schema.FieldTypes["is_head"] = types.BoolType
	return environment.New(schema)
}

var seeds = []string{
	"SELECT * FROM commits",
	"SELECT hash, title FROM commits WHERE name = 'torvalds'",
	"SELECT name, COUNT(name) FROM commits GROUP BY name ORDER BY COUNT(name) DESC LIMIT 2",
	"SELECT DISTINCT ON (name) name, email FROM commits",
	"SELECT * FROM commits ORDER BY time NULLS FIRST",
	"SELECT UPPER(title) AS t FROM commits",
	"SELECT 1 + 2, 3 * 4",
	"SELECT CAST('true' AS INTEGER)",
	"SELECT INTERVAL '1 year 2 mons 03:04:05'",
	"SELECT c.hash FROM commits c JOIN branches b ON c.name = b.name",
	"SELECT * FROM commits GROUP BY name WITH ROLLUP",
	"SELECT ROW_NUMBER() OVER (PARTITION BY name ORDER BY time) FROM commits",
	"SELECT * FROM commits WHERE name IN ('a', 'b') AND time BETWEEN 1 AND 2",
	"SELECT CASE WHEN is_head THEN 'head' ELSE 'other' END FROM branches",
	"SET @x = 1",
	"DESCRIBE commits",
	"SHOW TABLES",
	"DO 1 + 1",
	"SELECT * FROM commits INTO OUTFILE 'out.csv' FIELDS TERMINATED BY ','",
	"",
	"SELECT",
	"SELECT * FROM",
	"SELECT (((",
	"'unterminated",
	"SELECT 0x",
}

// FuzzTokenize checks that lexer.New never panics over arbitrary
// input and that it always terminates with an EOF token or a
// well-formed *lexer.Error.
func FuzzTokenize(f *testing.F) {
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		l := lexer.New(input)
		for i := 0; i < 10000; i++ {
			it, err := l.Next()
			if err != nil {
				return
			}
			if it.Type == token.EOF {
				return
			}
		}
		t.Fatalf("lexer did not reach EOF within bound for input %q", input)
	})
}

// FuzzParse checks that parser.New/Parse never panics over arbitrary
// input, regardless of whether the input is a well-formed query.
func FuzzParse(f *testing.F) {
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		p := parser.New(input, fuzzSchema(), stdlib.Standard())
		_, _, _ = p.Parse()
	})
}
