package token

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// foldCase is shared with the lexer so that keyword recognition is
// Unicode-correct rather than an ASCII-only lower() accident.
var foldCase = cases.Lower(language.Und)

// keywords maps the case-folded keyword spelling to its token kind.
var keywords = map[string]Token{
	"select":     SELECT,
	"from":       FROM,
	"where":      WHERE,
	"group":      GROUP,
	"by":         BY,
	"having":     HAVING,
	"order":      ORDER,
	"limit":      LIMIT,
	"offset":     OFFSET,
	"join":       JOIN,
	"on":         ON,
	"inner":      INNER,
	"left":       LEFT,
	"right":      RIGHT,
	"cross":      CROSS,
	"outer":      OUTER,
	"full":       FULL,
	"as":         AS,
	"distinct":   DISTINCT,
	"with":       WITH,
	"rollup":     ROLLUP,
	"asc":        ASC,
	"desc":       DESC,
	"nulls":      NULLS,
	"first":      FIRST,
	"last":       LAST,
	"using":      USING,
	"like":       LIKE,
	"glob":       GLOB,
	"regexp":     REGEXP,
	"in":         IN,
	"between":    BETWEEN,
	"and":        AND,
	"or":         OR,
	"xor":        XOR,
	"not":        NOT,
	"null":       NULL,
	"true":       TRUE,
	"false":      FALSE,
	"cast":       CAST,
	"interval":   INTERVAL,
	"do":         DO,
	"describe":   DESCRIBE,
	"show":       SHOW,
	"tables":     TABLES,
	"set":        SET,
	"into":       INTO,
	"outfile":    OUTFILE,
	"lines":      LINES,
	"fields":     FIELDS,
	"terminated": TERMINATED,
	"enclosed":   ENCLOSED,
	"over":       OVER,
	"partition":  PARTITION,
	"window":     WINDOW,
	"case":       CASE,
	"when":       WHEN,
	"then":       THEN,
	"else":       ELSE,
	"end":        END,
	"is":         IS,
	"any":        ANY,
	"all":        ALL,
	"some":       SOME,
}

// Lookup returns the keyword token for ident, or IDENT if ident is not
// a reserved word. Matching is case-insensitive per spec.
func Lookup(ident string) Token {
	if tok, ok := keywords[foldCase.String(ident)]; ok {
		return tok
	}
	return IDENT
}
