// Package diagnostic implements the structured error/warning type that
// every lexing, parsing and semantic-checking stage reports through.
package diagnostic

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/gql-run/gitql/token"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Location is a source span used for pointing at the offending text.
type Location struct {
	Start token.Pos
	End   token.Pos
}

// Diagnostic is a structured error or warning with enough context for
// a host renderer to print a helpful message without re-deriving it.
type Diagnostic struct {
	Severity Severity
	Label    string
	Message  string
	Location *Location
	Notes    []string
	Helps    []string
	DocsURL  string
}

func (d *Diagnostic) Error() string {
	s := fmt.Sprintf("%s: %s", d.Label, d.Message)
	if d.Location != nil {
		s = fmt.Sprintf("%s(%d:%d): %s", d.Label, d.Location.Start.Line, d.Location.Start.Column, d.Message)
	}
	for _, h := range d.Helps {
		s += " (" + h + ")"
	}
	return s
}

// New builds an Error-severity diagnostic at pos.
func New(label, message string, pos token.Pos) *Diagnostic {
	return &Diagnostic{
		Severity: Error,
		Label:    label,
		Message:  message,
		Location: &Location{Start: pos, End: pos},
	}
}

// WithNote appends an explanatory note and returns d for chaining.
func (d *Diagnostic) WithNote(note string) *Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp appends an actionable suggestion and returns d for chaining.
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Helps = append(d.Helps, help)
	return d
}

// WithDocs sets the docs URL and returns d for chaining.
func (d *Diagnostic) WithDocs(url string) *Diagnostic {
	d.DocsURL = url
	return d
}

// Reporter accumulates non-fatal warnings separately from the single
// fatal error that aborts a parse or execution.
type Reporter struct {
	Warnings []*Diagnostic
}

// Warn records a Warning-severity diagnostic.
func (r *Reporter) Warn(d *Diagnostic) {
	d.Severity = Warning
	r.Warnings = append(r.Warnings, d)
}

// maxSuggestionDistance bounds how different a candidate name may be
// from the misspelled one before it stops being worth suggesting.
const maxSuggestionDistance = 2

// ClosestName returns the candidate closest to name by Levenshtein
// distance, provided that distance is <= 2; otherwise "" is returned.
func ClosestName(name string, candidates []string) string {
	best := ""
	bestDist := maxSuggestionDistance + 1
	// sort for determinism when multiple candidates tie on distance.
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)
	for _, c := range sorted {
		d := levenshtein.ComputeDistance(name, c)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	if bestDist > maxSuggestionDistance {
		return ""
	}
	return best
}

// UnknownName builds a standard "unknown identifier" diagnostic,
// attaching a closest-name suggestion when one exists within edit
// distance 2 of name.
func UnknownName(label, kind, name string, pos token.Pos, candidates []string) *Diagnostic {
	d := New(label, fmt.Sprintf("unknown %s %q", kind, name), pos)
	if suggestion := ClosestName(name, candidates); suggestion != "" {
		d.WithHelp(fmt.Sprintf("did you mean %q?", suggestion))
	}
	return d
}
