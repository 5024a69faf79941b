package stdlib

import "fmt"

// opErrf builds a plain textual error, matching the rest of the
// engine's convention (spec.md §7: standard-function implementations
// return a textual reason; the executor attaches location on wrap).
func opErrf(format string, args ...any) error { return fmt.Errorf(format, args...) }
