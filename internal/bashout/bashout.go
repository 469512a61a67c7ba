// Package bashout renders values as bash declare statements.
//
// Several hug-tools commands are eval'd by the Hug SCM shell wrappers
// instead of being parsed as JSON. Everything emitted here must survive
// `eval "$(hug-tools ...)"` unharmed, so every string is single-quoted
// with embedded quotes escaped.
package bashout

import (
	"fmt"
	"strings"
)

// Quote escapes s for safe use inside a bash declare statement.
// Strategy: wrap in single quotes and replace embedded single quotes
// with '\''. Backslashes are doubled first — order matters.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `'\''`)
	return "'" + s + "'"
}

// Scalar renders a `declare name='value'` statement.
func Scalar(name, value string) string {
	return fmt.Sprintf("declare %s=%s", name, Quote(value))
}

// Int renders a `declare -i name=value` statement.
func Int(name string, value int) string {
	return fmt.Sprintf("declare -i %s=%d", name, value)
}

// Array renders a `declare -a name=('a' 'b' ...)` statement.
// An empty slice produces an empty array declaration.
func Array(name string, values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = Quote(v)
	}
	return fmt.Sprintf("declare -a %s=(%s)", name, strings.Join(quoted, " "))
}

// IntArray renders a `declare -a name=(0 2 5)` statement for numeric
// values, which need no quoting.
func IntArray(name string, values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("declare -a %s=(%s)", name, strings.Join(parts, " "))
}

// Lines joins declare statements into the final output block.
func Lines(stmts ...string) string {
	return strings.Join(stmts, "\n")
}
