package tree

import "regexp"

// valueKeyPattern matches Flutter's ValueKey.toString() wire shape,
// e.g. "[<'submit_btn'>]" or "[<42>]" for non-string keys.
var valueKeyPattern = regexp.MustCompile(`^\[<'?([^'>]*)'?>\]$`)

// unwrapKey strips the toolkit's key wrapper syntax, returning the
// plain inner string used for selector matching. Keys that are not in
// the wrapped form are returned unchanged.
func unwrapKey(raw string) string {
	if match := valueKeyPattern.FindStringSubmatch(raw); match != nil {
		return match[1]
	}

	return raw
}
