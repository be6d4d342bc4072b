/*
Copyright 2026 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package funcdef

import "strings"

// docComments holds the parsed sections of a structured doc comment.
type docComments struct {
	// Args maps parameter names to their collapsed descriptions.
	Args    map[string]string
	Returns string
	Raises  string
}

type docSection int

const (
	sectionNone docSection = iota
	sectionArgs
	sectionReturns
	sectionRaises
)

// parseDoc parses a structured doc comment with conventional
// "Args:"/"Returns:"/"Raises:" section headers.
//
// Inside Args, a line containing a colon opens a new parameter; the name is
// everything before the colon, minus any parenthesized type annotation.
// Following lines without a colon are continuations and are joined into the
// active parameter's description with single spaces, so multi-line
// descriptions collapse into one sentence. Parameters documented here but
// absent from the signature are simply never looked up; documentation
// drifting ahead of or behind the signature is not an error.
func parseDoc(doc string) docComments {
	parsed := docComments{Args: map[string]string{}}

	section := sectionNone
	var current string
	var description []string
	var returns, raises []string

	flush := func() {
		if current != "" && len(description) > 0 {
			parsed.Args[current] = strings.TrimSpace(strings.Join(description, " "))
		}
		current = ""
		description = nil
	}

	for _, line := range strings.Split(doc, "\n") {
		switch strings.TrimSpace(line) {
		case "Args:":
			flush()
			section = sectionArgs
			continue
		case "Returns:":
			flush()
			section = sectionReturns
			continue
		case "Raises:":
			flush()
			section = sectionRaises
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch section {
		case sectionArgs:
			if trimmed != "" && strings.Contains(line, ":") {
				flush()
				namePart, commentPart, _ := strings.Cut(line, ":")
				name, _, _ := strings.Cut(namePart, "(")
				current = strings.TrimSpace(name)
				description = []string{strings.TrimSpace(commentPart)}
			} else if current != "" && trimmed != "" {
				description = append(description, trimmed)
			}
		case sectionReturns:
			if trimmed != "" {
				returns = append(returns, trimmed)
			}
		case sectionRaises:
			if trimmed != "" {
				raises = append(raises, trimmed)
			}
		}
	}
	flush()

	parsed.Returns = strings.Join(returns, " ")
	parsed.Raises = strings.Join(raises, " ")
	return parsed
}
