package cpp

import "strings"

// LineAssembler joins backslash-continued physical lines and strips
// "//" and "/* ... */" comments across line boundaries (spec.md §4.1,
// C1). The zero value is ready to use; its fields hold the two pieces of
// per-file inter-line state spec.md calls out: a pending continuation
// prefix (pending, with inPending marking that one is held) and an
// "in block comment" flag.
type LineAssembler struct {
	pending   string
	inPending bool
	inComment bool
}

// Join accumulates one physical line. If line ends with a backslash
// immediately before the newline, Join reports !ready and remembers the
// line (with the trailing "\\\n" removed) for the next call. Otherwise
// it returns the fully joined logical line.
func (a *LineAssembler) Join(line string) (joined string, ready bool) {
	text := line
	if a.inPending {
		text = a.pending + text
	}
	if strings.HasSuffix(text, "\\\n") {
		a.pending = text[:len(text)-2]
		a.inPending = true
		return "", false
	}
	if strings.HasSuffix(text, "\\\r\n") {
		a.pending = text[:len(text)-3]
		a.inPending = true
		return "", false
	}
	a.pending = ""
	a.inPending = false
	return text, true
}

// StripComments removes text from the first "//" to end of line (when
// not already inside a block comment), then repeatedly consumes
// "/* ... */" pairs, carrying the in-block-comment flag across calls.
// Per spec.md §4.1, this is lexically oblivious to strings: a comment
// marker inside a string literal is still treated as a comment.
func (a *LineAssembler) StripComments(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 && !a.inComment {
		line = line[:idx]
	}

	var out strings.Builder
	for {
		if a.inComment {
			idx := strings.Index(line, "*/")
			if idx < 0 {
				return out.String()
			}
			line = line[idx+2:]
			a.inComment = false
			continue
		}
		idx := strings.Index(line, "/*")
		if idx < 0 {
			out.WriteString(line)
			return out.String()
		}
		out.WriteString(line[:idx])
		line = line[idx+2:]
		a.inComment = true
	}
}

// AtEOF reports whether the assembler ended a file mid-block-comment, a
// fatal condition per spec.md §4.1.
func (a *LineAssembler) AtEOF() error {
	if a.inComment {
		return &StructuralError{Kind: "unterminated-comment", Message: "unterminated block comment at end of file"}
	}
	return nil
}
