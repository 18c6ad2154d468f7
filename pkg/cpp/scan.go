package cpp

// This file implements C5, the tokenizer and argument parser: finding
// the next candidate identifier while skipping quoted strings and
// field-access contexts (spec.md §4.5), and splitting a function-like
// macro's parenthesized argument list while respecting nested parens
// and quoted strings.
//
// This is not a full preprocessing-token lexer: spec.md deliberately
// keeps C5 a pair of string-scanning primitives operating directly on
// the logical-line string.

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// skipString returns the index just past the closing quote matching
// the quote character at s[pos-1] (pos points at the first byte of the
// string's contents). A backslash consumes the following byte
// regardless of what it is, per spec.md §4.5.
func skipString(s string, pos int, quote byte) int {
	for pos < len(s) {
		switch s[pos] {
		case quote:
			return pos + 1
		case '\\':
			pos += 2
		default:
			pos++
		}
	}
	return pos
}

// findIdentifier returns the span [a, b) of the next identifier in s at
// or after start that is not inside a quoted string and not immediately
// preceded by "." or "->" (struct-field-access suppression, spec.md
// §4.5). ok is false once no further identifier exists.
func findIdentifier(s string, start int) (a, b int, ok bool) {
	i := start
	for i < len(s) {
		c := s[i]
		switch {
		case c == '"' || c == '\'':
			i = skipString(s, i+1, c)
		case isIdentCont(c):
			// Consume the whole run of word characters as one unit
			// (matching \w+ in the original regex-based scanner) before
			// deciding whether it is a candidate identifier. Otherwise a
			// numeric literal like 0x1 would spuriously yield "x1" as an
			// identifier starting mid-run.
			end := i + 1
			for end < len(s) && isIdentCont(s[end]) {
				end++
			}
			if !isIdentStart(c) || fieldAccessPrefix(s, i) {
				i = end
				continue
			}
			return i, end, true
		default:
			i++
		}
	}
	return 0, 0, false
}

// fieldAccessPrefix reports whether the byte(s) immediately preceding
// position i are "." or "->", suppressing macro replacement of struct
// field names that happen to shadow a macro (spec.md §4.5).
func fieldAccessPrefix(s string, i int) bool {
	if i > 0 && s[i-1] == '.' {
		return true
	}
	if i > 1 && s[i-1] == '>' && s[i-2] == '-' {
		return true
	}
	return false
}

// findArgumentList looks for an optional-whitespace-then-"(" starting
// at pos, and if found, the index of its matching ")" respecting nested
// parens and quoted strings. Returns:
//   - open, close, ok=true   when a complete "(...)" was found; close is
//     the index one past the closing ")".
//   - _, _, false when no "(" follows at all (not an invocation).
//   - open, -1, true when the "(" is found but its matching ")" is not:
//     an unterminated argument list (the caller must request a line
//     continuation).
func findArgumentList(s string, pos int) (open, close int, ok bool) {
	i := pos
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i >= len(s) || s[i] != '(' {
		return 0, 0, false
	}
	open = i
	depth := 1
	i++
	for i < len(s) {
		switch s[i] {
		case '(':
			depth++
			i++
		case ')':
			depth--
			i++
			if depth == 0 {
				return open, i, true
			}
		case '"', '\'':
			i = skipString(s, i+1, s[i])
		default:
			i++
		}
	}
	return open, -1, true // incomplete: open found, close missing
}

// splitArguments splits the text strictly inside a macro invocation's
// outer parentheses on top-level commas, honoring nested parens and
// quoted strings (spec.md §4.5). Positional arguments are trimmed of
// leading/trailing whitespace.
func splitArguments(inner string) []string {
	if trimSpace(inner) == "" {
		return nil
	}
	var args []string
	i, start := 0, 0
	for i < len(inner) {
		switch inner[i] {
		case '"', '\'':
			i = skipString(inner, i+1, inner[i])
		case '(':
			depth := 1
			i++
			for i < len(inner) && depth > 0 {
				switch inner[i] {
				case '(':
					depth++
					i++
				case ')':
					depth--
					i++
				case '"', '\'':
					i = skipString(inner, i+1, inner[i])
				default:
					i++
				}
			}
		case ',':
			args = append(args, trimSpace(inner[start:i]))
			i++
			start = i
		default:
			i++
		}
	}
	args = append(args, trimSpace(inner[start:]))
	return args
}

func trimSpace(s string) string {
	start := 0
	for start < len(s) && isSpaceByte(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
