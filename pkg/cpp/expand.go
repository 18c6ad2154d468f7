package cpp

// expand.go implements C6, the expansion engine: the single forward
// pass with per-substitution restart described in spec.md §4.6, rather
// than a hideset/blue-paint algorithm, per spec.md §9's explicit design
// note: a single monotonically increasing counter stands in for a
// proper "currently expanding" set.

const defaultMaxExpansions = 4096

// Expander implements the Expand contract of spec.md §4.6: repeatedly
// rewrite an input string until no further expansion is possible, with
// a configurable global expansion-count bound.
type Expander struct {
	macros   *MacroTable
	MaxDepth int // 0 means defaultMaxExpansions
}

// NewExpander returns an Expander bound to macros.
func NewExpander(macros *MacroTable) *Expander {
	return &Expander{macros: macros}
}

func (e *Expander) maxDepth() int {
	if e.MaxDepth > 0 {
		return e.MaxDepth
	}
	return defaultMaxExpansions
}

// Expand fully expands text and returns the rewritten string. A
// non-empty remainder return means a function-like macro's argument
// list ran off the end of text; the caller must concatenate remainder
// with the next logical line and retry (spec.md §4.6, §9 "Multi-line
// macro invocations").
func (e *Expander) Expand(text string) (expanded string, remainder string, err error) {
	count := 0
	pos := 0
	for {
		start, identEnd, ok := findIdentifier(text, pos)
		if !ok {
			return text, "", nil
		}

		name := text[start:identEnd]
		macro := e.macros.Lookup(name)
		if macro == nil {
			pos = identEnd
			continue
		}

		replaceEnd := identEnd
		var replacement string

		if macro.IsFunctionLike() {
			open, close, found := findArgumentList(text, identEnd)
			if !found {
				// No "(" follows: not recognized as an invocation.
				pos = identEnd
				continue
			}
			if close < 0 {
				return "", text, nil
			}
			inner := text[open+1 : close-1]
			args := splitArguments(inner)
			if err := checkArity(macro, args); err != nil {
				return "", "", err
			}
			replacement = substitute(macro, args)
			replaceEnd = close
		} else {
			replacement = macro.Body
		}

		count++
		if count > e.maxDepth() {
			return "", "", &StructuralError{Kind: "recursion-exceeded", Message: "macro expansion exceeded maximum depth"}
		}

		text = text[:start] + replacement + text[replaceEnd:]
		// Restart at `start`, not identEnd+len(replacement): newly
		// introduced tokens must themselves be candidates for further
		// expansion (spec.md §4.6, "Why restart at a, not b").
		pos = start
	}
}

func checkArity(m *Macro, args []string) error {
	fixed := m.FixedArity()
	if m.IsVariadic() {
		if len(args) < fixed {
			return &ArityError{Macro: m.Name, Expected: fixed, Variadic: true, Got: len(args)}
		}
		return nil
	}
	if len(args) != fixed {
		return &ArityError{Macro: m.Name, Expected: fixed, Got: len(args)}
	}
	return nil
}
