package cpp

// conditional.go implements C3, the conditional-compilation state
// machine: the ACTIVE/SEEKING/SKIPPING enable-states of spec.md §3 and
// the transition table of spec.md §4.3. No "duplicate #else" detection
// is specified, so #else/#elif-after-#else handling stays a plain
// three-state model rather than standards-accurate active/anyActive/
// seenElse bookkeeping.

// EnableState is the current effect of the conditional stack on
// emission (spec.md GLOSSARY).
type EnableState int

const (
	// ACTIVE: lines and directives fully processed and emitted.
	ACTIVE EnableState = iota
	// SEEKING: inside a non-taken branch of an #if chain whose
	// enclosing context is ACTIVE; a later truthy #elif or an #else
	// may promote this to ACTIVE.
	SEEKING
	// SKIPPING: inside a chain nested below a non-ACTIVE context; no
	// branch of this chain may ever be taken.
	SKIPPING
)

func (s EnableState) String() string {
	switch s {
	case ACTIVE:
		return "ACTIVE"
	case SEEKING:
		return "SEEKING"
	case SKIPPING:
		return "SKIPPING"
	default:
		return "UNKNOWN"
	}
}

// ConditionalStack tracks nested #if/#ifdef/#ifndef/#elif/#else/#endif
// and the current enable-state (spec.md §3, Conditional stack).
type ConditionalStack struct {
	state EnableState
	stack []EnableState
}

// NewConditionalStack returns a stack at top-level ACTIVE state.
func NewConditionalStack() *ConditionalStack {
	return &ConditionalStack{state: ACTIVE}
}

// State returns the current enable-state.
func (c *ConditionalStack) State() EnableState { return c.state }

// Active reports whether the current enable-state is ACTIVE — spec.md
// invariant (iii): a line is emitted only when ACTIVE at the moment it
// is observed.
func (c *ConditionalStack) Active() bool { return c.state == ACTIVE }

// Depth returns the nesting depth (spec.md invariant (ii)).
func (c *ConditionalStack) Depth() int { return len(c.stack) }

// EnterIf pushes the current state and computes the new one for
// #if/#ifdef/#ifndef, per the transition table in spec.md §4.3.
func (c *ConditionalStack) EnterIf(truthy bool) {
	c.stack = append(c.stack, c.state)
	if c.state == ACTIVE {
		if truthy {
			c.state = ACTIVE
		} else {
			c.state = SEEKING
		}
	} else {
		c.state = SKIPPING
	}
}

// Elif applies the #elif transition: if currently ACTIVE, the branch
// that was taken is now closed off (SKIPPING); if SEEKING and the
// expression is truthy, promote to ACTIVE; otherwise unchanged.
func (c *ConditionalStack) Elif(truthy bool) error {
	if len(c.stack) == 0 {
		return &StructuralError{Kind: "unexpected-elif", Message: "#elif without matching #if"}
	}
	switch c.state {
	case ACTIVE:
		c.state = SKIPPING
	case SEEKING:
		if truthy {
			c.state = ACTIVE
		}
	}
	return nil
}

// Else applies the #else transition, identical to a truthy #elif
// (spec.md §4.3: "same rule as #elif with e = truthy").
func (c *ConditionalStack) Else() error {
	if len(c.stack) == 0 {
		return &StructuralError{Kind: "unexpected-else", Message: "#else without matching #if"}
	}
	return c.Elif(true)
}

// Endif pops the stack, restoring the enable-state active before the
// matching #if.
func (c *ConditionalStack) Endif() error {
	if len(c.stack) == 0 {
		return &StructuralError{Kind: "unexpected-endif", Message: "#endif without matching #if"}
	}
	n := len(c.stack) - 1
	c.state = c.stack[n]
	c.stack = c.stack[:n]
	return nil
}

// CheckBalanced enforces spec.md invariant (ii): stack depth at file
// exit must equal its depth at file entry (0 for the top-level file).
func (c *ConditionalStack) CheckBalanced(entryDepth int) error {
	if len(c.stack) != entryDepth {
		return &StructuralError{Kind: "unterminated-if", Message: "unterminated #if found"}
	}
	return nil
}
