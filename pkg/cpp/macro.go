// Package cpp implements a standalone C-family preprocessor: macro table
// and expansion engine, conditional-compilation state machine, and the
// tokenizer that drives both.
package cpp

import "strings"

// Macro is a single object-like, function-like, or variadic macro
// definition.
type Macro struct {
	Name string

	// Params is nil for an object-like macro. For a function-like macro
	// it holds the ordered parameter names; an empty, non-nil slice
	// means a function-like macro taking zero arguments. A variadic
	// macro's last entry is the literal "...".
	Params []string

	// Body is the unsubstituted replacement text.
	Body string
}

// IsFunctionLike reports whether m takes a parameter list (possibly
// empty) and is therefore only expanded when followed by "(".
func (m *Macro) IsFunctionLike() bool {
	return m.Params != nil
}

// IsVariadic reports whether m's last parameter is the literal "...".
func (m *Macro) IsVariadic() bool {
	return len(m.Params) > 0 && m.Params[len(m.Params)-1] == "..."
}

// FixedArity returns the number of required positional arguments: the
// parameter count, minus one for the trailing "..." if variadic.
func (m *Macro) FixedArity() int {
	n := len(m.Params)
	if m.IsVariadic() {
		n--
	}
	return n
}

// validateParams enforces spec invariant (iv): "..." may appear at most
// once, and only as the final parameter.
func validateParams(params []string) error {
	if params == nil {
		return nil
	}
	for i, p := range params {
		if p == "..." && i != len(params)-1 {
			return &StructuralError{Kind: "malformed-variadic", Message: `"..." must be the last parameter`}
		}
	}
	count := 0
	for _, p := range params {
		if p == "..." {
			count++
		}
	}
	if count > 1 {
		return &StructuralError{Kind: "malformed-variadic", Message: `"..." may appear at most once`}
	}
	return nil
}

// MacroTable stores the live set of macro definitions for one
// preprocessor instance. It persists for the life of the instance,
// surviving across included files (spec.md §3, Lifecycle).
type MacroTable struct {
	macros map[string]*Macro
	// ignored holds names that Define silently refuses to (re)define,
	// per SPEC_FULL.md §11's ignore_macro_definitions option.
	ignored map[string]bool
}

// NewMacroTable returns an empty macro table.
func NewMacroTable() *MacroTable {
	return &MacroTable{macros: make(map[string]*Macro)}
}

// Define inserts or replaces the macro named name. A nil params means
// object-like; a non-nil (possibly empty) params means function-like.
// Define validates the variadic-parameter placement rule and refuses
// names previously passed to IgnoreDefinitions.
func (t *MacroTable) Define(name string, body string, params []string) error {
	if t.ignored != nil && t.ignored[name] {
		return nil
	}
	if err := validateParams(params); err != nil {
		return err
	}
	t.macros[name] = &Macro{Name: name, Params: params, Body: body}
	return nil
}

// IgnoreDefinitions marks names that future Define calls silently skip,
// supplementing the original Python's ignore_macro_definitions (see
// SPEC_FULL.md §11).
func (t *MacroTable) IgnoreDefinitions(names ...string) {
	if t.ignored == nil {
		t.ignored = make(map[string]bool)
	}
	for _, n := range names {
		t.ignored[n] = true
	}
}

// Undefine removes name if present; a no-op otherwise.
func (t *MacroTable) Undefine(name string) {
	delete(t.macros, name)
}

// IsDefined reports table membership.
func (t *MacroTable) IsDefined(name string) bool {
	_, ok := t.macros[name]
	return ok
}

// Lookup returns the macro named name, or nil if undefined.
func (t *MacroTable) Lookup(name string) *Macro {
	return t.macros[name]
}

// Names returns the currently defined macro names in unspecified order.
func (t *MacroTable) Names() []string {
	names := make([]string, 0, len(t.macros))
	for name := range t.macros {
		names = append(names, name)
	}
	return names
}

// substitute performs a single sweep of body, replacing every
// identifier exactly matching a parameter name with its argument text
// (spec.md §4.6, "Parameter substitution"). For a variadic macro,
// __VA_ARGS__ binds to the remaining arguments re-joined with ", ".
func substitute(m *Macro, args []string) string {
	if !m.IsFunctionLike() {
		return m.Body
	}
	bindings := make(map[string]string, len(m.Params)+1)
	fixed := m.FixedArity()
	for i := 0; i < fixed; i++ {
		if i < len(args) {
			bindings[m.Params[i]] = args[i]
		}
	}
	if m.IsVariadic() {
		var tail []string
		if len(args) > fixed {
			tail = args[fixed:]
		}
		bindings["__VA_ARGS__"] = strings.Join(tail, ", ")
	}

	var out strings.Builder
	body := m.Body
	pos := 0
	for pos < len(body) {
		start, end, ok := findIdentifier(body, pos)
		if !ok {
			out.WriteString(body[pos:])
			break
		}
		out.WriteString(body[pos:start])
		name := body[start:end]
		if repl, bound := bindings[name]; bound {
			out.WriteString(repl)
		} else {
			out.WriteString(name)
		}
		pos = end
	}
	return out.String()
}
