package cpp

import (
	"regexp"
	"strings"
)

// directive.go implements C2, the directive recognizer of spec.md §4.2:
// an ordered list of compiled regexes tried in sequence, one per
// directive keyword.

// DirectiveType identifies which # directive a line matched.
type DirectiveType int

const (
	dirNone DirectiveType = iota
	DirIf
	DirIfdef
	DirIfndef
	DirElif
	DirElse
	DirEndif
	DirPragma
	DirError
	DirInclude
	DirUndef
	DirDefine
)

// Directive is a parsed "#"-prefixed logical line.
type Directive struct {
	Type DirectiveType

	// #if / #elif
	Expr string

	// #ifdef / #ifndef / #undef
	Ident string

	// #include
	Path   string
	Angled bool // true for <path>, false for "path"

	// #error / #pragma
	Text string

	// #define
	Name   string
	Params []string // nil for object-like
	Body   string
}

var (
	reIf      = regexp.MustCompile(`^if\s+(.*)$`)
	reIfdef   = regexp.MustCompile(`^ifdef\s+(\w+)\s*$`)
	reIfndef  = regexp.MustCompile(`^ifndef\s+(\w+)\s*$`)
	reElif    = regexp.MustCompile(`^elif\s+(.*)$`)
	reEndif   = regexp.MustCompile(`^endif\s*$`)
	reElse    = regexp.MustCompile(`^else\s*$`)
	rePragma  = regexp.MustCompile(`^pragma\s+(.*)$`)
	reError   = regexp.MustCompile(`^error\s+(.*)$`)
	reInclQ   = regexp.MustCompile(`^include\s*"([^"]*)"\s*$`)
	reInclA   = regexp.MustCompile(`^include\s*<([^>]*)>\s*$`)
	reUndef   = regexp.MustCompile(`^undef\s+(\w+)\s*$`)
	reDefineF = regexp.MustCompile(`^define\s+(\w+)\(([^)]*)\)\s*(.*)$`)
	reDefineO = regexp.MustCompile(`^define\s+(\w+)\s*(.*)$`)
)

// ParseDirective recognizes a trimmed line already known to start with
// "#" (optional whitespace before the keyword is tolerated, per
// spec.md §4.2 "directives like `#  define` must be honored"). It
// returns ok=false for an unrecognized directive, which spec.md says
// must be silently ignored.
func ParseDirective(line string) (d Directive, ok bool) {
	rest := strings.TrimPrefix(line, "#")
	rest = strings.TrimLeft(rest, " \t")

	// Conditional directives (checked regardless of enable-state).
	if m := reIf.FindStringSubmatch(rest); m != nil {
		return Directive{Type: DirIf, Expr: m[1]}, true
	}
	if m := reIfdef.FindStringSubmatch(rest); m != nil {
		return Directive{Type: DirIfdef, Ident: m[1]}, true
	}
	if m := reIfndef.FindStringSubmatch(rest); m != nil {
		return Directive{Type: DirIfndef, Ident: m[1]}, true
	}
	if m := reElif.FindStringSubmatch(rest); m != nil {
		return Directive{Type: DirElif, Expr: m[1]}, true
	}
	if reEndif.MatchString(rest) {
		return Directive{Type: DirEndif}, true
	}
	if reElse.MatchString(rest) {
		return Directive{Type: DirElse}, true
	}

	// Standalone directives.
	if m := rePragma.FindStringSubmatch(rest); m != nil {
		return Directive{Type: DirPragma, Text: m[1]}, true
	}
	if m := reError.FindStringSubmatch(rest); m != nil {
		return Directive{Type: DirError, Text: m[1]}, true
	}
	if m := reInclQ.FindStringSubmatch(rest); m != nil {
		return Directive{Type: DirInclude, Path: m[1], Angled: false}, true
	}
	if m := reInclA.FindStringSubmatch(rest); m != nil {
		return Directive{Type: DirInclude, Path: m[1], Angled: true}, true
	}
	if m := reUndef.FindStringSubmatch(rest); m != nil {
		return Directive{Type: DirUndef, Ident: m[1]}, true
	}

	// Defines: function-like must be tried before object-like, since
	// "NAME(" would also satisfy the object-like pattern's body group.
	if m := reDefineF.FindStringSubmatch(rest); m != nil {
		params := splitArguments(m[2])
		if params == nil {
			params = []string{}
		}
		return Directive{Type: DirDefine, Name: m[1], Params: params, Body: strings.TrimSpace(m[3])}, true
	}
	if m := reDefineO.FindStringSubmatch(rest); m != nil {
		return Directive{Type: DirDefine, Name: m[1], Params: nil, Body: strings.TrimSpace(m[2])}, true
	}

	return Directive{}, false
}

// IsConditional reports whether d must be dispatched even while the
// current enable-state is not ACTIVE (spec.md §4.2: "Conditional
// directives are dispatched regardless of current enable-state").
func (d Directive) IsConditional() bool {
	switch d.Type {
	case DirIf, DirIfdef, DirIfndef, DirElif, DirElse, DirEndif:
		return true
	default:
		return false
	}
}
