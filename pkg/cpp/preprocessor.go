package cpp

import (
	"os"
	"path/filepath"
	"strings"
)

// preprocessor.go implements C8, the orchestrator tying C1 through C7
// together into the public Preprocessor API of SPEC_FULL.md §6.1,
// built around this package's string-based C1-C7 collaborators.

// PragmaHandler lets a caller react to #pragma directives other than
// the built-in "once" (SPEC_FULL.md §6.3's reimagining of the original
// Python's pragma escape hatch). It is invoked with the raw text
// following "#pragma " and may return an error to abort preprocessing.
type PragmaHandler func(text string, pp *Preprocessor) error

// Options configures a Preprocessor at construction (spec.md §3,
// Lifecycle: "constructed once with an initial macro set, include
// paths, and options").
type Options struct {
	Defines                map[string]string // predefined object-like macros (-D)
	Undefines              []string          // names to strip after Defines is applied (-U)
	IgnoreMacroDefinitions []string          // names #define may never (re)bind, per SPEC_FULL.md §11
	QuoteIncludePaths      []string
	AngleIncludePaths      []string
	IgnoreMissingIncludes  bool // emit nothing and continue instead of a StructuralError
	MaxExpansions          int  // 0 means defaultMaxExpansions
	Pragma                 PragmaHandler
}

// Preprocessor drives a complete run over one or more files, sharing a
// single MacroTable and IncludeResolver across every #include (spec.md
// §3, Lifecycle).
type Preprocessor struct {
	macros   *MacroTable
	resolver *IncludeResolver
	expander *Expander
	opts     Options
}

// NewPreprocessor constructs a Preprocessor per opts.
func NewPreprocessor(opts Options) (*Preprocessor, error) {
	macros := NewMacroTable()
	if len(opts.IgnoreMacroDefinitions) > 0 {
		macros.IgnoreDefinitions(opts.IgnoreMacroDefinitions...)
	}
	for name, body := range opts.Defines {
		if err := macros.Define(name, body, nil); err != nil {
			return nil, err
		}
	}
	for _, name := range opts.Undefines {
		macros.Undefine(name)
	}

	expander := NewExpander(macros)
	if opts.MaxExpansions > 0 {
		expander.MaxDepth = opts.MaxExpansions
	}

	return &Preprocessor{
		macros:   macros,
		resolver: NewIncludeResolver(opts.QuoteIncludePaths, opts.AngleIncludePaths),
		expander: expander,
		opts:     opts,
	}, nil
}

// Macros exposes the live macro table, e.g. for --print-macros (SPEC_FULL.md §6.2).
func (p *Preprocessor) Macros() *MacroTable { return p.macros }

// ProcessFile preprocesses the named file and everything it
// transitively #includes, returning the fully expanded output.
func (p *Preprocessor) ProcessFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &StructuralError{Kind: "include-not-found", Message: err.Error()}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return p.processFile(abs, string(data))
}

// ProcessString preprocesses text as if it were a top-level file
// located in dir, for #include resolution of any relative paths it
// contains. dir may be "" when the text has no includable relatives.
func (p *Preprocessor) ProcessString(text, dir string) (string, error) {
	return p.processContent(text, dir, "<string>")
}

func (p *Preprocessor) processFile(absPath, content string) (string, error) {
	if should, err := p.resolver.PushFile(absPath); err != nil {
		return "", err
	} else if !should {
		return "", nil
	}
	defer p.resolver.PopFile()

	out, err := p.processContent(content, filepath.Dir(absPath), absPath)
	if err != nil {
		return "", err
	}

	if guardName, wraps := DetectIncludeGuard(strings.Split(content, "\n")); wraps && guardName != "" {
		p.resolver.MarkPragmaOnce(absPath)
	}
	return out, nil
}

// processContent runs C1-C7 over one file's content. label identifies
// the file for #pragma once bookkeeping when it is a real path.
func (p *Preprocessor) processContent(content, dir, label string) (string, error) {
	cond := NewConditionalStack()
	asm := &LineAssembler{}

	rawLines := splitLinesKeepEnds(content)
	var out strings.Builder
	var pendingRemainder string

	emit := func(s string) {
		out.WriteString(s)
		out.WriteByte('\n')
	}

	i := 0
	for i < len(rawLines) {
		line := rawLines[i]
		i++

		stripped := asm.StripComments(line)
		joined, ready := asm.Join(stripped)
		if !ready {
			continue
		}

		logical := strings.TrimRight(joined, "\r\n")
		if pendingRemainder != "" {
			logical = pendingRemainder + logical
			pendingRemainder = ""
		}

		trimmed := trimSpace(logical)
		if strings.HasPrefix(trimmed, "#") {
			d, ok := ParseDirective(trimmed)
			if !ok {
				continue // unrecognized directive: silently ignored (spec.md §4.2)
			}
			if !d.IsConditional() && !cond.Active() {
				continue
			}
			if err := p.dispatch(d, cond, dir, label, &out); err != nil {
				return "", err
			}
			continue
		}

		if !cond.Active() {
			continue
		}

		expanded, remainder, err := p.expander.Expand(logical)
		if err != nil {
			return "", err
		}
		if remainder != "" {
			pendingRemainder = remainder
			continue
		}
		emit(expanded)
	}

	if err := asm.AtEOF(); err != nil {
		return "", err
	}
	if pendingRemainder != "" {
		return "", &StructuralError{Kind: "unterminated-argument-list", Message: "macro invocation's argument list never closed before end of file"}
	}
	if err := cond.CheckBalanced(0); err != nil {
		return "", err
	}

	return out.String(), nil
}

// dispatch executes a single parsed directive against cond.
func (p *Preprocessor) dispatch(d Directive, cond *ConditionalStack, dir, label string, out *strings.Builder) error {
	switch d.Type {
	case DirIf:
		truthy, err := p.evalCondition(d.Expr, cond)
		if err != nil {
			return err
		}
		cond.EnterIf(truthy)
	case DirIfdef:
		cond.EnterIf(p.macros.IsDefined(d.Ident))
	case DirIfndef:
		cond.EnterIf(!p.macros.IsDefined(d.Ident))
	case DirElif:
		truthy, err := p.evalCondition(d.Expr, cond)
		if err != nil {
			return err
		}
		return cond.Elif(truthy)
	case DirElse:
		return cond.Else()
	case DirEndif:
		return cond.Endif()
	case DirDefine:
		if !cond.Active() {
			return nil
		}
		return p.macros.Define(d.Name, d.Body, d.Params)
	case DirUndef:
		if cond.Active() {
			p.macros.Undefine(d.Ident)
		}
	case DirError:
		if cond.Active() {
			return &DirectiveError{Text: d.Text}
		}
	case DirInclude:
		if !cond.Active() {
			return nil
		}
		included, err := p.processInclude(d, dir)
		if err != nil {
			return err
		}
		out.WriteString(included)
	case DirPragma:
		if !cond.Active() {
			return nil
		}
		if trimSpace(d.Text) == "once" {
			p.resolver.MarkPragmaOnce(label)
			return nil
		}
		if p.opts.Pragma != nil {
			return p.opts.Pragma(d.Text, p)
		}
	}
	return nil
}

// evalCondition evaluates expr only while the enclosing scope is
// ACTIVE or SEEKING (spec.md §4.3: a SKIPPING #if's expression is never
// evaluated, since it may reference undefined identifiers safely).
//
// expr is handed to Evaluate as-is, not pre-expanded through the
// general macro expander: Evaluate resolves bare object-like-macro
// identifiers itself as it walks the grammar (see parsePrimary), and
// doing a blind text expansion pass first would incorrectly rewrite
// the literal operand of defined(X) before parseDefined ever saw it.
//
// Any evaluation failure (syntax, division by zero, ...) is swallowed
// and treated as false rather than propagated, per spec.md §4.3/§7: a
// failure reaching #if/#elif is not fatal to the enclosing preprocess,
// unlike a direct call to Evaluate.
func (p *Preprocessor) evalCondition(expr string, cond *ConditionalStack) (bool, error) {
	if cond.State() == SKIPPING {
		return false, nil
	}
	v, err := Evaluate(expr, p.macros)
	if err != nil {
		return false, nil
	}
	return v != 0, nil
}

// splitLinesKeepEnds splits content into physical lines, each retaining
// its trailing "\n" or "\r\n" (absent only for a final unterminated
// line), so LineAssembler.Join can recognize a trailing backslash
// immediately before the line terminator.
func splitLinesKeepEnds(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, content[start:i+1])
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

func (p *Preprocessor) processInclude(d Directive, dir string) (string, error) {
	resolved, err := p.resolver.Resolve(d.Path, d.Angled, dir)
	if err != nil {
		if p.opts.IgnoreMissingIncludes {
			return "", nil
		}
		return "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		if p.opts.IgnoreMissingIncludes {
			return "", nil
		}
		return "", &StructuralError{Kind: "include-not-found", Message: err.Error()}
	}
	return p.processFile(resolved, string(data))
}
