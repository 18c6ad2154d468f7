package cpp

import (
	"os"
	"path/filepath"
)

// resolver.go implements C8's path-resolution half: searching quote
// and angle-bracket include paths, and tracking which files must not be
// read again due to #pragma once or a detected include guard. There is
// no notion of system compiler include paths here, only the explicit
// search lists of spec.md §4.8.

// MaxIncludeDepth bounds recursive #include nesting (spec.md §7,
// "include nested too deeply").
const MaxIncludeDepth = 200

// IncludeResolver resolves #include targets to file paths and tracks
// pragma-once / include-guard suppression across the lifetime of one
// Preprocessor instance (spec.md §3, Lifecycle).
type IncludeResolver struct {
	QuotePaths []string // searched for #include "..." after the including file's directory
	AnglePaths []string // searched for #include <...>

	guarded map[string]bool // files never to be read again
	stack   []string        // currently-open file paths, for cycle detection
}

// NewIncludeResolver returns a resolver with the given search paths.
func NewIncludeResolver(quotePaths, anglePaths []string) *IncludeResolver {
	return &IncludeResolver{
		QuotePaths: quotePaths,
		AnglePaths: anglePaths,
		guarded:    make(map[string]bool),
	}
}

// Resolve finds the file for a #include directive. currentDir is the
// directory of the file containing the #include (used first for quoted
// includes, per spec.md §4.8).
func (r *IncludeResolver) Resolve(path string, angled bool, currentDir string) (string, error) {
	var candidates []string
	if !angled {
		candidates = append(candidates, filepath.Join(currentDir, path))
		candidates = append(candidates, r.joinAll(r.QuotePaths, path)...)
		candidates = append(candidates, r.joinAll(r.AnglePaths, path)...)
	} else {
		candidates = append(candidates, r.joinAll(r.AnglePaths, path)...)
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", &StructuralError{Kind: "include-not-found", Message: "cannot find include file: " + path}
}

func (r *IncludeResolver) joinAll(dirs []string, path string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, filepath.Join(d, path))
	}
	return out
}

// PushFile records resolvedPath as now open, detecting circular
// #include chains and excess nesting (spec.md §7). It returns false
// without error when resolvedPath is already guarded and must be
// silently skipped.
func (r *IncludeResolver) PushFile(resolvedPath string) (shouldRead bool, err error) {
	if r.guarded[resolvedPath] {
		return false, nil
	}
	for _, open := range r.stack {
		if open == resolvedPath {
			return false, &StructuralError{Kind: "circular-include", Message: "circular #include of " + resolvedPath}
		}
	}
	if len(r.stack) >= MaxIncludeDepth {
		return false, &StructuralError{Kind: "include-too-deep", Message: "#include nested too deeply"}
	}
	r.stack = append(r.stack, resolvedPath)
	return true, nil
}

// PopFile closes the most recently pushed file.
func (r *IncludeResolver) PopFile() {
	if len(r.stack) > 0 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// MarkPragmaOnce permanently suppresses future reads of resolvedPath,
// for #pragma once or a detected include guard (SPEC_FULL.md §11).
func (r *IncludeResolver) MarkPragmaOnce(resolvedPath string) {
	r.guarded[resolvedPath] = true
}

// IsGuarded reports whether resolvedPath has been marked via
// MarkPragmaOnce (for #pragma once, or by the Preprocessor after
// DetectIncludeGuard recognized a guard).
func (r *IncludeResolver) IsGuarded(resolvedPath string) bool {
	return r.guarded[resolvedPath]
}

// DetectIncludeGuard recognizes the classic
//
//	#ifndef NAME
//	#define NAME
//	...
//	#endif
//
// pattern wrapping the entire file body: the first two non-blank lines
// must be "#ifndef NAME" and "#define NAME", and the last non-blank line
// "#endif". It only reports the guard name and whether the pattern
// matched; it marks nothing itself. The Preprocessor marks the file via
// MarkPragmaOnce when it matches, so a second #include is skipped
// (SPEC_FULL.md §11).
func DetectIncludeGuard(lines []string) (name string, wrapsWholeFile bool) {
	firstIdx := -1
	for i, l := range lines {
		t := trimSpace(l)
		if t == "" {
			continue
		}
		firstIdx = i
		break
	}
	if firstIdx < 0 {
		return "", false
	}
	d, ok := ParseDirective(trimSpace(lines[firstIdx]))
	if !ok || d.Type != DirIfndef {
		return "", false
	}
	guardName := d.Ident

	secondIdx := -1
	for i := firstIdx + 1; i < len(lines); i++ {
		t := trimSpace(lines[i])
		if t == "" {
			continue
		}
		secondIdx = i
		break
	}
	if secondIdx < 0 {
		return "", false
	}
	d2, ok := ParseDirective(trimSpace(lines[secondIdx]))
	if !ok || d2.Type != DirDefine || d2.Name != guardName {
		return "", false
	}

	lastIdx := -1
	for i := len(lines) - 1; i >= 0; i-- {
		t := trimSpace(lines[i])
		if t == "" {
			continue
		}
		lastIdx = i
		break
	}
	if lastIdx < 0 {
		return "", false
	}
	d3, ok := ParseDirective(trimSpace(lines[lastIdx]))
	if !ok || d3.Type != DirEndif {
		return "", false
	}

	return guardName, true
}
