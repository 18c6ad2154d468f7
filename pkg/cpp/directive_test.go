package cpp

import "testing"

func TestParseDirectiveIf(t *testing.T) {
	d, ok := ParseDirective("#if FOO > 1")
	if !ok || d.Type != DirIf || d.Expr != "FOO > 1" {
		t.Fatalf("got %+v ok=%v", d, ok)
	}
}

func TestParseDirectiveSpacedKeyword(t *testing.T) {
	// Scenario 6: "#  define X 1" must be honored.
	d, ok := ParseDirective("#  define X 1")
	if !ok || d.Type != DirDefine || d.Name != "X" || d.Body != "1" {
		t.Fatalf("got %+v ok=%v", d, ok)
	}
}

func TestParseDirectiveFunctionLikeDefine(t *testing.T) {
	d, ok := ParseDirective("#define ADD(a, b) ((a) + (b))")
	if !ok || d.Type != DirDefine || d.Name != "ADD" {
		t.Fatalf("got %+v ok=%v", d, ok)
	}
	want := []string{"a", "b"}
	if len(d.Params) != 2 || d.Params[0] != want[0] || d.Params[1] != want[1] {
		t.Fatalf("got params %#v, want %#v", d.Params, want)
	}
	if d.Body != "((a) + (b))" {
		t.Fatalf("got body %q", d.Body)
	}
}

func TestParseDirectiveZeroArgDefineIsFunctionLike(t *testing.T) {
	d, ok := ParseDirective("#define E() 23")
	if !ok || d.Type != DirDefine || d.Params == nil {
		t.Fatalf("got %+v ok=%v, want non-nil empty Params for zero-arg function-like macro", d, ok)
	}
	if len(d.Params) != 0 {
		t.Fatalf("expected zero params, got %#v", d.Params)
	}
}

func TestParseDirectiveObjectLikeDefineHasNilParams(t *testing.T) {
	d, ok := ParseDirective("#define X 1")
	if !ok || d.Params != nil {
		t.Fatalf("got %+v ok=%v, want nil Params for object-like macro", d, ok)
	}
}

func TestParseDirectiveInclude(t *testing.T) {
	d, ok := ParseDirective(`#include "foo.h"`)
	if !ok || d.Type != DirInclude || d.Path != "foo.h" || d.Angled {
		t.Fatalf("got %+v ok=%v", d, ok)
	}
	d2, ok2 := ParseDirective("#include <foo.h>")
	if !ok2 || d2.Type != DirInclude || d2.Path != "foo.h" || !d2.Angled {
		t.Fatalf("got %+v ok=%v", d2, ok2)
	}
}

func TestParseDirectiveUnrecognizedIsIgnored(t *testing.T) {
	_, ok := ParseDirective("#frobnicate something")
	if ok {
		t.Fatal("expected an unrecognized directive to report ok=false")
	}
}

func TestParseDirectiveIsConditional(t *testing.T) {
	d, _ := ParseDirective("#endif")
	if !d.IsConditional() {
		t.Error("#endif should be conditional")
	}
	d2, _ := ParseDirective("#define X 1")
	if d2.IsConditional() {
		t.Error("#define should not be conditional")
	}
}

func TestParseDirectiveErrorAndPragma(t *testing.T) {
	d, ok := ParseDirective("#error boom")
	if !ok || d.Type != DirError || d.Text != "boom" {
		t.Fatalf("got %+v ok=%v", d, ok)
	}
	d2, ok2 := ParseDirective("#pragma once")
	if !ok2 || d2.Type != DirPragma || d2.Text != "once" {
		t.Fatalf("got %+v ok=%v", d2, ok2)
	}
}
