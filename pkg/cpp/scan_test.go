package cpp

import "testing"

func TestFindIdentifierSkipsStrings(t *testing.T) {
	s := `"FOO" FOO`
	_, _, ok := findIdentifier(s, 0)
	if !ok {
		t.Fatal("expected to find FOO outside the string")
	}
	a, b, ok := findIdentifier(s, 0)
	if !ok || s[a:b] != "FOO" || a != 6 {
		t.Fatalf("expected FOO at index 6, got [%d:%d)=%q ok=%v", a, b, s[a:b], ok)
	}
}

func TestFindIdentifierHexLiteralNotMisscanned(t *testing.T) {
	s := "0x1"
	_, _, ok := findIdentifier(s, 0)
	if ok {
		t.Fatalf("expected no identifier inside hex literal %q, scanner must not yield \"x1\"", s)
	}
}

func TestFindIdentifierFieldAccessSuppressed(t *testing.T) {
	s := "obj.FOO"
	a, b, ok := findIdentifier(s, 0)
	if !ok || s[a:b] != "obj" {
		t.Fatalf("expected to find leading identifier obj, got [%d:%d) ok=%v", a, b, ok)
	}
	_, _, ok = findIdentifier(s, b)
	if ok {
		t.Fatal("expected FOO after '.' to be suppressed with no further identifiers")
	}
}

func TestFindIdentifierArrowAccessSuppressed(t *testing.T) {
	s := "p->FOO bar"
	a, b, ok := findIdentifier(s, 0)
	if !ok || s[a:b] != "p" {
		t.Fatalf("expected to find leading identifier p, got [%d:%d) ok=%v", a, b, ok)
	}
	a, b, ok = findIdentifier(s, b)
	if !ok || s[a:b] != "bar" {
		t.Fatalf("expected FOO (after ->) to be suppressed and bar found instead, got [%d:%d)=%q ok=%v", a, b, safeSlice(s, a, b), ok)
	}
}

func TestFindIdentifierBackslashEscapeInString(t *testing.T) {
	s := `"a\"FOO\"b" FOO`
	a, b, ok := findIdentifier(s, 0)
	if !ok || s[a:b] != "FOO" {
		t.Fatalf("expected FOO outside the escaped string, got [%d:%d)=%q ok=%v", a, b, safeSlice(s, a, b), ok)
	}
}

func safeSlice(s string, a, b int) string {
	if a < 0 || b > len(s) || a > b {
		return ""
	}
	return s[a:b]
}

func TestFindArgumentListIncomplete(t *testing.T) {
	s := "FOO(1, 2"
	open, close, ok := findArgumentList(s, 3)
	if !ok || open != 3 || close != -1 {
		t.Fatalf("expected incomplete argument list, got open=%d close=%d ok=%v", open, close, ok)
	}
}

func TestFindArgumentListNoParens(t *testing.T) {
	_, _, ok := findArgumentList("FOO bar", 3)
	if ok {
		t.Fatal("expected no argument list when no '(' follows")
	}
}

func TestSplitArgumentsZeroArgs(t *testing.T) {
	if args := splitArguments(""); args != nil {
		t.Fatalf("expected nil args for empty parameter text, got %#v", args)
	}
	if args := splitArguments("   "); args != nil {
		t.Fatalf("expected nil args for whitespace-only parameter text, got %#v", args)
	}
}

func TestSplitArgumentsRespectsNesting(t *testing.T) {
	args := splitArguments(`1, f(2, 3), "a,b"`)
	want := []string{"1", "f(2, 3)", `"a,b"`}
	if len(args) != len(want) {
		t.Fatalf("got %#v, want %#v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d: got %q, want %q", i, args[i], want[i])
		}
	}
}
