package cpp

import "testing"

func TestLineAssemblerJoinsContinuation(t *testing.T) {
	a := &LineAssembler{}
	_, ready := a.Join("foo \\\n")
	if ready {
		t.Fatal("expected not ready after a backslash-continued line")
	}
	joined, ready := a.Join("bar\n")
	if !ready || joined != "foo bar\n" {
		t.Fatalf("got joined=%q ready=%v", joined, ready)
	}
}

func TestLineAssemblerNoContinuation(t *testing.T) {
	a := &LineAssembler{}
	joined, ready := a.Join("foo\n")
	if !ready || joined != "foo\n" {
		t.Fatalf("got joined=%q ready=%v", joined, ready)
	}
}

func TestLineAssemblerStripsLineComment(t *testing.T) {
	a := &LineAssembler{}
	got := a.StripComments("foo // bar\n")
	if got != "foo " {
		t.Fatalf("got %q", got)
	}
}

func TestLineAssemblerStripsBlockCommentSameLine(t *testing.T) {
	a := &LineAssembler{}
	got := a.StripComments("foo /* x */ bar\n")
	if got != "foo  bar\n" {
		t.Fatalf("got %q", got)
	}
}

func TestLineAssemblerBlockCommentAcrossLines(t *testing.T) {
	a := &LineAssembler{}
	got1 := a.StripComments("foo /* start\n")
	if got1 != "foo " {
		t.Fatalf("first line got %q", got1)
	}
	got2 := a.StripComments("middle\n")
	if got2 != "" {
		t.Fatalf("middle line got %q, want empty", got2)
	}
	got3 := a.StripComments("end */ bar\n")
	if got3 != " bar\n" {
		t.Fatalf("last line got %q", got3)
	}
	if err := a.AtEOF(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLineAssemblerUnterminatedBlockCommentAtEOF(t *testing.T) {
	a := &LineAssembler{}
	a.StripComments("foo /* never closed\n")
	if err := a.AtEOF(); err == nil {
		t.Fatal("expected unterminated-comment error")
	}
}
