package cpp

import "testing"

func TestConditionalStackSimpleIfTaken(t *testing.T) {
	c := NewConditionalStack()
	c.EnterIf(true)
	if !c.Active() {
		t.Fatal("expected ACTIVE after a truthy #if")
	}
	if err := c.Endif(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Active() || c.Depth() != 0 {
		t.Fatal("expected ACTIVE and depth 0 after #endif")
	}
}

func TestConditionalStackSimpleIfNotTaken(t *testing.T) {
	c := NewConditionalStack()
	c.EnterIf(false)
	if c.State() != SEEKING {
		t.Fatalf("expected SEEKING, got %v", c.State())
	}
	if err := c.Else(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Active() {
		t.Fatal("#else after a falsy #if should become ACTIVE")
	}
}

func TestConditionalStackElseAfterTakenBranchSkips(t *testing.T) {
	c := NewConditionalStack()
	c.EnterIf(true)
	if err := c.Else(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != SKIPPING {
		t.Fatalf("expected SKIPPING for #else after a taken branch, got %v", c.State())
	}
}

func TestConditionalStackNestedUnderSeekingIsSkipping(t *testing.T) {
	c := NewConditionalStack()
	c.EnterIf(false) // SEEKING
	c.EnterIf(true)  // nested inside non-ACTIVE: must be SKIPPING regardless of truthy
	if c.State() != SKIPPING {
		t.Fatalf("expected SKIPPING, got %v", c.State())
	}
	c.Endif()
	if c.State() != SEEKING {
		t.Fatalf("expected SEEKING restored, got %v", c.State())
	}
}

func TestConditionalStackElifPromotesFromSeeking(t *testing.T) {
	c := NewConditionalStack()
	c.EnterIf(false)
	if err := c.Elif(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Active() {
		t.Fatal("truthy #elif from SEEKING should promote to ACTIVE")
	}
}

func TestConditionalStackElifAfterActiveClosesBranch(t *testing.T) {
	c := NewConditionalStack()
	c.EnterIf(true)
	if err := c.Elif(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != SKIPPING {
		t.Fatalf("expected SKIPPING, got %v", c.State())
	}
}

func TestConditionalStackUnbalancedErrors(t *testing.T) {
	c := NewConditionalStack()
	if err := c.Endif(); err == nil {
		t.Fatal("expected error for #endif with empty stack")
	}
	if err := c.Else(); err == nil {
		t.Fatal("expected error for #else with empty stack")
	}
	if err := c.Elif(true); err == nil {
		t.Fatal("expected error for #elif with empty stack")
	}
}

func TestConditionalStackCheckBalanced(t *testing.T) {
	c := NewConditionalStack()
	c.EnterIf(true)
	if err := c.CheckBalanced(0); err == nil {
		t.Fatal("expected unterminated-if error when stack not balanced at file end")
	}
	c.Endif()
	if err := c.CheckBalanced(0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
