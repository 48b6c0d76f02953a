package eval

import "testing"

func TestCallStackEnterLeave(t *testing.T) {
	cs := NewCallStack(4)
	if err := cs.Enter(); err != nil {
		t.Fatal(err)
	}
	if cs.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", cs.Depth())
	}
	cs.Leave()
	if cs.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", cs.Depth())
	}
}

func TestCallStackOverflows(t *testing.T) {
	cs := NewCallStack(2)
	if err := cs.Enter(); err != nil {
		t.Fatal(err)
	}
	if err := cs.Enter(); err != nil {
		t.Fatal(err)
	}
	if err := cs.Enter(); err == nil {
		t.Fatal("expected ESTACK exceeding the configured depth")
	}
}

func TestCallStackDefaultDepth(t *testing.T) {
	cs := NewCallStack(0)
	if cs.MaxDepth() != DefaultMaxStackDepth {
		t.Errorf("MaxDepth() = %d, want %d", cs.MaxDepth(), DefaultMaxStackDepth)
	}
}

func TestCallStackSetMaxDepth(t *testing.T) {
	cs := NewCallStack(10)
	cs.SetMaxDepth(2)
	if err := cs.Enter(); err != nil {
		t.Fatal(err)
	}
	if err := cs.Enter(); err != nil {
		t.Fatal(err)
	}
	if err := cs.Enter(); err == nil {
		t.Fatal("expected ESTACK after lowering the ceiling")
	}
}
