package eval

import "github.com/cheaxlang/cheax/internal/interr"

// DefaultMaxStackDepth matches the recursion ceiling a host embedder
// gets unless it calls set-max-stack-depth (optional feature, spec 6).
const DefaultMaxStackDepth = 1024

// CallStack is a pure depth counter guarding lambda application against
// unbounded recursion (spec 4.F: "depth-guarded ESTACK"). It carries no
// frame metadata beyond the count itself; cheax's error reporting is
// positional (interr.Position), not stack-trace based.
type CallStack struct {
	depth    int
	maxDepth int
}

// NewCallStack creates a CallStack with the given ceiling. maxDepth <= 0
// selects DefaultMaxStackDepth.
func NewCallStack(maxDepth int) *CallStack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxStackDepth
	}
	return &CallStack{maxDepth: maxDepth}
}

// Enter increments the depth, failing with ESTACK if doing so would
// exceed the ceiling. Every successful Enter must be matched by
// exactly one Leave, on every exit path (spec 4.F: "the frame is
// popped on every exit path").
func (c *CallStack) Enter() error {
	if c.depth >= c.maxDepth {
		return interr.StackOverflow(c.maxDepth)
	}
	c.depth++
	return nil
}

// Leave decrements the depth.
func (c *CallStack) Leave() {
	if c.depth > 0 {
		c.depth--
	}
}

// Depth returns the current call depth.
func (c *CallStack) Depth() int {
	return c.depth
}

// MaxDepth returns the configured ceiling.
func (c *CallStack) MaxDepth() int {
	return c.maxDepth
}

// SetMaxDepth updates the ceiling (the set-max-stack-depth feature,
// spec 6). maxDepth <= 0 selects DefaultMaxStackDepth.
func (c *CallStack) SetMaxDepth(maxDepth int) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxStackDepth
	}
	c.maxDepth = maxDepth
}
