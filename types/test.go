package types

import (
	"context"
	"strconv"
)

// Settings is the read-only run configuration handed to every check and
// every reporting decision.
type Settings struct {
	Verbose bool
	JSON    bool
}

// Checkable is implemented by anything that can be run as a leaf check.
// A check reports its own failure through Failed; a non-nil error is a fault
// that aborts the whole run.
type Checkable interface {
	Execute(ctx context.Context, settings Settings) (Result, error)
}

// CheckFunc adapts an ordinary function to the Checkable interface.
type CheckFunc func(ctx context.Context, settings Settings) (Result, error)

func (f CheckFunc) Execute(ctx context.Context, settings Settings) (Result, error) {
	return f(ctx, settings)
}

// BoolCheck adapts a check that can only pass or fail.
func BoolCheck(fn func() bool) Checkable {
	return CheckFunc(func(context.Context, Settings) (Result, error) {
		return ResultFromBool(fn()), nil
	})
}

// placeholder is the check carried by groups. The runner never invokes it.
var placeholder = CheckFunc(func(context.Context, Settings) (Result, error) {
	return Passed(), nil
})

// Node is a single test in the test tree. A node with children is a group:
// its status is derived from its children and its own Check is ignored.
type Node struct {
	Name        string
	Description string
	Check       Checkable
	Children    []*Node
	Subtest     bool // true for nodes constructed as a child of a group
}

// NewTest creates a leaf node that runs check.
func NewTest(name, description string, check Checkable) *Node {
	return &Node{
		Name:        name,
		Description: description,
		Check:       check,
	}
}

// NewGroup creates a group node owning children, in order.
func NewGroup(name, description string, children ...*Node) *Node {
	for _, c := range children {
		c.Subtest = true
	}
	return &Node{
		Name:        name,
		Description: description,
		Check:       placeholder,
		Children:    children,
	}
}

func (n *Node) IsGroup() bool {
	return len(n.Children) > 0
}

// Kind returns "group" or "test", used as a log and metric label.
func (n *Node) Kind() string {
	if n.IsGroup() {
		return "group"
	}
	return "test"
}

// ChildPrefix returns the path prefix handed to the children of the node at
// index, e.g. "3." for top-level node 3 and "3.1." for its second child.
func ChildPrefix(prefix string, index int) string {
	return prefix + strconv.Itoa(index) + "."
}

// NodePath returns the dotted display path of the node at index.
func NodePath(prefix string, index int) string {
	return prefix + strconv.Itoa(index)
}

// SkipSet holds the top-level indices to skip. Indices that do not name a
// registered node are kept and simply never match.
type SkipSet map[int]struct{}

func NewSkipSet(indices ...int) SkipSet {
	s := make(SkipSet, len(indices))
	for _, i := range indices {
		s.Add(i)
	}
	return s
}

func (s SkipSet) Add(index int) {
	s[index] = struct{}{}
}

// Contains is safe on a nil set.
func (s SkipSet) Contains(index int) bool {
	_, ok := s[index]
	return ok
}
