package ui

import (
	"github.com/vango-dev/ember/pkg/host"
	"github.com/vango-dev/ember/pkg/reactive"
)

// NoBranch is the active index of a conditional with nothing mounted.
const NoBranch = -1

// Branch is an ElseIf or Else clause, passed as a child of If.
type Branch struct {
	pred   func() bool
	body   *FragmentNode
	isElse bool
}

// IsElse reports whether the branch is an Else clause.
func (b *Branch) IsElse() bool { return b.isElse }

// ElseIf creates a clause selected when pred is the first true predicate.
func (r *Renderer) ElseIf(pred func() bool, children ...any) (*Branch, error) {
	if pred == nil {
		return nil, newBuildError(MissingCondition, "ElseIf", nil)
	}
	body, err := r.Fragment(children...)
	if err != nil {
		return nil, err
	}
	return &Branch{pred: pred, body: body}, nil
}

// Else creates the clause selected when no predicate holds.
func (r *Renderer) Else(children ...any) (*Branch, error) {
	body, err := r.Fragment(children...)
	if err != nil {
		return nil, err
	}
	return &Branch{body: body, isElse: true}, nil
}

// ConditionalNode mounts at most one of its branches: the first whose
// predicate holds, otherwise the else branch, otherwise nothing. Branch
// bodies are inserted before the node's anchor.
type ConditionalNode struct {
	r          *Renderer
	branches   []*Branch
	elseBranch *Branch
	current    int
	anchor     *Anchor
	effect     *reactive.Effect
}

// If creates a conditional block. ElseIf and Else clauses are passed among
// children; every other child belongs to the If branch. When several Else
// clauses are given the last one wins.
func (r *Renderer) If(pred func() bool, children ...any) (*ConditionalNode, error) {
	if pred == nil {
		return nil, newBuildError(MissingCondition, "If", nil)
	}

	c := &ConditionalNode{r: r, current: NoBranch, anchor: r.newAnchor()}
	var clauses []*Branch
	body := make([]any, 0, len(children))
	for _, child := range children {
		b, ok := child.(*Branch)
		if !ok {
			body = append(body, child)
			continue
		}
		switch {
		case b == nil:
		case b.isElse:
			c.elseBranch = b
		default:
			clauses = append(clauses, b)
		}
	}

	main, err := r.Fragment(body...)
	if err != nil {
		return nil, err
	}
	c.branches = append([]*Branch{{pred: pred, body: main}}, clauses...)
	return c, nil
}

func (c *ConditionalNode) Kind() Kind      { return KindConditional }
func (c *ConditionalNode) Anchor() *Anchor { return c.anchor }

// ActiveIndex returns the index of the mounted branch: If and ElseIf
// clauses in declaration order, then Else. NoBranch when none is mounted.
func (c *ConditionalNode) ActiveIndex() int { return c.current }

// Current returns the body of the active branch, nil when none is active.
func (c *ConditionalNode) Current() *FragmentNode {
	if b := c.branch(c.current); b != nil {
		return b.body
	}
	return nil
}

func (c *ConditionalNode) branch(i int) *Branch {
	switch {
	case i >= 0 && i < len(c.branches):
		return c.branches[i]
	case i == len(c.branches) && c.elseBranch != nil:
		return c.elseBranch
	}
	return nil
}

// selectBranch evaluates every predicate, so that each one's stores are
// dependencies, and returns the first that holds.
func (c *ConditionalNode) selectBranch() int {
	selected := NoBranch
	for i, b := range c.branches {
		if b.pred() && selected == NoBranch {
			selected = i
		}
	}
	if selected == NoBranch && c.elseBranch != nil {
		selected = len(c.branches)
	}
	return selected
}

func (c *ConditionalNode) Create() error {
	c.anchor.create()
	c.current, c.effect = reactive.Subscribe(c.r.rt, c.selectBranch, c.update)
	if b := c.branch(c.current); b != nil {
		if err := b.body.Create(); err != nil {
			c.effect.Dispose()
			c.effect = nil
			c.current = NoBranch
			c.anchor.delete()
			return err
		}
	}
	c.r.observer.NodeCreated(KindConditional)
	return nil
}

func (c *ConditionalNode) Mount(target, before host.Node) {
	if b := c.branch(c.current); b != nil {
		mountNode(b.body, target, before)
	}
}

func (c *ConditionalNode) update() {
	next := c.selectBranch()
	if next == c.current {
		return
	}
	prev := c.current
	if b := c.branch(prev); b != nil {
		deleteNode(b.body)
	}
	c.current = next

	if b := c.branch(next); b != nil {
		if err := b.body.Create(); err != nil {
			c.r.logger.Error("ember: conditional branch create failed", "branch", next, "error", err)
			c.current = NoBranch
		} else if parent := c.anchor.parent(); parent != nil {
			mountNode(b.body, parent, c.anchor.Node())
		}
	}
	c.r.observer.BranchSwitched(prev, c.current)
}

func (c *ConditionalNode) Delete() {
	c.effect.Dispose()
	c.effect = nil
	if b := c.branch(c.current); b != nil {
		deleteNode(b.body)
	}
	c.current = NoBranch
	c.r.observer.NodeDeleted(KindConditional)
}
