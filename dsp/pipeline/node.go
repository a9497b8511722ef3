package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cwbudde/algo-voicefx/dsp/primitive"
)

var (
	// ErrEmptyComposite is returned when a Chain or MixBus is built without children.
	ErrEmptyComposite = errors.New("pipeline: composite node has no children")
	// ErrUnsupportedPrimitive is returned when a Stage's kind has no implementation.
	ErrUnsupportedPrimitive = errors.New("pipeline: unsupported primitive")
	// ErrChannelMismatch is returned when a primitive changes the channel count.
	ErrChannelMismatch = errors.New("pipeline: channel count mismatch")

	errNilNode = errors.New("pipeline: nil node")
)

// Node is a pipeline graph node: *Stage, *Chain or *MixBus.
type Node interface {
	// String returns the canonical textual form of the subtree.
	String() string

	sealed()
}

// Stage is a leaf applying a single primitive.
type Stage struct {
	desc primitive.Descriptor
	repr string
}

// NewStage wraps a primitive descriptor.
func NewStage(d primitive.Descriptor) *Stage {
	return &Stage{desc: d, repr: d.String()}
}

// Descriptor returns the stage's primitive descriptor.
func (s *Stage) Descriptor() primitive.Descriptor { return s.desc }

func (s *Stage) String() string { return s.repr }

func (*Stage) sealed() {}

// Chain applies its children in declared order.
type Chain struct {
	children []Node
	repr     string
}

// NewChain builds a chain from one or more children.
func NewChain(children ...Node) (*Chain, error) {
	if err := checkChildren("chain", children); err != nil {
		return nil, err
	}

	c := &Chain{children: slices.Clone(children)}
	c.repr = join(c.children, " -> ")

	return c, nil
}

// Children returns a copy of the chain's children.
func (c *Chain) Children() []Node { return slices.Clone(c.children) }

func (c *Chain) String() string {
	if len(c.children) == 1 {
		return c.repr
	}

	return "[" + c.repr + "]"
}

func (*Chain) sealed() {}

// MixBus evaluates every branch on its own copy of the input and sums the
// results. Branches are stored in canonical order.
type MixBus struct {
	branches []Node
	repr     string
}

// NewMixBus builds a mix bus from one or more branches.
func NewMixBus(branches ...Node) (*MixBus, error) {
	if err := checkChildren("mix bus", branches); err != nil {
		return nil, err
	}

	sorted := slices.Clone(branches)
	slices.SortStableFunc(sorted, func(a, b Node) int {
		return strings.Compare(a.String(), b.String())
	})

	return &MixBus{branches: sorted, repr: "mix{" + join(sorted, " + ") + "}"}, nil
}

// Branches returns a copy of the branches in canonical order.
func (m *MixBus) Branches() []Node { return slices.Clone(m.branches) }

func (m *MixBus) String() string { return m.repr }

func (*MixBus) sealed() {}

func checkChildren(what string, children []Node) error {
	if len(children) == 0 {
		return fmt.Errorf("%w: empty %s", ErrEmptyComposite, what)
	}

	for i, c := range children {
		if c == nil {
			return fmt.Errorf("%w: %s child %d", errNilNode, what, i)
		}
	}

	return nil
}

func join(nodes []Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}

	return strings.Join(parts, sep)
}

// Describe returns the canonical one-line form of a graph.
func Describe(n Node) string {
	if n == nil {
		return "<nil>"
	}

	return n.String()
}

// Walk visits n and its descendants depth-first in evaluation order and
// stops at the first error returned by fn.
func Walk(n Node, fn func(Node) error) error {
	if err := fn(n); err != nil {
		return err
	}

	var children []Node

	switch v := n.(type) {
	case *Chain:
		children = v.children
	case *MixBus:
		children = v.branches
	}

	for _, c := range children {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}

	return nil
}

// Stages returns every stage in n in evaluation order.
func Stages(n Node) []*Stage {
	var out []*Stage

	_ = Walk(n, func(n Node) error {
		if s, ok := n.(*Stage); ok {
			out = append(out, s)
		}

		return nil
	})

	return out
}

// Validate reports ErrUnsupportedPrimitive for the first stage whose kind lib
// cannot apply, and primitive.ErrInvalidParam for the first stage whose
// parameters no sample rate can realise.
func Validate(n Node, lib *primitive.Library) error {
	if n == nil {
		return errNilNode
	}

	for _, s := range Stages(n) {
		if !lib.Supports(s.desc.Kind()) {
			return fmt.Errorf("%w: %s", ErrUnsupportedPrimitive, s.desc.Kind())
		}

		if err := primitive.Check(s.desc); err != nil {
			return err
		}
	}

	return nil
}
