// Package layout implements Component C of the pipeline: turning a styled
// DOM tree into an absolutely-positioned box tree. Block, inline, flex and
// grid algorithms are hand-written rather than delegated to a third-party
// layout engine — there is no mature standalone Go box-layout library to
// reach for, so a from-scratch implementation is the only option.
package layout

import (
	"github.com/arturoeanton/gospatial/css"
	"github.com/arturoeanton/gospatial/dom"
)

// Bounds is an absolute, viewport-relative axis-aligned box in pixels.
type Bounds struct {
	X, Y, Width, Height float64
}

// Right and Bottom are convenience accessors used when resolving the
// right/bottom offsets of absolutely positioned boxes.
func (b Bounds) Right() float64  { return b.X + b.Width }
func (b Bounds) Bottom() float64 { return b.Y + b.Height }

// LayoutNode is one element (or text run) of the computed box tree, still
// carrying a reference to the source DOM node and its resolved style so
// later stages (spatial emission, jsinfer) don't need a second tree walk to
// recover them.
type LayoutNode struct {
	Source   *dom.Node
	Style    css.LayoutStyle
	Bounds   Bounds
	Children []*LayoutNode
}

// positionedBox is the containing block used to resolve absolute/fixed
// offsets — threaded on the call stack rather than stored on LayoutNode,
// matching the ancestor-stack pattern used throughout this pipeline.
type positionedBox struct {
	bounds Bounds
}
