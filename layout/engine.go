package layout

import (
	"github.com/arturoeanton/gospatial/css"
	"github.com/arturoeanton/gospatial/dom"
)

// ComputeLayout builds the box tree for root (a Document node) against a
// viewport of the given size. styles must carry one resolved LayoutStyle
// per element node, as produced by css.ComputeStyleTree.
func ComputeLayout(root *dom.Node, styles map[*dom.Node]css.LayoutStyle, viewportWidth, viewportHeight float64) *LayoutNode {
	tree := buildTree(root, styles, 16)
	tree.Style.Display = css.DisplayBlock
	tree.Style.Width = css.Px(viewportWidth)
	tree.Style.Height = css.Px(viewportHeight)

	viewport := positionedBox{bounds: Bounds{X: 0, Y: 0, Width: viewportWidth, Height: viewportHeight}}
	tree.Bounds = viewport.bounds
	layoutChildContent(tree, viewport)
	return tree
}

// buildTree mirrors the DOM tree into LayoutNodes. Text nodes get a
// synthetic inline style carrying the inherited font size, since they have
// no entry in the styles map (ComputeStyleTree only resolves elements).
func buildTree(n *dom.Node, styles map[*dom.Node]css.LayoutStyle, parentFontSize float64) *LayoutNode {
	ln := &LayoutNode{Source: n}
	fontSize := parentFontSize
	switch n.Type {
	case dom.NodeElement:
		if s, ok := styles[n]; ok {
			ln.Style = s
			fontSize = s.FontSize
		}
	case dom.NodeText:
		ln.Style = css.LayoutStyle{Display: css.DisplayInline, FontSize: parentFontSize, LineHeight: 1.2}
	case dom.NodeDocument:
		ln.Style = css.LayoutStyle{Display: css.DisplayBlock, FontSize: parentFontSize, LineHeight: 1.2}
	}
	for _, c := range n.Children {
		ln.Children = append(ln.Children, buildTree(c, styles, fontSize))
	}
	return ln
}

// layoutChildContent lays out n's children inside n's content box (n.Bounds
// minus padding/border), dispatching to whichever algorithm n's own display
// calls for. n.Bounds must already be set by the caller.
func layoutChildContent(n *LayoutNode, pos positionedBox) {
	style := n.Style
	contentX := n.Bounds.X + style.BorderWidth.Left + style.Padding.Left
	contentY := n.Bounds.Y + style.BorderWidth.Top + style.Padding.Top
	contentWidth := n.Bounds.Width - style.BorderWidth.Left - style.BorderWidth.Right - style.Padding.Left - style.Padding.Right
	contentHeight := n.Bounds.Height - style.BorderWidth.Top - style.BorderWidth.Bottom - style.Padding.Top - style.Padding.Bottom
	if contentWidth < 0 {
		contentWidth = 0
	}
	if contentHeight < 0 {
		contentHeight = 0
	}

	childPos := pos
	if style.Position == css.PositionRelative || style.Position == css.PositionAbsolute || style.Position == css.PositionFixed {
		childPos = positionedBox{bounds: n.Bounds}
	}

	switch style.Display {
	case css.DisplayFlex, css.DisplayInlineFlex:
		layoutFlexContainer(n, contentX, contentY, contentWidth, contentHeight, childPos)
	case css.DisplayGrid:
		layoutGridContainer(n, contentX, contentY, contentWidth, contentHeight, childPos)
	default:
		layoutBlockContainer(n, contentX, contentY, contentWidth, childPos)
	}
}

// layoutBlockContainer stacks block-level children vertically and packs
// runs of inline-level children (text + inline/inline-block elements) into
// wrapped line boxes between them.
func layoutBlockContainer(n *LayoutNode, contentX, contentY, contentWidth float64, pos positionedBox) {
	cursorY := contentY
	var inlineRun []*LayoutNode

	flush := func() {
		if len(inlineRun) == 0 {
			return
		}
		cursorY += layoutInlineRun(inlineRun, contentX, cursorY, contentWidth, pos)
		inlineRun = nil
	}

	for _, child := range n.Children {
		if child.Source.Type == dom.NodeDocument {
			continue
		}
		if child.Style.Display == css.DisplayNone {
			child.Bounds = Bounds{}
			continue
		}
		if child.Style.Position == css.PositionAbsolute || child.Style.Position == css.PositionFixed {
			continue // positioned out of flow; handled by layoutOutOfFlowChildren below
		}

		if child.Source.Type == dom.NodeText || child.Style.Display == css.DisplayInline || child.Style.Display == css.DisplayInlineBlock {
			inlineRun = append(inlineRun, child)
			continue
		}

		flush()
		cursorY += layoutBlockChild(child, contentX, cursorY, contentWidth, pos)
	}
	flush()

	n.Bounds.Height = resolveAutoHeight(n, cursorY-contentY)
	layoutOutOfFlowChildren(n, pos)
}

// resolveAutoHeight keeps an explicit height untouched; an auto height
// grows to fit the content that was just stacked.
func resolveAutoHeight(n *LayoutNode, contentHeight float64) float64 {
	if !n.Style.Height.IsAuto() {
		return n.Bounds.Height
	}
	total := contentHeight + n.Style.Padding.Top + n.Style.Padding.Bottom + n.Style.BorderWidth.Top + n.Style.BorderWidth.Bottom
	if total > n.Bounds.Height {
		return total
	}
	return n.Bounds.Height
}

// layoutBlockChild resolves one block-level child's box (margins, width,
// height) against the parent's content width, lays out its own subtree, and
// returns the vertical space it consumed including margins.
func layoutBlockChild(child *LayoutNode, contentX, y, containingWidth float64, pos positionedBox) float64 {
	style := child.Style
	var width float64
	if !style.Width.IsAuto() {
		width = style.Width.Resolve(containingWidth)
	} else {
		width = containingWidth - style.Margin.Left - style.Margin.Right
	}
	width = clampDimension(width, style.MinWidth, style.MaxWidth, containingWidth)

	height := 0.0
	if !style.Height.IsAuto() {
		height = style.Height.Resolve(0)
	}

	child.Bounds = Bounds{X: contentX + style.Margin.Left, Y: y + style.Margin.Top, Width: width, Height: height}
	layoutChildContent(child, pos)

	return style.Margin.Top + child.Bounds.Height + style.Margin.Bottom
}

func clampDimension(v float64, min, max css.Dimension, containing float64) float64 {
	if !min.IsAuto() {
		if m := min.Resolve(containing); v < m {
			v = m
		}
	}
	if !max.IsAuto() {
		if m := max.Resolve(containing); v > m {
			v = m
		}
	}
	if v < 0 {
		v = 0
	}
	return v
}

// layoutInlineRun packs a run of text/inline-level children into wrapped
// line boxes, returning the total vertical space consumed.
func layoutInlineRun(run []*LayoutNode, x, y, maxWidth float64, pos positionedBox) float64 {
	cursorX := 0.0
	lineY := y
	lineHeight := 0.0
	started := false

	advanceLine := func() {
		lineY += lineHeight
		cursorX = 0
		lineHeight = 0
		started = false
	}

	for _, item := range run {
		if item.Source.Type == dom.NodeText {
			fontSize := item.Style.FontSize
			lineHeightFactor := item.Style.LineHeight
			if lineHeightFactor == 0 {
				lineHeightFactor = 1.2
			}
			spaceWidth := charWidth(' ') * fontSize / 16.0
			for _, word := range fieldsPreserveNone(item.Source.Text) {
				ww := measureTextWidth(word, fontSize)
				if started && cursorX+spaceWidth+ww > maxWidth {
					advanceLine()
				}
				if started {
					cursorX += spaceWidth
				}
				cursorX += ww
				started = true
				h := fontSize * lineHeightFactor
				if h > lineHeight {
					lineHeight = h
				}
			}
			continue
		}

		w, h := sizeInlineElement(item, maxWidth-cursorX)
		if started && cursorX+w > maxWidth {
			advanceLine()
		}
		item.Bounds = Bounds{X: x + cursorX, Y: lineY, Width: w, Height: h}
		layoutChildContent(item, pos)
		cursorX += w
		started = true
		if h > lineHeight {
			lineHeight = h
		}
	}
	lineY += lineHeight
	return lineY - y
}

// sizeInlineElement resolves an inline/inline-block element's own box size
// before it's positioned within the line.
func sizeInlineElement(item *LayoutNode, available float64) (float64, float64) {
	style := item.Style
	width := available
	if !style.Width.IsAuto() {
		width = style.Width.Resolve(available)
	} else {
		width, _ = estimateContentSize(item, available, 1e6)
	}
	height := 0.0
	if !style.Height.IsAuto() {
		height = style.Height.Resolve(0)
	}
	return width, height
}

// estimateContentSize runs a real (mutating) layout pass against a
// candidate content box and reports the resulting size — used wherever an
// auto-sized box needs to know its own intrinsic size before a parent
// algorithm (flex, grid, inline flow) can place it. The final real layout
// pass simply overwrites these bounds once the true containing size is
// known, so the extra pass never leaves stale geometry behind.
func estimateContentSize(n *LayoutNode, maxWidth, maxHeight float64) (float64, float64) {
	style := n.Style
	width := maxWidth
	if !style.Width.IsAuto() {
		width = style.Width.Resolve(maxWidth)
	}
	height := 0.0
	if !style.Height.IsAuto() {
		height = style.Height.Resolve(maxHeight)
	}
	n.Bounds = Bounds{Width: width, Height: height}
	layoutChildContent(n, positionedBox{bounds: Bounds{Width: maxWidth, Height: maxHeight}})
	return n.Bounds.Width, n.Bounds.Height
}

// layoutOutOfFlowChildren positions absolute/fixed children of n against
// pos, the nearest positioned ancestor's bounds (or the viewport, for a
// fixed child whose ancestors are all static).
func layoutOutOfFlowChildren(n *LayoutNode, pos positionedBox) {
	for _, child := range n.Children {
		style := child.Style
		if style.Display == css.DisplayNone {
			continue
		}
		if style.Position != css.PositionAbsolute && style.Position != css.PositionFixed {
			continue
		}

		containing := pos.bounds
		width := containing.Width
		if !style.Width.IsAuto() {
			width = style.Width.Resolve(containing.Width)
		}
		height := 0.0
		if !style.Height.IsAuto() {
			height = style.Height.Resolve(containing.Height)
		}

		x := containing.X
		if !style.Left.IsAuto() {
			x = containing.X + style.Left.Resolve(containing.Width)
		} else if !style.Right.IsAuto() {
			x = containing.Right() - style.Right.Resolve(containing.Width) - width
		}
		y := containing.Y
		if !style.Top.IsAuto() {
			y = containing.Y + style.Top.Resolve(containing.Height)
		} else if !style.Bottom.IsAuto() {
			y = containing.Bottom() - style.Bottom.Resolve(containing.Height) - height
		}

		child.Bounds = Bounds{X: x, Y: y, Width: width, Height: height}
		layoutChildContent(child, positionedBox{bounds: child.Bounds})
	}
}
