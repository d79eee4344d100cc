package layout

import "github.com/arturoeanton/gospatial/css"

// flexItem tracks one child through the flex algorithm; Go port of the
// staged grow/shrink/align pipeline, generalized from row-only assumptions
// to full main/cross axis handling driven by flexDirection.
type flexItem struct {
	node *LayoutNode

	flexBaseSize float64
	crossSize    float64

	flexGrow   float64
	flexShrink float64
	alignSelf  css.AlignSelf

	marginMainStart, marginMainEnd   float64
	marginCrossStart, marginCrossEnd float64

	finalMainSize, finalCrossSize float64
	mainPos, crossPos             float64
}

type flexLine struct {
	items     []*flexItem
	mainSize  float64
	crossSize float64
}

// layoutFlexContainer lays out node's children per CSS Flexible Box Layout
// Module Level 1, within the box content area described by contentWidth/
// contentHeight (padding/border already subtracted by the caller).
func layoutFlexContainer(node *LayoutNode, contentX, contentY, contentWidth, contentHeight float64, pos positionedBox) {
	style := node.Style
	isRow := style.FlexDirection == css.FlexRow || style.FlexDirection == css.FlexRowReverse
	isReverse := style.FlexDirection == css.FlexRowReverse || style.FlexDirection == css.FlexColumnReverse

	var mainSize, crossSize float64
	if isRow {
		mainSize, crossSize = contentWidth, contentHeight
	} else {
		mainSize, crossSize = contentHeight, contentWidth
	}

	var items []*flexItem
	for _, child := range node.Children {
		if child.Style.Display == css.DisplayNone || child.Style.Position == css.PositionAbsolute || child.Style.Position == css.PositionFixed {
			continue
		}
		items = append(items, newFlexItem(child, isRow, mainSize, crossSize))
	}
	if len(items) == 0 {
		layoutOutOfFlowChildren(node, pos)
		return
	}

	lines := collectFlexLines(items, mainSize, style.FlexWrap, style.Gap)
	for _, line := range lines {
		resolveFlexibleLengths(line, mainSize, style.Gap)
		alignMainAxis(line, mainSize, style.Gap, style.JustifyContent, isReverse)
	}
	determineCrossSizes(lines, style.AlignItems)
	alignCrossAxis(lines, crossSize, style.Gap, style.AlignContent, style.AlignItems)

	for _, line := range lines {
		for _, item := range line.items {
			var x, y, w, h float64
			if isRow {
				x, y, w, h = item.mainPos, item.crossPos, item.finalMainSize, item.finalCrossSize
			} else {
				x, y, w, h = item.crossPos, item.mainPos, item.finalCrossSize, item.finalMainSize
			}
			item.node.Bounds = Bounds{X: contentX + x, Y: contentY + y, Width: w, Height: h}
			layoutChildContent(item.node, pos)
		}
	}
	layoutOutOfFlowChildren(node, pos)
}

func newFlexItem(child *LayoutNode, isRow bool, mainSize, crossSize float64) *flexItem {
	s := child.Style
	item := &flexItem{
		node:       child,
		flexGrow:   s.FlexGrow,
		flexShrink: s.FlexShrink,
		alignSelf:  s.AlignSelf,
	}

	if isRow {
		item.marginMainStart, item.marginMainEnd = s.Margin.Left, s.Margin.Right
		item.marginCrossStart, item.marginCrossEnd = s.Margin.Top, s.Margin.Bottom
	} else {
		item.marginMainStart, item.marginMainEnd = s.Margin.Top, s.Margin.Bottom
		item.marginCrossStart, item.marginCrossEnd = s.Margin.Left, s.Margin.Right
	}

	var mainDim, crossDim css.Dimension
	if isRow {
		mainDim, crossDim = s.Width, s.Height
	} else {
		mainDim, crossDim = s.Height, s.Width
	}

	basis := s.FlexBasis
	switch {
	case !basis.IsAuto():
		item.flexBaseSize = basis.Resolve(mainSize)
	case !mainDim.IsAuto():
		item.flexBaseSize = mainDim.Resolve(mainSize)
	default:
		item.flexBaseSize = measureIntrinsicMain(child, isRow, mainSize)
	}

	if !crossDim.IsAuto() {
		item.crossSize = crossDim.Resolve(crossSize)
	} else {
		item.crossSize = measureIntrinsicCross(child, isRow, crossSize)
	}

	return item
}

// measureIntrinsicMain estimates an auto-sized item's flex-basis from its
// own content by running a throwaway layout pass against the container's
// available space.
func measureIntrinsicMain(child *LayoutNode, isRow bool, available float64) float64 {
	w, h := estimateContentSize(child, available, available)
	if isRow {
		return w
	}
	return h
}

func measureIntrinsicCross(child *LayoutNode, isRow bool, available float64) float64 {
	w, h := estimateContentSize(child, available, available)
	if isRow {
		return h
	}
	return w
}

func collectFlexLines(items []*flexItem, mainSize float64, wrap css.FlexWrap, gap float64) []*flexLine {
	if wrap == css.FlexNoWrap {
		line := &flexLine{items: items}
		return []*flexLine{line}
	}

	var lines []*flexLine
	var cur *flexLine
	used := 0.0
	for _, item := range items {
		size := item.flexBaseSize + item.marginMainStart + item.marginMainEnd
		extra := size
		if cur != nil && len(cur.items) > 0 {
			extra += gap
		}
		if cur != nil && len(cur.items) > 0 && used+extra > mainSize {
			lines = append(lines, cur)
			cur = &flexLine{}
			used = size
		} else {
			if cur == nil {
				cur = &flexLine{}
			}
			used += extra
		}
		cur.items = append(cur.items, item)
	}
	if cur != nil {
		lines = append(lines, cur)
	}
	return lines
}

func resolveFlexibleLengths(line *flexLine, availableMain, gap float64) {
	used := 0.0
	for _, item := range line.items {
		used += item.flexBaseSize + item.marginMainStart + item.marginMainEnd
	}
	if len(line.items) > 1 {
		used += gap * float64(len(line.items)-1)
	}
	free := availableMain - used

	switch {
	case free > 0:
		totalGrow := 0.0
		for _, item := range line.items {
			totalGrow += item.flexGrow
		}
		for _, item := range line.items {
			if totalGrow > 0 {
				item.finalMainSize = item.flexBaseSize + free*item.flexGrow/totalGrow
			} else {
				item.finalMainSize = item.flexBaseSize
			}
		}
	case free < 0:
		totalShrink := 0.0
		for _, item := range line.items {
			totalShrink += item.flexShrink * item.flexBaseSize
		}
		for _, item := range line.items {
			if totalShrink > 0 {
				ratio := (item.flexShrink * item.flexBaseSize) / totalShrink
				item.finalMainSize = item.flexBaseSize + free*ratio
				if item.finalMainSize < 0 {
					item.finalMainSize = 0
				}
			} else {
				item.finalMainSize = item.flexBaseSize
			}
		}
	default:
		for _, item := range line.items {
			item.finalMainSize = item.flexBaseSize
		}
	}
}

func alignMainAxis(line *flexLine, mainSize, gap float64, justify css.JustifyContent, reverse bool) {
	used := 0.0
	for _, item := range line.items {
		used += item.finalMainSize + item.marginMainStart + item.marginMainEnd
	}
	if len(line.items) > 1 {
		used += gap * float64(len(line.items)-1)
	}
	free := mainSize - used
	if free < 0 {
		free = 0
	}

	n := len(line.items)
	var start, spacing float64
	switch justify {
	case css.JustifyFlexEnd:
		start = free
	case css.JustifyCenter:
		start = free / 2
	case css.JustifySpaceBetween:
		if n > 1 {
			spacing = free / float64(n-1)
		}
	case css.JustifySpaceAround:
		spacing = free / float64(n)
		start = spacing / 2
	case css.JustifySpaceEvenly:
		spacing = free / float64(n+1)
		start = spacing
	}

	items := line.items
	if reverse {
		rev := make([]*flexItem, n)
		for i, it := range items {
			rev[n-1-i] = it
		}
		items = rev
	}

	pos := start
	for i, item := range items {
		item.mainPos = pos + item.marginMainStart
		pos += item.marginMainStart + item.finalMainSize + item.marginMainEnd
		if i < n-1 {
			pos += gap + spacing
		}
	}
}

func determineCrossSizes(lines []*flexLine, alignItems css.AlignItems) {
	for _, line := range lines {
		maxCross := 0.0
		for _, item := range line.items {
			c := item.crossSize + item.marginCrossStart + item.marginCrossEnd
			if c > maxCross {
				maxCross = c
			}
		}
		line.crossSize = maxCross
		for _, item := range line.items {
			align := item.alignSelf
			effective := alignItems
			if align != css.AlignSelfAuto {
				effective = fromAlignSelf(align)
			}
			if effective == css.AlignStretch {
				item.finalCrossSize = line.crossSize - item.marginCrossStart - item.marginCrossEnd
			} else {
				item.finalCrossSize = item.crossSize
			}
		}
	}
}

func fromAlignSelf(a css.AlignSelf) css.AlignItems {
	switch a {
	case css.AlignSelfFlexStart:
		return css.AlignFlexStart
	case css.AlignSelfFlexEnd:
		return css.AlignFlexEnd
	case css.AlignSelfCenter:
		return css.AlignCenter
	case css.AlignSelfBaseline:
		return css.AlignBaseline
	default:
		return css.AlignStretch
	}
}

func alignCrossAxis(lines []*flexLine, availableCross, gap float64, alignContent css.AlignContent, alignItems css.AlignItems) {
	total := 0.0
	for _, l := range lines {
		total += l.crossSize
	}
	if len(lines) > 1 {
		total += gap * float64(len(lines)-1)
	}
	free := availableCross - total
	if free < 0 {
		free = 0
	}

	var start, spacing float64
	n := len(lines)
	switch alignContent {
	case css.AlignContentFlexEnd:
		start = free
	case css.AlignContentCenter:
		start = free / 2
	case css.AlignContentSpaceBetween:
		if n > 1 {
			spacing = free / float64(n-1)
		}
	case css.AlignContentSpaceAround:
		spacing = free / float64(n)
		start = spacing / 2
	case css.AlignContentStretch:
		if n > 0 {
			extra := free / float64(n)
			for _, l := range lines {
				l.crossSize += extra
			}
		}
	}

	crossPos := start
	for _, line := range lines {
		lineStart := crossPos
		for _, item := range line.items {
			align := item.alignSelf
			effective := alignItems
			if align != css.AlignSelfAuto {
				effective = fromAlignSelf(align)
			}
			itemSize := item.finalCrossSize + item.marginCrossStart + item.marginCrossEnd
			switch effective {
			case css.AlignFlexEnd:
				item.crossPos = lineStart + line.crossSize - itemSize + item.marginCrossStart
			case css.AlignCenter:
				item.crossPos = lineStart + (line.crossSize-itemSize)/2 + item.marginCrossStart
			default:
				item.crossPos = lineStart + item.marginCrossStart
			}
		}
		crossPos += line.crossSize + gap + spacing
	}
}
