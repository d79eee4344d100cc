package layout

import "github.com/arturoeanton/gospatial/css"

// layoutGridContainer places node's children into a track grid. Track
// sizing resolves Px/Percent directly, distributes remaining space across
// Fr tracks, and treats Auto/MinContent/MaxContent as sharing whatever
// space is left in equal parts (only a tenth of it when Fr tracks are also
// present, the rest going to the Fr tracks) — a deliberate simplification of full CSS
// Grid intrinsic sizing, acceptable since this engine measures for element
// extraction, not pixel-perfect rendering.
func layoutGridContainer(node *LayoutNode, contentX, contentY, contentWidth, contentHeight float64, pos positionedBox) {
	style := node.Style

	colTracks := style.GridTemplateColumns
	rowTracks := style.GridTemplateRows
	if len(colTracks) == 0 {
		colTracks = []css.GridTrack{{Kind: css.GridTrackFr, Value: 1}}
	}

	colOffsets, colSizes := resolveTracks(colTracks, contentWidth, style.Gap)

	var flowChildren []*LayoutNode
	for _, c := range node.Children {
		if c.Style.Display != css.DisplayNone && c.Style.Position != css.PositionAbsolute && c.Style.Position != css.PositionFixed {
			flowChildren = append(flowChildren, c)
		}
	}

	if len(rowTracks) == 0 {
		rowsNeeded := autoRowCount(flowChildren, len(colTracks))
		rowTracks = make([]css.GridTrack, rowsNeeded)
		for i := range rowTracks {
			rowTracks[i] = css.GridTrack{Kind: css.GridTrackAuto}
		}
	}
	rowOffsets, rowSizes := resolveTracks(rowTracks, contentHeight, style.Gap)

	nextCol, nextRow := 0, 0
	for _, child := range flowChildren {
		colStart, colEnd := placementRange(child.Style.GridColumn, len(colTracks), &nextCol, 1)
		rowStart, rowEnd := placementRange(child.Style.GridRow, len(rowTracks), &nextRow, 1)

		x := contentX + trackPos(colOffsets, colStart)
		y := contentY + trackPos(rowOffsets, rowStart)
		w := trackSpan(colOffsets, colSizes, colStart, colEnd)
		h := trackSpan(rowOffsets, rowSizes, rowStart, rowEnd)

		child.Bounds = Bounds{X: x, Y: y, Width: w, Height: h}
		layoutChildContent(child, pos)

		nextCol = colEnd
		if nextCol >= len(colTracks) {
			nextCol = 0
			nextRow++
		}
	}
	layoutOutOfFlowChildren(node, pos)
}

func autoRowCount(children []*LayoutNode, cols int) int {
	if cols <= 0 {
		cols = 1
	}
	n := (len(children) + cols - 1) / cols
	if n < 1 {
		n = 1
	}
	return n
}

// placementRange resolves a 0-indexed [start, end) track range from a
// 1-indexed GridPlacement, falling back to auto-placement via *cursor.
func placementRange(p *css.GridPlacement, trackCount int, cursor *int, span int) (int, int) {
	if p != nil {
		start := int(p.Start) - 1
		end := int(p.End) - 1
		if start < 0 {
			start = 0
		}
		if end <= start {
			end = start + 1
		}
		if end > trackCount {
			end = trackCount
		}
		return start, end
	}
	start := *cursor
	end := start + span
	if end > trackCount {
		end = trackCount
	}
	if end <= start {
		end = start + 1
	}
	return start, end
}

func trackPos(offsets []float64, idx int) float64 {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(offsets) {
		if len(offsets) == 0 {
			return 0
		}
		return offsets[len(offsets)-1]
	}
	return offsets[idx]
}

func trackSpan(offsets, sizes []float64, start, end int) float64 {
	if start < 0 {
		start = 0
	}
	if end > len(sizes) {
		end = len(sizes)
	}
	total := 0.0
	for i := start; i < end && i < len(sizes); i++ {
		total += sizes[i]
	}
	return total
}

// resolveTracks returns each track's start offset and resolved size.
func resolveTracks(tracks []css.GridTrack, available, gap float64) (offsets, sizes []float64) {
	n := len(tracks)
	sizes = make([]float64, n)
	fixedTotal := 0.0
	totalFr := 0.0
	flexCount := 0

	for i, t := range tracks {
		switch t.Kind {
		case css.GridTrackPx:
			sizes[i] = t.Value
			fixedTotal += t.Value
		case css.GridTrackPercent:
			sizes[i] = t.Value * available
			fixedTotal += sizes[i]
		case css.GridTrackFr:
			totalFr += t.Value
		default: // Auto, MinContent, MaxContent
			flexCount++
		}
	}

	if n > 1 {
		fixedTotal += gap * float64(n-1)
	}
	remaining := available - fixedTotal
	if remaining < 0 {
		remaining = 0
	}

	autoShare := 0.0
	if flexCount > 0 && totalFr == 0 {
		autoShare = remaining / float64(flexCount)
	} else if flexCount > 0 {
		// Both fr and auto tracks present: give auto tracks a nominal
		// share before distributing the rest to fr tracks.
		autoShare = remaining * 0.1 / float64(flexCount)
		remaining -= autoShare * float64(flexCount)
	}

	for i, t := range tracks {
		switch t.Kind {
		case css.GridTrackFr:
			if totalFr > 0 {
				sizes[i] = remaining * t.Value / totalFr
			}
		case css.GridTrackAuto, css.GridTrackMinContent, css.GridTrackMaxContent:
			sizes[i] = autoShare
		}
	}

	offsets = make([]float64, n)
	pos := 0.0
	for i := range tracks {
		offsets[i] = pos
		pos += sizes[i] + gap
	}
	return offsets, sizes
}
