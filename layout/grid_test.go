package layout

import (
	"testing"

	"github.com/arturoeanton/gospatial/css"
	"github.com/arturoeanton/gospatial/dom"
)

func TestComputeLayoutGridSplitsEqualFrTracks(t *testing.T) {
	root := dom.NewDocument()
	container := dom.NewElement("div")
	a := dom.NewElement("div")
	b := dom.NewElement("div")
	container.AppendChild(a)
	container.AppendChild(b)
	root.AppendChild(container)

	styles := map[*dom.Node]css.LayoutStyle{
		container: {
			Display: css.DisplayGrid,
			Width:   css.Px(400),
			Height:  css.Px(100),
			GridTemplateColumns: []css.GridTrack{
				{Kind: css.GridTrackFr, Value: 1},
				{Kind: css.GridTrackFr, Value: 1},
			},
		},
		a: {Display: css.DisplayBlock},
		b: {Display: css.DisplayBlock},
	}

	tree := ComputeLayout(root, styles, 800, 600)
	containerNode := tree.Children[0]
	first, second := containerNode.Children[0], containerNode.Children[1]

	if first.Bounds.Width != 200 {
		t.Errorf("first column width = %v, want 200", first.Bounds.Width)
	}
	if second.Bounds.X != 200 {
		t.Errorf("second column X = %v, want 200", second.Bounds.X)
	}
}

func TestComputeLayoutGridAutoPlacesByRow(t *testing.T) {
	root := dom.NewDocument()
	container := dom.NewElement("div")
	a := dom.NewElement("div")
	b := dom.NewElement("div")
	c := dom.NewElement("div")
	container.AppendChild(a)
	container.AppendChild(b)
	container.AppendChild(c)
	root.AppendChild(container)

	styles := map[*dom.Node]css.LayoutStyle{
		container: {
			Display: css.DisplayGrid,
			Width:   css.Px(300),
			Height:  css.Px(200),
			GridTemplateColumns: []css.GridTrack{
				{Kind: css.GridTrackFr, Value: 1},
				{Kind: css.GridTrackFr, Value: 1},
			},
		},
		a: {Display: css.DisplayBlock},
		b: {Display: css.DisplayBlock},
		c: {Display: css.DisplayBlock},
	}

	tree := ComputeLayout(root, styles, 800, 600)
	containerNode := tree.Children[0]
	third := containerNode.Children[2]

	if third.Bounds.Y <= containerNode.Children[0].Bounds.Y {
		t.Errorf("third item (overflowing to a new row) should sit below the first row, got Y=%v", third.Bounds.Y)
	}
}
