package layout

import (
	"testing"

	"github.com/arturoeanton/gospatial/css"
	"github.com/arturoeanton/gospatial/dom"
)

func TestComputeLayoutFlexGrowDistributesRemainingSpace(t *testing.T) {
	root := dom.NewDocument()
	container := dom.NewElement("div")
	a := dom.NewElement("div")
	b := dom.NewElement("div")
	container.AppendChild(a)
	container.AppendChild(b)
	root.AppendChild(container)

	styles := map[*dom.Node]css.LayoutStyle{
		container: {
			Display:       css.DisplayFlex,
			FlexDirection: css.FlexRow,
			Width:         css.Px(300),
			Height:        css.Px(100),
		},
		a: {Display: css.DisplayBlock, Width: css.Px(50), Height: css.Px(50), FlexGrow: 1},
		b: {Display: css.DisplayBlock, Width: css.Px(50), Height: css.Px(50), FlexGrow: 3},
	}

	tree := ComputeLayout(root, styles, 800, 600)
	containerNode := tree.Children[0]
	first, second := containerNode.Children[0], containerNode.Children[1]

	// Free space = 300 - 100 = 200, split 1:3 -> +50 and +150.
	if first.Bounds.Width != 100 {
		t.Errorf("first child width = %v, want 100", first.Bounds.Width)
	}
	if second.Bounds.Width != 200 {
		t.Errorf("second child width = %v, want 200", second.Bounds.Width)
	}
	if second.Bounds.X != first.Bounds.X+first.Bounds.Width {
		t.Errorf("second child should start right after first, got X=%v", second.Bounds.X)
	}
}

func TestComputeLayoutFlexJustifyCenter(t *testing.T) {
	root := dom.NewDocument()
	container := dom.NewElement("div")
	a := dom.NewElement("div")
	container.AppendChild(a)
	root.AppendChild(container)

	styles := map[*dom.Node]css.LayoutStyle{
		container: {
			Display:        css.DisplayFlex,
			FlexDirection:  css.FlexRow,
			JustifyContent: css.JustifyCenter,
			Width:          css.Px(200),
			Height:         css.Px(50),
		},
		a: {Display: css.DisplayBlock, Width: css.Px(100), Height: css.Px(50)},
	}

	tree := ComputeLayout(root, styles, 800, 600)
	item := tree.Children[0].Children[0]
	if item.Bounds.X != tree.Children[0].Bounds.X+50 {
		t.Errorf("centered item X = %v, want container X + 50", item.Bounds.X)
	}
}
