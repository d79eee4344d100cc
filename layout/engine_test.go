package layout

import (
	"testing"

	"github.com/arturoeanton/gospatial/css"
	"github.com/arturoeanton/gospatial/dom"
)

func TestComputeLayoutStacksBlockChildren(t *testing.T) {
	root := dom.NewDocument()
	a := dom.NewElement("div")
	b := dom.NewElement("div")
	root.AppendChild(a)
	root.AppendChild(b)

	styles := map[*dom.Node]css.LayoutStyle{
		a: {Display: css.DisplayBlock, Width: css.Percent(100), Height: css.Px(50)},
		b: {Display: css.DisplayBlock, Width: css.Percent(100), Height: css.Px(30)},
	}

	tree := ComputeLayout(root, styles, 800, 600)
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(tree.Children))
	}

	first, second := tree.Children[0], tree.Children[1]
	if first.Bounds.Y != 0 {
		t.Errorf("first child Y = %v, want 0", first.Bounds.Y)
	}
	if second.Bounds.Y != first.Bounds.Height {
		t.Errorf("second child Y = %v, want %v (stacked below first)", second.Bounds.Y, first.Bounds.Height)
	}
}

func TestComputeLayoutAbsolutePositioning(t *testing.T) {
	root := dom.NewDocument()
	container := dom.NewElement("div")
	positioned := dom.NewElement("div")
	container.AppendChild(positioned)
	root.AppendChild(container)

	styles := map[*dom.Node]css.LayoutStyle{
		container:  {Display: css.DisplayBlock, Width: css.Percent(100), Height: css.Px(400), Position: css.PositionRelative},
		positioned: {Display: css.DisplayBlock, Width: css.Px(50), Height: css.Px(20), Position: css.PositionAbsolute, Top: css.Px(10), Left: css.Px(20)},
	}

	tree := ComputeLayout(root, styles, 800, 600)
	containerNode := tree.Children[0]
	child := containerNode.Children[0]

	if child.Bounds.X != containerNode.Bounds.X+20 {
		t.Errorf("absolute child X = %v, want %v", child.Bounds.X, containerNode.Bounds.X+20)
	}
	if child.Bounds.Y != containerNode.Bounds.Y+10 {
		t.Errorf("absolute child Y = %v, want %v", child.Bounds.Y, containerNode.Bounds.Y+10)
	}
}

func TestComputeLayoutAutoHeightGrowsToContent(t *testing.T) {
	root := dom.NewDocument()
	container := dom.NewElement("div")
	inner := dom.NewElement("div")
	container.AppendChild(inner)
	root.AppendChild(container)

	styles := map[*dom.Node]css.LayoutStyle{
		container: {Display: css.DisplayBlock, Width: css.Percent(100), Height: css.Auto()},
		inner:     {Display: css.DisplayBlock, Width: css.Percent(100), Height: css.Px(75)},
	}

	tree := ComputeLayout(root, styles, 800, 600)
	containerNode := tree.Children[0]
	if containerNode.Bounds.Height != 75 {
		t.Errorf("auto height = %v, want 75 (grown to fit content)", containerNode.Bounds.Height)
	}
}
