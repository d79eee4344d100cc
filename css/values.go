// Package css implements Component B of the pipeline: parsing stylesheets
// and inline styles, resolving selectors with specificity, evaluating
// @media, expanding shorthands, and resolving calc()/var()/em/rem/percent
// into a per-element LayoutStyle.
package css

// Display enumerates the display values that affect layout.
type Display int

const (
	DisplayBlock Display = iota
	DisplayInline
	DisplayInlineBlock
	DisplayFlex
	DisplayInlineFlex
	DisplayGrid
	DisplayNone
)

// Visibility enumerates the visibility values that affect emission.
type Visibility int

const (
	VisibilityVisible Visibility = iota
	VisibilityHidden
)

// Position enumerates CSS positioning schemes.
type Position int

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
)

// BoxSizing controls whether width/height include padding and border.
type BoxSizing int

const (
	BoxSizingContentBox BoxSizing = iota
	BoxSizingBorderBox
)

// FlexDirection enumerates flex-direction values.
type FlexDirection int

const (
	FlexRow FlexDirection = iota
	FlexRowReverse
	FlexColumn
	FlexColumnReverse
)

// FlexWrap enumerates flex-wrap values.
type FlexWrap int

const (
	FlexNoWrap FlexWrap = iota
	FlexWrapOn
	FlexWrapReverse
)

// AlignItems enumerates align-items / align-self values (Auto maps to the
// container's align-items for align-self).
type AlignItems int

const (
	AlignStretch AlignItems = iota
	AlignFlexStart
	AlignFlexEnd
	AlignCenter
	AlignBaseline
)

// AlignSelf mirrors AlignItems plus an Auto sentinel.
type AlignSelf int

const (
	AlignSelfAuto AlignSelf = iota
	AlignSelfStretch
	AlignSelfFlexStart
	AlignSelfFlexEnd
	AlignSelfCenter
	AlignSelfBaseline
)

// JustifyContent enumerates justify-content values.
type JustifyContent int

const (
	JustifyFlexStart JustifyContent = iota
	JustifyFlexEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// AlignContent enumerates align-content values (multi-line flex/grid).
type AlignContent int

const (
	AlignContentStretch AlignContent = iota
	AlignContentFlexStart
	AlignContentFlexEnd
	AlignContentCenter
	AlignContentSpaceBetween
	AlignContentSpaceAround
)

// Overflow enumerates overflow values.
type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

// DimensionKind discriminates the Dimension variants.
type DimensionKind int

const (
	DimAuto DimensionKind = iota
	DimPx
	DimPercent
	DimCalc
)

// Dimension is a resolved CSS length: auto, a fixed pixel value, a
// percentage (stored in 0..1), or a calc() expression carrying separate
// percent and pixel accumulators so percent resolution can occur against
// the containing block's width.
type Dimension struct {
	Kind    DimensionKind
	Px      float64 // DimPx, or the px accumulator for DimCalc
	Percent float64 // DimPercent (0..1), or the pct accumulator for DimCalc
}

// Auto is the auto dimension.
func Auto() Dimension { return Dimension{Kind: DimAuto} }

// Px constructs a fixed pixel dimension.
func Px(v float64) Dimension { return Dimension{Kind: DimPx, Px: v} }

// Percent constructs a percentage dimension (pct is 0..1).
func Percent(pct float64) Dimension { return Dimension{Kind: DimPercent, Percent: pct} }

// Calc constructs a calc() dimension from its percent and pixel accumulators.
func Calc(pct, px float64) Dimension {
	if pct == 0 {
		return Px(px)
	}
	if px == 0 {
		return Percent(pct)
	}
	return Dimension{Kind: DimCalc, Px: px, Percent: pct}
}

// IsAuto reports whether d is the auto keyword.
func (d Dimension) IsAuto() bool { return d.Kind == DimAuto }

// Resolve computes the pixel value of d against a containing-block size.
func (d Dimension) Resolve(containing float64) float64 {
	switch d.Kind {
	case DimPx:
		return d.Px
	case DimPercent:
		return d.Percent * containing
	case DimCalc:
		return d.Percent*containing + d.Px
	default:
		return 0
	}
}

// Edges is a box-model edge quad in pixels (top/right/bottom/left). Values
// are not clamped: a negative length in the source (e.g. a negative margin)
// is stored as a negative value.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// GridTrackKind discriminates GridTrack variants.
type GridTrackKind int

const (
	GridTrackAuto GridTrackKind = iota
	GridTrackPx
	GridTrackPercent
	GridTrackFr
	GridTrackMinContent
	GridTrackMaxContent
)

// GridTrack is one entry of grid-template-columns/rows.
type GridTrack struct {
	Kind  GridTrackKind
	Value float64 // px, 0..1 fraction-of-percent, or fr count
}

// GridPlacement is a resolved grid-column/grid-row (1-indexed lines).
type GridPlacement struct {
	Start, End int16
}

// LayoutStyle is the flat record of every property that affects
// bounding-box computation. It always has fully resolved enums — no raw
// strings survive past the cascade.
type LayoutStyle struct {
	Display    Display
	Visibility Visibility

	Width, Height       Dimension
	MinWidth, MinHeight Dimension
	MaxWidth, MaxHeight Dimension
	Margin, Padding     Edges
	BorderWidth         Edges
	BoxSizing           BoxSizing

	Position                Position
	Top, Right, Bottom, Left Dimension

	FlexDirection  FlexDirection
	FlexWrap       FlexWrap
	FlexGrow       float64
	FlexShrink     float64
	FlexBasis      Dimension
	AlignItems     AlignItems
	AlignSelf      AlignSelf
	AlignContent   AlignContent
	JustifyContent JustifyContent
	Gap            float64

	GridTemplateColumns []GridTrack
	GridTemplateRows    []GridTrack
	GridColumn          *GridPlacement
	GridRow             *GridPlacement

	FontSize   float64
	LineHeight float64

	Overflow Overflow
}
