// Package layout composes the timescale mapper and the text wrapper into
// per-milestone layout results.
//
// The engine is thin glue: it asks the scale for a y-coordinate, decides
// the axis side by index parity, and wraps title and description into a
// bounded column whose width follows the viewport. All functions are
// deterministic; laying out the same dataset at the same viewport width
// twice yields identical results.
package layout

import (
	"github.com/amandersonyou/impact-timeline/pkg/timeline"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/textwrap"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/timescale"
)

// Options tune the layout geometry. Zero values select the defaults.
type Options struct {
	// LineSpacing is the vertical distance between wrapped text lines.
	LineSpacing float64

	// DescriptionGap is the fixed extra gap between a title block and
	// its description.
	DescriptionGap float64

	// MinWrapWidth and MaxWrapWidth clamp the text column width derived
	// from the viewport.
	MinWrapWidth float64
	MaxWrapWidth float64

	// AxisMargin is the horizontal space consumed by the axis and the
	// marker-to-text gutter, excluded from the per-side column width.
	AxisMargin float64
}

// Defaults match the reference visual design.
const (
	DefaultLineSpacing    = 18.0
	DefaultDescriptionGap = 8.0
	DefaultMinWrapWidth   = 280.0
	DefaultMaxWrapWidth   = 450.0
	DefaultAxisMargin     = 80.0
)

func (o Options) withDefaults() Options {
	if o.LineSpacing == 0 {
		o.LineSpacing = DefaultLineSpacing
	}
	if o.DescriptionGap == 0 {
		o.DescriptionGap = DefaultDescriptionGap
	}
	if o.MinWrapWidth == 0 {
		o.MinWrapWidth = DefaultMinWrapWidth
	}
	if o.MaxWrapWidth == 0 {
		o.MaxWrapWidth = DefaultMaxWrapWidth
	}
	if o.AxisMargin == 0 {
		o.AxisMargin = DefaultAxisMargin
	}
	return o
}

// Engine lays out milestones against a timescale using an injected text
// measurer. It is immutable and safe for concurrent use.
type Engine struct {
	scale   *timescale.Scale
	measure textwrap.Measurer
	opts    Options
}

// NewEngine builds a layout engine. The measurer is the rendering
// surface's width capability (font metric, cell count, or estimate).
func NewEngine(scale *timescale.Scale, measure textwrap.Measurer, opts Options) *Engine {
	return &Engine{scale: scale, measure: measure, opts: opts.withDefaults()}
}

// Scale returns the engine's timescale.
func (e *Engine) Scale() *timescale.Scale { return e.scale }

// LineSpacing returns the configured vertical line spacing.
func (e *Engine) LineSpacing() float64 { return e.opts.LineSpacing }

// WrapWidth derives the text column width from the available viewport
// width: half the space left of the axis margin, clamped to the
// configured floor and ceiling.
func (e *Engine) WrapWidth(viewportWidth float64) float64 {
	w := (viewportWidth - e.opts.AxisMargin) / 2
	if w < e.opts.MinWrapWidth {
		return e.opts.MinWrapWidth
	}
	if w > e.opts.MaxWrapWidth {
		return e.opts.MaxWrapWidth
	}
	return w
}

// Layout computes results for every milestone in the dataset at the
// given viewport width. Dataset order defines the alternation index.
func (e *Engine) Layout(ds *timeline.Dataset, viewportWidth float64) ([]Result, error) {
	wrapWidth := e.WrapWidth(viewportWidth)
	results := make([]Result, len(ds.Milestones))
	for i, m := range ds.Milestones {
		r, err := e.layoutOne(i, m, wrapWidth)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

// Reflow recomputes layout for a new viewport width and reports which
// milestone indices changed relative to prev. Positions on the axis do
// not depend on viewport width, so an unchanged wrap width yields prev
// untouched with no changes.
func (e *Engine) Reflow(prev []Result, ds *timeline.Dataset, viewportWidth float64) ([]Result, []int, error) {
	if len(prev) == len(ds.Milestones) && len(prev) > 0 && prev[0].WrapWidth == e.WrapWidth(viewportWidth) {
		return prev, nil, nil
	}

	next, err := e.Layout(ds, viewportWidth)
	if err != nil {
		return nil, nil, err
	}

	var changed []int
	for i := range next {
		if i >= len(prev) || !next[i].equal(prev[i]) {
			changed = append(changed, i)
		}
	}
	return next, changed, nil
}

func (e *Engine) layoutOne(index int, m timeline.Milestone, wrapWidth float64) (Result, error) {
	r := Result{
		Index:     index,
		Side:      SideFor(index),
		WrapWidth: wrapWidth,
	}

	var err error
	if m.IsSpan() {
		r.Span = true
		r.Y, r.EndY, err = e.scale.Span(m.Date, m.EndDate)
	} else {
		r.Y, err = e.scale.Position(m.Date)
	}
	if err != nil {
		return Result{}, err
	}

	r.TitleLines = textwrap.Wrap(m.Title, wrapWidth, e.measure)
	r.DescriptionLines = textwrap.Wrap(m.Description, wrapWidth, e.measure)

	// The description hangs below the title's last line: half a line of
	// breathing room plus the fixed gap keeps multi-line titles clear.
	titleLines := len(r.TitleLines)
	if titleLines == 0 {
		titleLines = 1
	}
	r.DescriptionYOffset = float64(titleLines-1)*e.opts.LineSpacing +
		e.opts.LineSpacing/2 + e.opts.DescriptionGap

	return r, nil
}
