// Package render generates visual artifacts from computed timeline
// layouts.
//
// The SVG sink is the primary rendering surface: it consumes layout
// coordinates and pre-wrapped text runs and draws the axis, markers, and
// text without re-deciding any layout. PNG and PDF outputs are produced
// by converting the SVG with rsvg-convert.
package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/amandersonyou/impact-timeline/pkg/config"
	"github.com/amandersonyou/impact-timeline/pkg/timeline"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/layout"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/state"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/timescale"
)

const (
	marginTop    = 60.0
	marginBottom = 60.0
	markerGutter = 24.0 // horizontal gap between axis and first text column
	dateOffset   = 4.0  // baseline nudge so text centers on its marker
)

// emphasisCSS drives the simple opacity transitions between emphasis
// levels; state changes swap a class, the transition does the rest.
const emphasisCSS = `
    .milestone { transition: opacity 0.3s ease; }
    .milestone.active { opacity: %.2f; }
    .milestone.past { opacity: %.2f; }
    .milestone.future { opacity: %.2f; }`

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cfg        config.RenderConfig
	st         state.TimelineState
	hasState   bool
	legend     bool
	yearLabels bool
}

// WithState applies an emphasis state: each milestone is tagged with its
// emphasis class and rendered at the matching opacity.
func WithState(st state.TimelineState) SVGOption {
	return func(r *svgRenderer) { r.st = st; r.hasState = true }
}

// WithLegend draws a category color legend above the axis.
func WithLegend() SVGOption {
	return func(r *svgRenderer) { r.legend = true }
}

// WithYearLabels draws the year number beside each axis segment.
func WithYearLabels() SVGOption {
	return func(r *svgRenderer) { r.yearLabels = true }
}

// RenderSVG draws the timeline as a standalone SVG document.
//
// The dataset, results, and scale must describe the same milestones in
// the same order; results are typically produced by layout.Engine with a
// measurer matching cfg's font metrics.
func RenderSVG(ds *timeline.Dataset, results []layout.Result, sc *timescale.Scale, cfg config.RenderConfig, opts ...SVGOption) []byte {
	r := svgRenderer{cfg: cfg, yearLabels: true}
	for _, opt := range opts {
		opt(&r)
	}

	width := cfg.ViewportWidth
	height := marginTop + sc.Height() + marginBottom
	axisX := width / 2

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>"+emphasisCSS+"\n  </style>\n",
		state.EmphasisActive.Opacity(), state.EmphasisPast.Opacity(), state.EmphasisFuture.Opacity())

	r.renderAxis(&buf, sc, axisX)
	if r.legend {
		r.renderLegend(&buf)
	}
	for i, res := range results {
		r.renderMilestone(&buf, ds.Milestones[i], res, axisX)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderAxis draws one vertical line per year segment, leaving the
// configured gap visible between segments.
func (r *svgRenderer) renderAxis(buf *bytes.Buffer, sc *timescale.Scale, axisX float64) {
	for _, seg := range sc.Segments() {
		start, err := sc.SegmentStart(seg.Year)
		if err != nil {
			continue
		}
		y1 := marginTop + start
		y2 := y1 + seg.Length
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#d0d0d0" stroke-width="2"/>`+"\n",
			axisX, y1, axisX, y2)
		if r.yearLabels {
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" fill="#999999" text-anchor="middle">%d</text>`+"\n",
				axisX, y1-6, r.cfg.FontSize*0.85, seg.Year)
		}
	}
}

// renderLegend draws a swatch-and-name row per enumerated category.
func (r *svgRenderer) renderLegend(buf *bytes.Buffer) {
	names := timeline.Categories()
	y := marginTop / 2
	x := markerGutter
	for _, name := range names {
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="10" height="10" fill="%s"/>`+"\n",
			x, y-9, timeline.CategoryColor(name))
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" fill="#666666">%s</text>`+"\n",
			x+14, y, r.cfg.FontSize*0.8, escapeXML(name))
		x += 14 + float64(len(name))*r.cfg.FontSize*r.cfg.CharWidth + 18
	}
}

func (r *svgRenderer) renderMilestone(buf *bytes.Buffer, m timeline.Milestone, res layout.Result, axisX float64) {
	color := timeline.CategoryColor(m.Category)
	y := marginTop + res.Y

	class := "milestone"
	if r.hasState {
		class += " " + r.st.EmphasisFor(res.Index).String()
	}
	fmt.Fprintf(buf, `  <g id="milestone-%d" class="%s">`+"\n", res.Index, class)

	// Marker: a circle for points, a capped bar covering the extent for
	// spans.
	if res.Span {
		endY := marginTop + res.EndY
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f" stroke-linecap="round"/>`+"\n",
			axisX, y, axisX, endY, color, r.cfg.SpanWidth)
	} else {
		fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			axisX, y, r.cfg.MarkerRadius, color)
	}

	textX := axisX + markerGutter
	anchor := "start"
	if res.Side == layout.SideLeft {
		textX = axisX - markerGutter
		anchor = "end"
	}

	lineSpacing := r.cfg.FontSize * 1.3
	r.renderTextLines(buf, res.TitleLines, textX, y+dateOffset, lineSpacing, anchor, "#222222", "bold")
	r.renderTextLines(buf, res.DescriptionLines, textX, y+dateOffset+res.DescriptionYOffset, lineSpacing, anchor, "#555555", "normal")

	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderTextLines(buf *bytes.Buffer, lines []string, x, y, spacing float64, anchor, fill, weight string) {
	for i, line := range lines {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="%.0f" font-weight="%s" fill="%s" text-anchor="%s">%s</text>`+"\n",
			x, y+float64(i)*spacing, r.cfg.FontSize, weight, fill, anchor, escapeXML(line))
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
