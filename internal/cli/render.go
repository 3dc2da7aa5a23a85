package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amandersonyou/impact-timeline/pkg/cache"
	"github.com/amandersonyou/impact-timeline/pkg/config"
	"github.com/amandersonyou/impact-timeline/pkg/render"
	"github.com/amandersonyou/impact-timeline/pkg/timeline"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/layout"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/state"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/textwrap"
)

const defaultPNGScale = 2.0 // 2x resolution for crisp raster output

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "svg", "pdf", "png"
	configPath string   // TOML config file path
	width      float64  // viewport width override in pixels
	legend     bool     // draw the category legend
	active     int      // initially emphasized milestone index (-1 for none)
	strict     bool     // fail on malformed dataset rows
	noCache    bool     // bypass the artifact cache
}

// renderCommand creates the render command for generating timeline
// artifacts from a dataset file.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{active: state.None}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a milestone dataset to SVG, PDF, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "viewport width in pixels (overrides config)")
	cmd.Flags().BoolVar(&opts.legend, "legend", false, "draw the category color legend")
	cmd.Flags().IntVar(&opts.active, "active", state.None, "milestone index to emphasize")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on malformed dataset rows")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "pdf": true, "png": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file
// paths, stripping a known format extension when present.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// timelineRun bundles everything the render and view commands derive
// from a dataset file plus configuration.
type timelineRun struct {
	cfg         config.Config
	dataset     *timeline.Dataset
	engine      *layout.Engine
	results     []layout.Result
	datasetHash string
	configHash  string
}

// buildTimeline loads the dataset and configuration and computes the
// full layout at the effective viewport width.
func (c *CLI) buildTimeline(path, configPath string, width float64, strict bool) (*timelineRun, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if width > 0 {
		cfg.Render.ViewportWidth = width
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ds, err := timeline.LoadFile(path, timeline.LoadOptions{
		Strict: strict,
		Logger: c.Logger.Warnf,
	})
	if err != nil {
		return nil, err
	}

	scale, err := cfg.Axis.Scale()
	if err != nil {
		return nil, err
	}

	// Milestones outside the configured axis window cannot be positioned.
	// Lenient loads drop them with a warning; strict loads fail.
	var kept []timeline.Milestone
	for i, m := range ds.Milestones {
		perr := func() error {
			if m.IsSpan() {
				_, _, err := scale.Span(m.Date, m.EndDate)
				return err
			}
			_, err := scale.Position(m.Date)
			return err
		}()
		if perr != nil {
			if strict {
				return nil, perr
			}
			c.Logger.Warnf("skipping milestone %d (%s): outside axis window %d-%d",
				i, m.Date.Format("2006-01-02"), scale.FirstYear(), scale.LastYear())
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) != len(ds.Milestones) {
		if ds, err = timeline.NewDataset(kept); err != nil {
			return nil, err
		}
	}

	measure := textwrap.CharWidth(cfg.Render.FontSize * cfg.Render.CharWidth)
	engine := layout.NewEngine(scale, measure, cfg.Layout.Options())

	results, err := engine.Layout(ds, cfg.Render.ViewportWidth)
	if err != nil {
		return nil, err
	}

	return &timelineRun{
		cfg:         cfg,
		dataset:     ds,
		engine:      engine,
		results:     results,
		datasetHash: cache.Hash(raw),
		configHash:  cache.Hash([]byte(fmt.Sprintf("%+v", cfg))),
	}, nil
}

// runRender loads the dataset, computes the layout, and writes one
// artifact per requested format, consulting the cache first.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	run, err := c.buildTimeline(input, opts.configPath, opts.width, opts.strict)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d milestones (%d-%d)", run.dataset.Len(),
		run.engine.Scale().FirstYear(), run.engine.Scale().LastYear())

	store, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	st := state.New(run.dataset.Len(), opts.active)
	base := basePath(opts.output, input)

	for _, format := range opts.formats {
		if err := c.renderArtifact(ctx, run, st, store, format, base, opts); err != nil {
			return err
		}
	}

	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.formats)))
	return nil
}

// renderArtifact produces one format, consulting the cache before
// rendering and converting.
func (c *CLI) renderArtifact(ctx context.Context, run *timelineRun, st state.TimelineState, store cache.Cache, format, base string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	key := cache.ArtifactKey(run.datasetHash, run.configHash, cache.ArtifactKeyOpts{
		Format:        format,
		ViewportWidth: run.cfg.Render.ViewportWidth,
		ShowLegend:    opts.legend,
		ActiveIndex:   opts.active,
	})

	data, hit, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if hit {
		logger.Debugf("Cache hit for %s artifact", format)
	} else {
		data, err = c.produceArtifact(ctx, run, st, format, opts)
		if err != nil {
			return err
		}
		if err := store.Put(ctx, key, data); err != nil {
			logger.Warnf("Cache store failed: %v", err)
		}
	}

	path := base + "." + format
	if len(opts.formats) == 1 && opts.output != "" && filepath.Ext(opts.output) != "" {
		path = opts.output
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	printFile(path)
	return nil
}

// produceArtifact renders the SVG and converts it when a raster or
// document format was requested. Conversion shells out, so it gets a
// spinner on the terminal.
func (c *CLI) produceArtifact(ctx context.Context, run *timelineRun, st state.TimelineState, format string, opts *renderOpts) ([]byte, error) {
	svgOpts := []render.SVGOption{render.WithState(st)}
	if opts.legend {
		svgOpts = append(svgOpts, render.WithLegend())
	}

	svg := render.RenderSVG(run.dataset, run.results, run.engine.Scale(), run.cfg.Render, svgOpts...)

	switch format {
	case "svg":
		return svg, nil
	case "pdf":
		sp := newSpinner(ctx, "Converting to PDF")
		sp.Start()
		defer sp.Stop()
		return render.ToPDF(svg)
	case "png":
		sp := newSpinner(ctx, "Converting to PNG")
		sp.Start()
		defer sp.Stop()
		return render.ToPNG(svg, defaultPNGScale)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
