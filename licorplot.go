// Package licorplot aggregates Li-COR gas-exchange spreadsheet exports by
// genotype and observation index and renders a summary chart.
//
// The package exposes a single entry point, Plot. File discovery, per-file
// transformation, aggregation, and rendering run synchronously inside it;
// nothing is cached across calls and no files are written.
package licorplot

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/plot"

	"licorplot/internal/chart"
	"licorplot/internal/gasx"
	"licorplot/internal/licor"
	"licorplot/pkg/domain"
)

// Options configures one Plot call. Zero values take the documented
// defaults; Identifier is the only required field.
type Options struct {
	// Identifier holds the group keywords. Each keyword selects the files
	// whose name contains it and becomes the group label of their rows.
	// Its order fixes legend and color order.
	Identifier []string `validate:"required,min=1,dive,required"`

	// Type selects the y metric. Default gsw.
	Type domain.Metric `validate:"required,oneof=gsw relgsw A WUE"`

	// AreaCorrection rescales absolute conductance and assimilation after
	// accumulation. Default 1 (no correction).
	AreaCorrection float64 `validate:"gt=0"`

	// Timestamps draws a vertical dotted reference line per value.
	Timestamps []float64

	// Observations crops each file to a window of ordinal row positions
	// before any downstream computation.
	Observations *domain.ObsRange

	// YAxisLimits overrides the y-axis bounds. Ignored for relgsw, which
	// always uses the fixed percent scale.
	YAxisLimits *domain.YLimits

	// ErrorBars selects the spread statistic. Default se.
	ErrorBars domain.ErrorKind `validate:"required,oneof=se sd"`

	// LegendTitle defaults to "Genotype".
	LegendTitle string

	// LegendLabels defaults to Identifier and must match its length.
	LegendLabels []string

	// RemoveOutliers enables the per-file boxplot filter on WUE.
	RemoveOutliers bool

	// Colours names the categorical palette. Default "Isfahan1".
	Colours string

	// Dir is the directory searched for exports. Default ".".
	Dir string

	// Logger receives progress and diagnostics; slog.Default() when nil.
	Logger *slog.Logger `validate:"-"`
}

var validate = validator.New()

func (o *Options) setDefaults() {
	if o.Type == "" {
		o.Type = domain.MetricGsw
	}
	if o.AreaCorrection == 0 {
		o.AreaCorrection = 1
	}
	if o.ErrorBars == "" {
		o.ErrorBars = domain.ErrorSE
	}
	if o.LegendTitle == "" {
		o.LegendTitle = "Genotype"
	}
	if len(o.LegendLabels) == 0 {
		o.LegendLabels = o.Identifier
	}
	if o.Colours == "" {
		o.Colours = chart.DefaultPalette
	}
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

func (o *Options) validateAll() error {
	if err := validate.Struct(o); err != nil {
		return err
	}
	if len(o.LegendLabels) != len(o.Identifier) {
		return fmt.Errorf("legend labels: got %d labels for %d identifiers",
			len(o.LegendLabels), len(o.Identifier))
	}
	if l := o.YAxisLimits; l != nil && l.Max <= l.Min {
		return fmt.Errorf("y-axis limits: max %v not above min %v", l.Max, l.Min)
	}
	if _, err := chart.Palette(o.Colours); err != nil {
		return err
	}
	return nil
}

// Plot runs the whole pipeline: discover files per keyword, transform each
// file, accumulate, apply the area correction, aggregate by
// (observation, group), and render the requested chart.
//
// A keyword matching no files contributes no rows and is not an error; an
// unreadable workbook or one missing a required column aborts the call.
// Invalid option values fail here with a validation error instead of
// silently producing no output.
func Plot(opts Options) (*plot.Plot, error) {
	opts.setDefaults()
	if err := opts.validateAll(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	var tables [][]domain.Record
	for _, keyword := range opts.Identifier {
		files, err := licor.Discover(opts.Dir, keyword)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			logger.Warn("no files matched keyword",
				slog.String("keyword", keyword),
				slog.String("dir", opts.Dir))
			continue
		}
		logger.Debug("discovered exports",
			slog.String("keyword", keyword),
			slog.Int("files", len(files)))

		for _, path := range files {
			raw, err := licor.ReadFile(path, logger)
			if err != nil {
				return nil, err
			}
			tables = append(tables, gasx.TransformFile(
				raw, filepath.Base(path), keyword,
				opts.Observations, opts.RemoveOutliers))
		}
	}

	combined := gasx.Accumulate(tables...)
	gasx.ApplyAreaCorrection(combined, opts.AreaCorrection)
	sums := gasx.Aggregate(combined, opts.Identifier)

	logger.Info("aggregated gas-exchange data",
		slog.Int("rows", len(combined)),
		slog.Int("cells", len(sums)),
		slog.Int("groups", len(opts.Identifier)))

	return chart.Render(sums, chart.Config{
		Metric:       opts.Type,
		ErrorBars:    opts.ErrorBars,
		Groups:       opts.Identifier,
		LegendTitle:  opts.LegendTitle,
		LegendLabels: opts.LegendLabels,
		Timestamps:   opts.Timestamps,
		YLimits:      opts.YAxisLimits,
		Palette:      opts.Colours,
	})
}
