// Command licorplot renders a gas-exchange summary chart from Li-COR
// spreadsheet exports in a directory and saves it as a PNG.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"

	"licorplot"
	"licorplot/internal/config"
	"licorplot/internal/infrastructure"
	"licorplot/pkg/domain"
)

func main() {
	if err := run(); err != nil {
		slog.Error("licorplot failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	identifier := flag.String("identifier", "", "comma-separated group keywords, e.g. wt,mut (required)")
	plotType := flag.String("type", "gsw", "y metric: gsw, relgsw, A, or WUE")
	errorBars := flag.String("errorbars", "se", "error bar kind: se or sd")
	areaCorrection := flag.Float64("area-correction", 1, "scale factor for absolute conductance and assimilation")
	timestamps := flag.String("timestamps", "", "comma-separated x positions for vertical reference lines, e.g. 5,10")
	observations := flag.String("observations", "", "row-position window per file, 1-based inclusive, e.g. 1:60")
	ylim := flag.String("ylim", "", "y-axis bounds min,max (ignored for relgsw)")
	legendTitle := flag.String("legend-title", "Genotype", "legend title")
	legendLabels := flag.String("legend-labels", "", "comma-separated legend labels (defaults to the identifiers)")
	removeOutliers := flag.Bool("remove-outliers", false, "drop per-file boxplot outliers on A/gsw")
	colours := flag.String("colours", "", "colour palette name (default from config, Isfahan1)")
	dir := flag.String("dir", "", "directory with spreadsheet exports (default from config, .)")
	out := flag.String("out", "", "output PNG path (default from config, licorplot.png)")
	width := flag.Float64("width", 0, "plot width in inches (default from config, 7)")
	height := flag.Float64("height", 0, "plot height in inches (default from config, 5)")
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	if *identifier == "" {
		return fmt.Errorf("-identifier is required")
	}

	// Flags beat config; config beats built-ins.
	if *dir == "" {
		*dir = cfg.Data.Dir
	}
	if *colours == "" {
		*colours = cfg.Plot.Palette
	}
	if *out == "" {
		*out = cfg.Plot.Output
	}
	if *width == 0 {
		*width = cfg.Plot.Width
	}
	if *height == 0 {
		*height = cfg.Plot.Height
	}

	opts := licorplot.Options{
		Identifier:     splitList(*identifier),
		Type:           domain.Metric(*plotType),
		AreaCorrection: *areaCorrection,
		ErrorBars:      domain.ErrorKind(*errorBars),
		LegendTitle:    *legendTitle,
		LegendLabels:   splitList(*legendLabels),
		RemoveOutliers: *removeOutliers,
		Colours:        *colours,
		Dir:            *dir,
		Logger:         logger,
	}

	if opts.Timestamps, err = parseFloats(*timestamps); err != nil {
		return fmt.Errorf("parse -timestamps: %w", err)
	}
	if opts.Observations, err = parseObsRange(*observations); err != nil {
		return fmt.Errorf("parse -observations: %w", err)
	}
	if opts.YAxisLimits, err = parseYLimits(*ylim); err != nil {
		return fmt.Errorf("parse -ylim: %w", err)
	}

	p, err := licorplot.Plot(opts)
	if err != nil {
		return err
	}

	if err := p.Save(vg.Length(*width)*vg.Inch, vg.Length(*height)*vg.Inch, *out); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	logger.Info("chart written",
		slog.String("path", *out),
		slog.String("type", *plotType),
		slog.String("errorbars", *errorBars))
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloats(s string) ([]float64, error) {
	var vals []float64
	for _, part := range splitList(s) {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", part)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func parseObsRange(s string) (*domain.ObsRange, error) {
	if s == "" {
		return nil, nil
	}
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("want from:to, got %q", s)
	}
	f, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", from)
	}
	t, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", to)
	}
	return &domain.ObsRange{From: f, To: t}, nil
}

func parseYLimits(s string) (*domain.YLimits, error) {
	if s == "" {
		return nil, nil
	}
	vals, err := parseFloats(s)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, fmt.Errorf("want min,max, got %q", s)
	}
	return &domain.YLimits{Min: vals[0], Max: vals[1]}, nil
}
