package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licorplot/pkg/domain"
)

func sampleSummaries() []domain.Summary {
	st := func(mean float64) domain.Stat {
		return domain.Stat{Mean: mean, SD: 0.1, SE: 0.05}
	}
	return []domain.Summary{
		{Obs: 1, Group: "wt", N: 3, Gsw: st(0.2), RelGsw: st(0.5), A: st(10), WUE: st(50)},
		{Obs: 2, Group: "wt", N: 3, Gsw: st(0.3), RelGsw: st(0.8), A: st(11), WUE: st(40)},
		{Obs: 1, Group: "mut", N: 3, Gsw: st(0.1), RelGsw: st(0.4), A: st(8), WUE: st(60)},
	}
}

func baseConfig() Config {
	return Config{
		Metric:      domain.MetricGsw,
		ErrorBars:   domain.ErrorSE,
		Groups:      []string{"wt", "mut"},
		LegendTitle: "Genotype",
		Palette:     DefaultPalette,
	}
}

func TestRender(t *testing.T) {
	t.Run("renders every metric and error-kind combination", func(t *testing.T) {
		for _, m := range []domain.Metric{domain.MetricGsw, domain.MetricRelGsw, domain.MetricA, domain.MetricWUE} {
			for _, k := range []domain.ErrorKind{domain.ErrorSE, domain.ErrorSD} {
				cfg := baseConfig()
				cfg.Metric = m
				cfg.ErrorBars = k
				p, err := Render(sampleSummaries(), cfg)
				require.NoError(t, err, "metric %s errorbars %s", m, k)
				require.NotNil(t, p)
			}
		}
	})

	t.Run("unknown metric fails loudly", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Metric = "bogus"
		_, err := Render(sampleSummaries(), cfg)
		assert.ErrorIs(t, err, ErrUnknownMetric)
	})

	t.Run("unknown error kind fails loudly", func(t *testing.T) {
		cfg := baseConfig()
		cfg.ErrorBars = "iqr"
		_, err := Render(sampleSummaries(), cfg)
		assert.ErrorIs(t, err, ErrUnknownErrorKind)
	})

	t.Run("unknown palette fails loudly", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Palette = "Mondrian"
		_, err := Render(sampleSummaries(), cfg)
		assert.ErrorIs(t, err, ErrUnknownPalette)
	})

	t.Run("y limits are applied", func(t *testing.T) {
		cfg := baseConfig()
		cfg.YLimits = &domain.YLimits{Min: 0, Max: 0.5}
		p, err := Render(sampleSummaries(), cfg)
		require.NoError(t, err)
		assert.Equal(t, 0.0, p.Y.Min)
		assert.Equal(t, 0.5, p.Y.Max)
	})

	t.Run("relgsw ignores y limits and fixes the percent scale", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Metric = domain.MetricRelGsw
		cfg.YLimits = &domain.YLimits{Min: -5, Max: 5}
		p, err := Render(sampleSummaries(), cfg)
		require.NoError(t, err)
		assert.Equal(t, 0.0, p.Y.Min)
		assert.Equal(t, 1.05, p.Y.Max)
	})

	t.Run("axis labels are fixed per metric", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Metric = domain.MetricWUE
		p, err := Render(sampleSummaries(), cfg)
		require.NoError(t, err)
		assert.Equal(t, "Intrinsic WUE, A/gsw (umol mol-1)", p.Y.Label.Text)
		assert.Equal(t, "Observation", p.X.Label.Text)
	})

	t.Run("empty summaries still yield a plot", func(t *testing.T) {
		p, err := Render(nil, baseConfig())
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("timestamps render with data present", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Timestamps = []float64{1.5}
		_, err := Render(sampleSummaries(), cfg)
		assert.NoError(t, err)
	})
}

func TestGroupSeries(t *testing.T) {
	spec := metricSpecs[domain.MetricGsw]

	t.Run("selects one group in summary order", func(t *testing.T) {
		data := groupSeries(sampleSummaries(), "wt", spec, domain.ErrorSE)
		require.Equal(t, 2, data.Len())
		assert.Equal(t, 0.2, data.XYs[0].Y)
		assert.Equal(t, 0.3, data.XYs[1].Y)
	})

	t.Run("NaN spread becomes a zero-length bar", func(t *testing.T) {
		sums := []domain.Summary{{
			Obs: 1, Group: "wt", N: 1,
			Gsw: domain.Stat{Mean: 0.2, SD: math.NaN(), SE: math.NaN()},
		}}
		data := groupSeries(sums, "wt", spec, domain.ErrorSE)
		require.Equal(t, 1, data.Len())
		lo, hi := data.YError(0)
		assert.Equal(t, 0.0, lo)
		assert.Equal(t, 0.0, hi)
	})

	t.Run("sd and se pick different magnitudes", func(t *testing.T) {
		se := groupSeries(sampleSummaries(), "wt", spec, domain.ErrorSE)
		sd := groupSeries(sampleSummaries(), "wt", spec, domain.ErrorSD)
		assert.Equal(t, 0.05, se.errs[0])
		assert.Equal(t, 0.1, sd.errs[0])
	})
}

func TestPercentTicks(t *testing.T) {
	ticks := percentTicks{}.Ticks(0, 1.05)
	require.Len(t, ticks, 5)
	assert.Equal(t, "0%", ticks[0].Label)
	assert.Equal(t, "100%", ticks[4].Label)

	partial := percentTicks{}.Ticks(0.3, 0.8)
	require.Len(t, partial, 2)
	assert.Equal(t, "50%", partial[0].Label)
	assert.Equal(t, "75%", partial[1].Label)
}
