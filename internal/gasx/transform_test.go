package gasx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licorplot/pkg/domain"
)

func raw(obs, a, gsw float64) domain.Raw {
	return domain.Raw{Obs: obs, A: a, Gsw: gsw}
}

func TestTransformFile(t *testing.T) {
	t.Run("drops rows with missing values", func(t *testing.T) {
		rows := []domain.Raw{
			raw(1, 12, 0.2),
			raw(2, math.NaN(), 0.3),
			raw(3, 9, math.NaN()),
			raw(4, 10, 0.25),
		}
		recs := TransformFile(rows, "f.xlsx", "wt", nil, false)
		require.Len(t, recs, 2)
		assert.Equal(t, 1.0, recs[0].Obs)
		assert.Equal(t, 4.0, recs[1].Obs)
	})

	t.Run("relative conductance is 1 at the per-file maximum", func(t *testing.T) {
		rows := []domain.Raw{
			raw(1, 10, 0.2),
			raw(2, 11, 0.4),
			raw(3, 12, 0.3),
		}
		recs := TransformFile(rows, "f.xlsx", "wt", nil, false)
		require.Len(t, recs, 3)
		assert.InDelta(t, 0.5, recs[0].RelGsw, 1e-12)
		assert.Equal(t, 1.0, recs[1].RelGsw) // max row divides by itself
		assert.InDelta(t, 0.75, recs[2].RelGsw, 1e-12)
	})

	t.Run("water-use efficiency is A over gsw", func(t *testing.T) {
		recs := TransformFile([]domain.Raw{raw(1, 12, 0.2)}, "f.xlsx", "wt", nil, false)
		require.Len(t, recs, 1)
		assert.InDelta(t, 60.0, recs[0].WUE, 1e-12)
	})

	t.Run("tags file and group", func(t *testing.T) {
		recs := TransformFile([]domain.Raw{raw(1, 12, 0.2)}, "wt_1.xlsx", "wt", nil, false)
		require.Len(t, recs, 1)
		assert.Equal(t, "wt_1.xlsx", recs[0].File)
		assert.Equal(t, "wt", recs[0].Group)
	})

	t.Run("crop window applies before the per-file maximum", func(t *testing.T) {
		rows := []domain.Raw{
			raw(1, 10, 0.2),
			raw(2, 11, 0.3),
			raw(3, 12, 0.9), // outside the window; must not set the max
		}
		recs := TransformFile(rows, "f.xlsx", "wt", &domain.ObsRange{From: 1, To: 2}, false)
		require.Len(t, recs, 2)
		assert.Equal(t, 1.0, recs[1].RelGsw)
	})

	t.Run("crop is by row position not observation label", func(t *testing.T) {
		rows := []domain.Raw{
			raw(30, 10, 0.2),
			raw(31, 11, 0.3),
			raw(32, 12, 0.4),
		}
		recs := TransformFile(rows, "f.xlsx", "wt", &domain.ObsRange{From: 2, To: 3}, false)
		require.Len(t, recs, 2)
		assert.Equal(t, 31.0, recs[0].Obs)
		assert.Equal(t, 32.0, recs[1].Obs)
	})

	t.Run("crop window beyond data is clamped", func(t *testing.T) {
		rows := []domain.Raw{raw(1, 10, 0.2), raw(2, 11, 0.3)}
		recs := TransformFile(rows, "f.xlsx", "wt", &domain.ObsRange{From: 1, To: 50}, false)
		assert.Len(t, recs, 2)
	})

	t.Run("empty window yields no records", func(t *testing.T) {
		rows := []domain.Raw{raw(1, 10, 0.2)}
		recs := TransformFile(rows, "f.xlsx", "wt", &domain.ObsRange{From: 5, To: 9}, false)
		assert.Empty(t, recs)
	})

	t.Run("zero conductance row is dropped by the finite guard", func(t *testing.T) {
		rows := []domain.Raw{
			raw(1, 10, 0.0), // WUE would be +Inf
			raw(2, 11, 0.3),
		}
		recs := TransformFile(rows, "f.xlsx", "wt", nil, false)
		require.Len(t, recs, 1)
		assert.Equal(t, 2.0, recs[0].Obs)
	})

	t.Run("outlier flag off is a strict no-op", func(t *testing.T) {
		rows := []domain.Raw{
			raw(1, 10, 0.2),
			raw(2, 10, 0.2),
			raw(3, 10, 0.2),
			raw(4, 500, 0.2), // wildly high WUE
		}
		with := TransformFile(rows, "f.xlsx", "wt", nil, false)
		assert.Len(t, with, 4)
	})

	t.Run("outlier flag removes boxplot outliers on WUE", func(t *testing.T) {
		rows := []domain.Raw{
			raw(1, 10, 0.2),
			raw(2, 10.2, 0.2),
			raw(3, 9.8, 0.2),
			raw(4, 10.1, 0.2),
			raw(5, 500, 0.2),
		}
		recs := TransformFile(rows, "f.xlsx", "wt", nil, true)
		require.Len(t, recs, 4)
		for _, r := range recs {
			assert.Less(t, r.WUE, 100.0)
		}
	})
}

func TestAccumulate(t *testing.T) {
	a := TransformFile([]domain.Raw{raw(1, 10, 0.2)}, "a.xlsx", "wt", nil, false)
	b := TransformFile([]domain.Raw{raw(1, 11, 0.3)}, "b.xlsx", "mut", nil, false)

	t.Run("preserves first-seen order", func(t *testing.T) {
		combined := Accumulate(a, b)
		require.Len(t, combined, 2)
		assert.Equal(t, "a.xlsx", combined[0].File)
		assert.Equal(t, "b.xlsx", combined[1].File)
	})

	t.Run("refiltering clean rows is a no-op", func(t *testing.T) {
		once := Accumulate(a, b)
		twice := Accumulate(once)
		assert.Equal(t, once, twice)
	})

	t.Run("drops incomplete rows", func(t *testing.T) {
		dirty := []domain.Record{{Obs: 1, A: math.NaN(), Gsw: 0.2, RelGsw: 1, WUE: 1}}
		assert.Empty(t, Accumulate(dirty))
	})
}

func TestApplyAreaCorrection(t *testing.T) {
	build := func() []domain.Record {
		return TransformFile([]domain.Raw{raw(1, 12, 0.3)}, "f.xlsx", "wt", nil, false)
	}

	t.Run("scales gsw and A only", func(t *testing.T) {
		recs := build()
		relBefore, wueBefore := recs[0].RelGsw, recs[0].WUE
		ApplyAreaCorrection(recs, 2)
		assert.InDelta(t, 0.6, recs[0].Gsw, 1e-12)
		assert.InDelta(t, 24.0, recs[0].A, 1e-12)
		assert.Equal(t, relBefore, recs[0].RelGsw)
		assert.Equal(t, wueBefore, recs[0].WUE)
	})

	t.Run("factor 1 leaves the table untouched", func(t *testing.T) {
		recs := build()
		before := recs[0]
		ApplyAreaCorrection(recs, 1)
		assert.Equal(t, before, recs[0])
	})
}
