// Package gasx turns raw gas-exchange rows into enriched per-file records
// and aggregates them into per-(observation, group) summary statistics.
package gasx

import (
	"math"

	"licorplot/pkg/domain"
)

// TransformFile enriches one file's raw rows: optional ordinal cropping,
// missing-value removal, relative conductance against the per-file maximum,
// intrinsic water-use efficiency, source tagging, and the optional Tukey
// outlier filter on WUE. The crop window applies before the per-file
// maximum is taken, so relative conductance always refers to the window
// the caller asked for.
func TransformFile(rows []domain.Raw, file, group string, crop *domain.ObsRange, removeOutliers bool) []domain.Record {
	if crop != nil {
		rows = cropRows(rows, *crop)
	}

	clean := rows[:0:0]
	for _, r := range rows {
		if r.IsComplete() {
			clean = append(clean, r)
		}
	}

	maxGsw := math.NaN()
	for _, r := range clean {
		if math.IsNaN(maxGsw) || r.Gsw > maxGsw {
			maxGsw = r.Gsw
		}
	}

	recs := make([]domain.Record, 0, len(clean))
	for _, r := range clean {
		recs = append(recs, domain.Record{
			Obs:    r.Obs,
			A:      r.A,
			Gsw:    r.Gsw,
			RelGsw: r.Gsw / maxGsw,
			WUE:    r.A / r.Gsw,
			File:   file,
			Group:  group,
		})
	}

	if removeOutliers {
		recs = dropWUEOutliers(recs)
	}

	// The divisions above can yield Inf (gsw of zero) or NaN; guard again.
	final := recs[:0]
	for _, r := range recs {
		if r.IsComplete() {
			final = append(final, r)
		}
	}
	return final
}

// cropRows subsets by 1-based inclusive row position, clamped to the
// available rows.
func cropRows(rows []domain.Raw, r domain.ObsRange) []domain.Raw {
	from, to := r.From, r.To
	if from < 1 {
		from = 1
	}
	if to > len(rows) {
		to = len(rows)
	}
	if from > len(rows) || to < from {
		return nil
	}
	return rows[from-1 : to]
}

// Accumulate concatenates per-file tables in first-seen order and drops
// any remaining incomplete rows. Re-filtering already-clean tables is a
// no-op, so calling it on pre-filtered input is safe.
func Accumulate(tables ...[]domain.Record) []domain.Record {
	var combined []domain.Record
	for _, t := range tables {
		for _, r := range t {
			if r.IsComplete() {
				combined = append(combined, r)
			}
		}
	}
	return combined
}

// ApplyAreaCorrection rescales the absolute conductance and assimilation
// columns in place. Relative conductance and WUE keep the values computed
// before correction. A factor of 1 leaves the table untouched.
func ApplyAreaCorrection(recs []domain.Record, factor float64) {
	if factor == 1 {
		return
	}
	for i := range recs {
		recs[i].Gsw *= factor
		recs[i].A *= factor
	}
}
