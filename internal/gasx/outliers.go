package gasx

import (
	"sort"

	"licorplot/pkg/domain"
)

// minOutlierSamples is the smallest set the quartile fences are meaningful
// for. Below it the outlier set is empty and nothing is removed.
const minOutlierSamples = 4

// dropWUEOutliers applies the boxplot rule to the WUE column of a single
// file's records: values beyond 1.5 times the interquartile range from the
// nearest quartile are removed. The fences are computed from this file
// only, never across files.
func dropWUEOutliers(recs []domain.Record) []domain.Record {
	if len(recs) < minOutlierSamples {
		return recs
	}

	vals := make([]float64, len(recs))
	for i, r := range recs {
		vals[i] = r.WUE
	}
	sort.Float64s(vals)

	q1 := quantile(vals, 0.25)
	q3 := quantile(vals, 0.75)
	iqr := q3 - q1
	lo := q1 - 1.5*iqr
	hi := q3 + 1.5*iqr

	kept := recs[:0]
	for _, r := range recs {
		if r.WUE >= lo && r.WUE <= hi {
			kept = append(kept, r)
		}
	}
	return kept
}

// quantile computes the type-7 sample quantile (linear interpolation
// between order statistics), the estimator the reference boxplot rule
// uses. sorted must be ascending and non-empty.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	i := int(h)
	if i >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}
