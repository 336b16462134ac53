package domain

import "math"

// Metric selects the y-axis quantity of a rendered summary chart.
type Metric string

const (
	// MetricGsw plots absolute stomatal conductance to water vapor.
	MetricGsw Metric = "gsw"
	// MetricRelGsw plots conductance normalized to the per-file maximum.
	MetricRelGsw Metric = "relgsw"
	// MetricA plots the net CO2 assimilation rate.
	MetricA Metric = "A"
	// MetricWUE plots intrinsic water-use efficiency (A / gsw).
	MetricWUE Metric = "WUE"
)

// ErrorKind selects which spread statistic the error bars show.
type ErrorKind string

const (
	// ErrorSE draws standard-error bars (sd / sqrt(n)).
	ErrorSE ErrorKind = "se"
	// ErrorSD draws standard-deviation bars.
	ErrorSD ErrorKind = "sd"
)

// Raw is one data row as read from a gas-exchange spreadsheet export.
// Missing or unparseable cells are NaN.
type Raw struct {
	Obs float64 `json:"obs"`
	A   float64 `json:"a"`
	Gsw float64 `json:"gsw"`
}

// IsComplete reports whether every field holds a finite value.
func (r Raw) IsComplete() bool {
	return !math.IsNaN(r.Obs) && !math.IsInf(r.Obs, 0) &&
		!math.IsNaN(r.A) && !math.IsInf(r.A, 0) &&
		!math.IsNaN(r.Gsw) && !math.IsInf(r.Gsw, 0)
}

// Record is a raw row enriched with the quantities derived per file:
// relative conductance, intrinsic water-use efficiency, and the
// source-file / group tags used for aggregation.
type Record struct {
	Obs    float64 `json:"obs"`
	A      float64 `json:"a"`
	Gsw    float64 `json:"gsw"`
	RelGsw float64 `json:"relgsw"`
	WUE    float64 `json:"wue"`
	File   string  `json:"file"`
	Group  string  `json:"group"`
}

// IsComplete reports whether every numeric field holds a finite value.
func (r Record) IsComplete() bool {
	for _, v := range []float64{r.Obs, r.A, r.Gsw, r.RelGsw, r.WUE} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Stat holds the aggregate statistics of one quantity within a
// (observation, group) cell. SD and SE are NaN for single-replicate
// cells, matching sample-statistics semantics.
type Stat struct {
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
	SE   float64 `json:"se"`
}

// Pick returns the spread statistic the error kind refers to.
func (k ErrorKind) Pick(s Stat) float64 {
	if k == ErrorSD {
		return s.SD
	}
	return s.SE
}

// Summary is one aggregated cell: all replicate measurements sharing an
// observation index and a group label, reduced to per-quantity statistics.
type Summary struct {
	Obs    float64 `json:"obs"`
	Group  string  `json:"group"`
	N      int     `json:"n"`
	Gsw    Stat    `json:"gsw"`
	RelGsw Stat    `json:"relgsw"`
	A      Stat    `json:"a"`
	WUE    Stat    `json:"wue"`
}

// ObsRange crops each file to a window of row positions before any
// downstream computation. Positions are 1-based and inclusive, and refer
// to ordinal row order in the file, never to observation labels.
type ObsRange struct {
	From int `json:"from" validate:"min=1"`
	To   int `json:"to" validate:"gtefield=From"`
}

// YLimits overrides the y-axis bounds of a rendered chart.
type YLimits struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
