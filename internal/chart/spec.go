package chart

import (
	"errors"
	"fmt"

	"licorplot/pkg/domain"
)

// ErrUnknownMetric marks a plot type outside gsw|relgsw|A|WUE.
var ErrUnknownMetric = errors.New("unknown plot type")

// ErrUnknownErrorKind marks an error-bar kind outside se|sd.
var ErrUnknownErrorKind = errors.New("unknown error-bar kind")

// axisSpec describes how one metric family renders: which summary cell to
// read, the fixed y-axis label, and whether the axis uses the fixed
// percent scale (which also makes caller y-limits a no-op).
type axisSpec struct {
	label   string
	stat    func(domain.Summary) domain.Stat
	percent bool
}

// One entry per metric family; the error-bar kind picks sd vs se out of
// the same cell, so the four-by-two dispatch stays a single table.
var metricSpecs = map[domain.Metric]axisSpec{
	domain.MetricGsw: {
		label: "Absolute gsw (mol m-2 s-1)",
		stat:  func(s domain.Summary) domain.Stat { return s.Gsw },
	},
	domain.MetricRelGsw: {
		label:   "Relative gsw (%)",
		stat:    func(s domain.Summary) domain.Stat { return s.RelGsw },
		percent: true,
	},
	domain.MetricA: {
		label: "Assimilation rate A (umol m-2 s-1)",
		stat:  func(s domain.Summary) domain.Stat { return s.A },
	},
	domain.MetricWUE: {
		label: "Intrinsic WUE, A/gsw (umol mol-1)",
		stat:  func(s domain.Summary) domain.Stat { return s.WUE },
	},
}

func specFor(m domain.Metric, k domain.ErrorKind) (axisSpec, error) {
	spec, ok := metricSpecs[m]
	if !ok {
		return axisSpec{}, fmt.Errorf("%w: %q", ErrUnknownMetric, m)
	}
	if k != domain.ErrorSE && k != domain.ErrorSD {
		return axisSpec{}, fmt.Errorf("%w: %q", ErrUnknownErrorKind, k)
	}
	return spec, nil
}
