package calculation

import (
	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
)

const maxPreallocatedPoints = 1024

// SweepRange evaluates eval at every CTC from spec.Min to spec.Max.
//
// The point at Max is always evaluated: when a step would overshoot, the next
// CTC is clamped to Max. An invalid spec (negative Min, Min > Max, Step <= 0)
// yields an empty slice; callers treat empty as "invalid range". The step is
// used as given, so callers that want the default increment apply
// RangeSpec.WithDefaultStep first.
func SweepRange[T any](spec domain.RangeSpec, eval func(ctc decimal.Decimal) T) []domain.ProjectionPoint[T] {
	if !spec.Valid() {
		return []domain.ProjectionPoint[T]{}
	}

	points := make([]domain.ProjectionPoint[T], 0, sweepCapacity(spec))
	current := spec.Min
	for {
		points = append(points, domain.ProjectionPoint[T]{AnnualCTC: current, Metric: eval(current)})

		if current.GreaterThanOrEqual(spec.Max) {
			break
		}

		next := current.Add(spec.Step)
		if next.GreaterThan(spec.Max) {
			next = spec.Max
		}
		current = next
	}
	return points
}

// sweepCapacity is the slice capacity preallocated for a valid spec.
func sweepCapacity(spec domain.RangeSpec) int {
	return int(min(spec.PointCount(), maxPreallocatedPoints))
}
