package tost

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gotost/internal/errors"
)

// hedgesJ is the small-sample bias correction factor for Cohen's d
// (Hedges & Olkin approximation J = 1 - 3/(4*df - 1)).
func hedgesJ(df float64) float64 {
	return 1 - 3/(4*df-1)
}

// standardizedEstimate turns a Cohen's d and its delta-method standard error
// into a Hedges' g estimate with a (1 - 2*alpha) normal-approximation
// interval. The interval level matches the raw-scale TOST interval so both
// can be read against the same bounds.
func standardizedEstimate(d, seD, df, alpha float64) (*EffectEstimate, error) {
	j := hedgesJ(df)
	g := j * d
	zCrit := distuv.UnitNormal.Quantile(1 - alpha)
	margin := zCrit * j * seD

	if math.IsNaN(g) || math.IsInf(g, 0) || math.IsNaN(margin) || math.IsInf(margin, 0) {
		return nil, errors.NumericInstability(fmt.Sprintf("non-finite standardized estimate (d=%g se=%g df=%g)", d, seD, df))
	}

	return &EffectEstimate{
		G:  g,
		CI: Interval{Lower: g - margin, Upper: g + margin},
	}, nil
}
