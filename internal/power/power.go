package power

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gotost/internal/errors"
)

// Design identifies the study design a power calculation refers to
type Design string

const (
	OneSample Design = "one_sample"
	TwoSample Design = "two_sample"
)

// DetectableEffect returns the standardized effect size (Cohen's d) a
// historical design with n observations per group (or n total, one-sample)
// had the given power to detect at significance alpha, one-sided. The result
// is typically fed into equivalence bounds as the smallest effect of
// interest.
//
// Approximation: the t-quantile analogue of the normal-theory formula,
// d = (t_{1-alpha, df} + t_{power, df}) * k with k = sqrt(2/n) (two-sample)
// or sqrt(1/n) (one-sample) and df taken from the design.
func DetectableEffect(n int, alpha, power float64, design Design) (float64, error) {
	if n < 2 {
		return 0, errors.InvalidInput(fmt.Sprintf("sample size must be at least 2, got %d", n))
	}
	if !(alpha > 0 && alpha < 1) {
		return 0, errors.InvalidInput(fmt.Sprintf("alpha must be in (0, 1), got %g", alpha))
	}
	if !(power > 0 && power < 1) {
		return 0, errors.InvalidInput(fmt.Sprintf("power must be in (0, 1), got %g", power))
	}

	var k, df float64
	switch design {
	case OneSample:
		k = math.Sqrt(1 / float64(n))
		df = float64(n - 1)
	case TwoSample:
		k = math.Sqrt(2 / float64(n))
		df = 2 * float64(n-1)
	default:
		return 0, errors.InvalidInput(fmt.Sprintf("unknown design %q", design))
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	d := (dist.Quantile(1-alpha) + dist.Quantile(power)) * k

	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, errors.NumericInstability(fmt.Sprintf("non-finite detectable effect (n=%d alpha=%g power=%g)", n, alpha, power))
	}
	return d, nil
}
