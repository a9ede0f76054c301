package tost

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gotost/internal/errors"
)

// OneSample runs the two-one-sided-tests procedure for a single sample
// against a fixed reference value mu.
//
// Raw bounds are absolute target values on the outcome scale and are
// converted to offsets from mu before testing; SMD bounds are multiples of
// the sample standard deviation. The returned Diff is the deviation m - mu
// and Bounds/CI are on that offset scale, with AbsoluteCI restating the
// interval on the original scale.
func OneSample(s SampleSummary, mu float64, b EquivalenceBounds, cfg TestConfig) (*TOSTResult, error) {
	if err := validateSummary("sample", s); err != nil {
		return nil, err
	}
	if err := validateBounds(b); err != nil {
		return nil, err
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	var low, high float64
	switch b.Unit {
	case UnitSMD:
		low, high = b.Low*s.SD, b.High*s.SD
	default:
		// Absolute target values become offsets from the reference
		low, high = b.Low-mu, b.High-mu
	}

	se := s.SD / math.Sqrt(float64(s.N))
	df := float64(s.N - 1)
	diff := s.Mean - mu

	res, err := run(diff, se, df, low, high, cfg)
	if err != nil {
		return nil, err
	}

	res.AbsoluteCI = &Interval{Lower: mu + res.CI.Lower, Upper: mu + res.CI.Upper}

	if cfg.Standardized {
		d := diff / s.SD
		seD := math.Sqrt(1/float64(s.N) + d*d/(2*float64(s.N)))
		est, err := standardizedEstimate(d, seD, df, cfg.Alpha)
		if err != nil {
			return nil, err
		}
		res.Standardized = est
	}
	return res, nil
}

// TwoSample runs the two-one-sided-tests procedure for two independent
// samples using Welch's unequal-variance t statistic and Satterthwaite
// degrees of freedom. SMD bounds are converted to raw mean-difference units
// through the Bessel-weighted pooled standard deviation.
func TwoSample(s1, s2 SampleSummary, b EquivalenceBounds, cfg TestConfig) (*TOSTResult, error) {
	if err := validateSummary("group 1", s1); err != nil {
		return nil, err
	}
	if err := validateSummary("group 2", s2); err != nil {
		return nil, err
	}
	if err := validateBounds(b); err != nil {
		return nil, err
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	n1, n2 := float64(s1.N), float64(s2.N)
	v1, v2 := s1.SD*s1.SD, s2.SD*s2.SD

	se := math.Sqrt(v1/n1 + v2/n2)
	df := math.Pow(v1/n1+v2/n2, 2) /
		(math.Pow(v1/n1, 2)/(n1-1) + math.Pow(v2/n2, 2)/(n2-1))

	low, high := b.Low, b.High
	var sp float64
	if b.Unit == UnitSMD || cfg.Standardized {
		sp = pooledSD(s1, s2)
		if sp == 0 {
			return nil, errors.DegenerateVariance("pooled standard deviation is zero; standardized bounds or estimates are undefined")
		}
	}
	if b.Unit == UnitSMD {
		low *= sp
		high *= sp
	}

	diff := s1.Mean - s2.Mean

	res, err := run(diff, se, df, low, high, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Standardized {
		d := diff / sp
		seD := math.Sqrt((n1+n2)/(n1*n2) + d*d/(2*(n1+n2)))
		est, err := standardizedEstimate(d, seD, df, cfg.Alpha)
		if err != nil {
			return nil, err
		}
		res.Standardized = est
	}
	return res, nil
}

// run computes both one-sided tests for a difference with the given standard
// error and degrees of freedom, bounds already on the difference scale.
func run(diff, se, df, low, high float64, cfg TestConfig) (*TOSTResult, error) {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	tLow := (diff - low) / se
	tHigh := (diff - high) / se

	var pLow, pHigh float64
	switch cfg.Mode {
	case ModeMinimalEffect:
		// Evidence the effect falls below the lower bound / above the upper
		pLow = dist.CDF(tLow)
		pHigh = 1 - dist.CDF(tHigh)
	default:
		// Evidence the effect exceeds the lower bound / undercuts the upper
		pLow = 1 - dist.CDF(tLow)
		pHigh = dist.CDF(tHigh)
	}

	tCrit := dist.Quantile(1 - cfg.Alpha)
	ci := Interval{Lower: diff - tCrit*se, Upper: diff + tCrit*se}

	for _, v := range []float64{tLow, tHigh, pLow, pHigh, tCrit, df} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.NumericInstability(fmt.Sprintf("non-finite statistic (diff=%g se=%g df=%g)", diff, se, df))
		}
	}

	var verdict Verdict
	switch cfg.Mode {
	case ModeMinimalEffect:
		if math.Min(pLow, pHigh) < cfg.Alpha {
			verdict = VerdictRelevant
		} else {
			verdict = VerdictNotRelevant
		}
	default:
		if math.Max(pLow, pHigh) < cfg.Alpha {
			verdict = VerdictEquivalent
		} else {
			verdict = VerdictNotEquivalent
		}
	}

	return &TOSTResult{
		TLower:  tLow,
		PLower:  pLow,
		TUpper:  tHigh,
		PUpper:  pHigh,
		Verdict: verdict,
		Diff:    diff,
		CI:      ci,
		SE:      se,
		DF:      df,
		Alpha:   cfg.Alpha,
		Mode:    cfg.Mode,
		Bounds:  Interval{Lower: low, Upper: high},
	}, nil
}

// pooledSD is the Bessel-weighted pooled standard deviation of two samples
func pooledSD(s1, s2 SampleSummary) float64 {
	n1, n2 := float64(s1.N), float64(s2.N)
	return math.Sqrt(((n1-1)*s1.SD*s1.SD + (n2-1)*s2.SD*s2.SD) / (n1 + n2 - 2))
}

func validateSummary(label string, s SampleSummary) error {
	if s.N < 2 {
		return errors.InvalidInput(fmt.Sprintf("%s: sample size must be at least 2, got %d", label, s.N))
	}
	if !(s.SD > 0) {
		return errors.InvalidInput(fmt.Sprintf("%s: standard deviation must be positive, got %g", label, s.SD))
	}
	if math.IsNaN(s.Mean) || math.IsInf(s.Mean, 0) || math.IsInf(s.SD, 0) {
		return errors.InvalidInput(fmt.Sprintf("%s: non-finite summary statistics", label))
	}
	return nil
}

func validateBounds(b EquivalenceBounds) error {
	if !(b.Low < b.High) {
		return errors.InvalidInput(fmt.Sprintf("equivalence bounds must satisfy low < high, got [%g, %g]", b.Low, b.High))
	}
	if math.IsNaN(b.Low) || math.IsNaN(b.High) || math.IsInf(b.Low, 0) || math.IsInf(b.High, 0) {
		return errors.InvalidInput("equivalence bounds must be finite")
	}
	switch b.Unit {
	case UnitRaw, UnitSMD, "":
	default:
		return errors.InvalidInput(fmt.Sprintf("unknown bound unit %q", b.Unit))
	}
	return nil
}

func validateConfig(cfg TestConfig) error {
	if !(cfg.Alpha > 0 && cfg.Alpha < 1) {
		return errors.InvalidInput(fmt.Sprintf("alpha must be in (0, 1), got %g", cfg.Alpha))
	}
	switch cfg.Mode {
	case ModeEquivalence, ModeMinimalEffect, "":
	default:
		return errors.InvalidInput(fmt.Sprintf("unknown hypothesis mode %q", cfg.Mode))
	}
	return nil
}
