package tost

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"gotost/internal/errors"
)

// Describe reduces raw observations to the summary statistics the tester
// consumes. This is the only place raw data enters the package; everything
// downstream is O(1) in the number of observations.
func Describe(xs []float64) (SampleSummary, error) {
	if len(xs) < 2 {
		return SampleSummary{}, errors.InvalidInput(fmt.Sprintf("need at least 2 observations, got %d", len(xs)))
	}

	mean, err := stats.Mean(xs)
	if err != nil {
		return SampleSummary{}, errors.Wrap(err, "computing mean")
	}
	sd, err := stats.StandardDeviationSample(xs)
	if err != nil {
		return SampleSummary{}, errors.Wrap(err, "computing standard deviation")
	}

	return SampleSummary{Mean: mean, SD: sd, N: len(xs)}, nil
}
