// Package metrics derives precision and recall from truth and test
// membership sets.
package metrics

import (
	"fmt"
	"math"
	"strings"

	"github.com/brentp/svbench/reconcile"
	"github.com/pkg/errors"
)

// Result is computed once per comparison and never modified.
type Result struct {
	TruePositives int `json:"true_positives"`
	// Precision and Recall are percentages rounded to one decimal place.
	Precision float64 `json:"precision_pct"`
	Recall    float64 `json:"recall_pct"`

	TruthCount     int `json:"truth_count"`
	TestCount      int `json:"test_count"`
	FalsePositives int `json:"false_positives"`
	FalseNegatives int `json:"false_negatives"`
}

// EmptySetError is returned instead of dividing by zero.
type EmptySetError struct {
	Truth bool
	Test  bool
}

func (e *EmptySetError) Error() string {
	var names []string
	if e.Truth {
		names = append(names, "truth")
	}
	if e.Test {
		names = append(names, "test")
	}
	return fmt.Sprintf("empty %s set: precision and recall are undefined", strings.Join(names, " and "))
}

// IsEmptySet reports whether err is (or wraps) an EmptySetError.
func IsEmptySet(err error) bool {
	var e *EmptySetError
	return errors.As(err, &e)
}

// Round1 rounds x to one decimal place, with halves rounded away from zero.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func pct(n, d int) float64 {
	return Round1(100 * float64(n) / float64(d))
}

// Compute returns the metrics of test against truth.
func Compute(truth, test reconcile.Set) (Result, error) {
	if truth.Len() == 0 || test.Len() == 0 {
		return Result{}, &EmptySetError{Truth: truth.Len() == 0, Test: test.Len() == 0}
	}
	tp := truth.IntersectLen(test)
	return Result{
		TruePositives:  tp,
		Precision:      pct(tp, test.Len()),
		Recall:         pct(tp, truth.Len()),
		TruthCount:     truth.Len(),
		TestCount:      test.Len(),
		FalsePositives: test.Len() - tp,
		FalseNegatives: truth.Len() - tp,
	}, nil
}
