package anogan

import (
	"gonum.org/v1/gonum/integrate"
)

// DefaultNumThresholds is the default threshold bin
// count for the AUC metric.
const DefaultNumThresholds = 500

const aucEpsilon = 1e-7

// A Mean accumulates a running average.
type Mean struct {
	sum   float64
	count int
}

// Add adds a value to the running average.
func (m *Mean) Add(v float64) {
	m.sum += v
	m.count++
}

// Value returns the current average, or 0 if no values
// have been added.
func (m *Mean) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

// Reset discards all accumulated values.
func (m *Mean) Reset() {
	m.sum = 0
	m.count = 0
}

// An AUC approximates the area under the ROC curve from
// a stream of (label, score) pairs using a fixed number
// of threshold bins.
//
// Thresholds are evenly spaced over [0, 1] with small
// guards past both ends, so any real-valued score can be
// fed in; scores outside [0, 1] saturate the end bins.
type AUC struct {
	thresholds []float64
	truePos    []int
	falsePos   []int
	pos        int
	neg        int
}

// NewAUC creates an AUC accumulator with the given
// number of threshold bins, which must be at least 2.
func NewAUC(numThresholds int) *AUC {
	if numThresholds < 2 {
		panic("AUC needs at least two thresholds")
	}
	thresholds := make([]float64, numThresholds)
	thresholds[0] = -aucEpsilon
	thresholds[numThresholds-1] = 1 + aucEpsilon
	for i := 1; i < numThresholds-1; i++ {
		thresholds[i] = float64(i) / float64(numThresholds-1)
	}
	return &AUC{
		thresholds: thresholds,
		truePos:    make([]int, numThresholds),
		falsePos:   make([]int, numThresholds),
	}
}

// Add records one sample.
// The anomalous flag is the true label and the score is
// the predicted anomaly score.
func (a *AUC) Add(anomalous bool, score float64) {
	if anomalous {
		a.pos++
	} else {
		a.neg++
	}
	for i, t := range a.thresholds {
		if score > t {
			if anomalous {
				a.truePos[i]++
			} else {
				a.falsePos[i]++
			}
		} else {
			break
		}
	}
}

// Value returns the accumulated AUC estimate, or 0 if
// either class is empty.
func (a *AUC) Value() float64 {
	if a.pos == 0 || a.neg == 0 {
		return 0
	}
	n := len(a.thresholds)
	fpr := make([]float64, n)
	tpr := make([]float64, n)
	for i := 0; i < n; i++ {
		// Rates fall as the threshold rises; reverse so the
		// false-positive rate is sorted for integration.
		fpr[n-1-i] = float64(a.falsePos[i]) / float64(a.neg)
		tpr[n-1-i] = float64(a.truePos[i]) / float64(a.pos)
	}
	return integrate.Trapezoidal(fpr, tpr)
}

// Thresholds returns a copy of the threshold bin
// boundaries.
func (a *AUC) Thresholds() []float64 {
	return append([]float64{}, a.thresholds...)
}

// Reset discards all accumulated samples.
// The thresholds are unchanged.
func (a *AUC) Reset() {
	a.pos = 0
	a.neg = 0
	for i := range a.truePos {
		a.truePos[i] = 0
		a.falsePos[i] = 0
	}
}
