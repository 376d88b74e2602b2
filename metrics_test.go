package anogan

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	m := &Mean{}
	if m.Value() != 0 {
		t.Errorf("empty mean should be 0, got %f", m.Value())
	}
	m.Add(1)
	m.Add(2)
	m.Add(6)
	if math.Abs(m.Value()-3) > 1e-9 {
		t.Errorf("expected 3 but got %f", m.Value())
	}
	m.Reset()
	m.Add(5)
	if m.Value() != 5 {
		t.Errorf("expected 5 but got %f", m.Value())
	}
}

func TestAUCPerfectSeparation(t *testing.T) {
	a := NewAUC(DefaultNumThresholds)
	labels := []bool{false, false, true, true}
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	for i, label := range labels {
		a.Add(label, scores[i])
	}
	if v := a.Value(); math.Abs(v-1) > 1e-9 {
		t.Errorf("expected AUC 1 but got %f", v)
	}
}

func TestAUCAntiSeparation(t *testing.T) {
	a := NewAUC(DefaultNumThresholds)
	labels := []bool{false, false, true, true}
	scores := []float64{0.9, 0.8, 0.2, 0.1}
	for i, label := range labels {
		a.Add(label, scores[i])
	}
	if v := a.Value(); math.Abs(v) > 1e-9 {
		t.Errorf("expected AUC 0 but got %f", v)
	}
}

func TestAUCReset(t *testing.T) {
	a := NewAUC(100)
	a.Add(true, 0.1)
	a.Add(false, 0.9)
	a.Reset()
	a.Add(false, 0.2)
	a.Add(true, 0.7)
	if v := a.Value(); math.Abs(v-1) > 1e-9 {
		t.Errorf("expected AUC 1 after reset but got %f", v)
	}
}

func TestAUCEmptyClass(t *testing.T) {
	a := NewAUC(100)
	a.Add(true, 0.5)
	if v := a.Value(); v != 0 {
		t.Errorf("expected 0 without negatives, got %f", v)
	}
}

func TestAUCThresholds(t *testing.T) {
	a := NewAUC(500)
	thresholds := a.Thresholds()
	if len(thresholds) != 500 {
		t.Fatalf("expected 500 thresholds but got %d", len(thresholds))
	}
	if thresholds[0] >= 0 || thresholds[499] <= 1 {
		t.Errorf("bad end guards: %f, %f", thresholds[0], thresholds[499])
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			t.Fatalf("thresholds not increasing at %d", i)
		}
	}
}
