package anogan

import (
	"strings"
	"testing"
)

func TestHyperparamsRequire(t *testing.T) {
	hps := Hyperparams{
		HyperLearningRate: 0.001,
		HyperBatchSize:    32,
	}
	if err := hps.Require(HyperLearningRate, HyperBatchSize); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	err := hps.Require(HyperLearningRate, HyperEpochs, HyperLatentVectorSize)
	if err == nil {
		t.Fatal("expected an error for missing keys")
	}
	if !strings.Contains(err.Error(), HyperEpochs) ||
		!strings.Contains(err.Error(), HyperLatentVectorSize) {
		t.Errorf("error should name the missing keys: %s", err)
	}
}

func TestHyperparamsAccessors(t *testing.T) {
	hps := Hyperparams{HyperLearningRate: 0.25, HyperEpochs: 30}
	if v := hps.Float(HyperLearningRate, 1); v != 0.25 {
		t.Errorf("expected 0.25 but got %f", v)
	}
	if v := hps.Float("absent", 1.5); v != 1.5 {
		t.Errorf("expected default 1.5 but got %f", v)
	}
	if v := hps.Int(HyperEpochs, 0); v != 30 {
		t.Errorf("expected 30 but got %d", v)
	}
	if v := hps.Int("absent", 7); v != 7 {
		t.Errorf("expected default 7 but got %d", v)
	}
}
