package anogan

import (
	"fmt"
	"sort"
	"strings"
)

// Canonical hyperparameter names.
const (
	HyperLearningRate     = "learning_rate"
	HyperLatentVectorSize = "latent_vector_size"
	HyperEpochs           = "epochs"
	HyperStepLogFrequency = "step_log_frequency"
	HyperBatchSize        = "batch_size"
)

// Hyperparams is a flat named-hyperparameter mapping, the
// configuration surface of a training run.
type Hyperparams map[string]float64

// Require verifies that every named hyperparameter is
// present.
func (h Hyperparams) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := h[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing hyperparameters: %s",
			strings.Join(missing, ", "))
	}
	return nil
}

// Float returns the named hyperparameter, or the default
// if it is absent.
func (h Hyperparams) Float(name string, def float64) float64 {
	if v, ok := h[name]; ok {
		return v
	}
	return def
}

// Int returns the named hyperparameter truncated to an
// int, or the default if it is absent.
func (h Hyperparams) Int(name string, def int) int {
	if v, ok := h[name]; ok {
		return int(v)
	}
	return def
}
