package anogan

import (
	"errors"
	"fmt"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// ValidateModels exercises a model pair once with
// zero-filled tensors of the configured shapes.
//
// It fails fast on a mismatch between the configured
// latent/input sizes and the model architectures, which
// would otherwise only surface mid-training.
// Layer panics caused by mismatched shapes are reported
// as errors.
func ValidateModels(c anyvec.Creator, gen Generator, disc Discriminator,
	latentSize, inputSize int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = essentials.AddCtx("validate models", fmt.Errorf("%v", r))
		}
	}()
	if err := validateModels(c, gen, disc, latentSize, inputSize); err != nil {
		return essentials.AddCtx("validate models", err)
	}
	return nil
}

func validateModels(c anyvec.Creator, gen Generator, disc Discriminator,
	latentSize, inputSize int) error {
	z := anydiff.NewConst(c.MakeVector(latentSize))
	out := gen.Generate(z, 1)
	if out.Output().Len() != inputSize {
		return fmt.Errorf("generator output has size %d (expected %d)",
			out.Output().Len(), inputSize)
	}
	x := anydiff.NewConst(c.MakeVector(inputSize))
	score, features := disc.Discriminate(x, 1)
	if score.Output().Len() != 1 {
		return fmt.Errorf("discriminator score has size %d (expected 1)",
			score.Output().Len())
	}
	if len(features) == 0 {
		return errors.New("discriminator exposes no feature activations")
	}
	return nil
}
