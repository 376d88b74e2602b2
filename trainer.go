package anogan

import (
	"errors"
	"fmt"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec"
)

// A StepResult reports the outcome of one training step.
type StepResult struct {
	// Generated is the batch of generated samples, usable
	// for logging.
	Generated anyvec.Vector

	DiscLoss float64
	GenLoss  float64
}

// A Trainer performs alternating mini-batch updates of a
// generator/discriminator pair.
type Trainer struct {
	Generator     Generator
	Discriminator Discriminator

	// DiscOpt and GenOpt transform the gradients of their
	// respective models.
	// Each must hold its own state (e.g. Adam moments).
	DiscOpt anysgd.Transformer
	GenOpt  anysgd.Transformer

	// Rater determines the learning rate, keyed by the
	// global step count.
	Rater anysgd.Rater

	Noise *NoiseSampler

	// UseAdversarial, if set, trains the generator with
	// GeneratorLoss instead of FeatureMatchingLoss.
	UseAdversarial bool

	// StepCount is the number of discriminator updates
	// applied so far, used as the global step counter.
	StepCount int
}

// NewTrainer creates a Trainer with one Adam optimizer
// per model and a constant learning rate.
func NewTrainer(g Generator, d Discriminator, noise *NoiseSampler,
	lr float64) *Trainer {
	return &Trainer{
		Generator:     g,
		Discriminator: d,
		DiscOpt:       &anysgd.Adam{DecayRate1: 0.5},
		GenOpt:        &anysgd.Adam{DecayRate1: 0.5},
		Rater:         anysgd.ConstRater(lr),
		Noise:         noise,
	}
}

// Fetch packs a SampleList into a *Batch.
// The s argument must implement SampleList.
// The batch may not be empty.
func (t *Trainer) Fetch(s anysgd.SampleList) (anysgd.Batch, error) {
	if s.Len() == 0 {
		return nil, errors.New("fetch batch: empty batch")
	}
	l := s.(SampleList)
	ins := make([]anyvec.Vector, l.Len())
	anomalous := make([]bool, l.Len())
	for i := range ins {
		sample := l.GetSample(i)
		ins[i] = sample.Input
		anomalous[i] = sample.Anomalous
	}
	return &Batch{
		Inputs:    anydiff.NewConst(ins[0].Creator().Concat(ins...)),
		Anomalous: anomalous,
		Num:       l.Len(),
	}, nil
}

// Step runs one training step on a batch of real
// samples: it draws fresh noise, generates a fake batch,
// and updates both models from a single shared forward
// pass.
//
// The discriminator loss only reaches discriminator
// parameters and the generator loss only reaches
// generator parameters.
//
// A non-finite loss is returned as an error; no update
// is applied in that case.
func (t *Trainer) Step(b *Batch) (*StepResult, error) {
	c := b.Inputs.Output().Creator()

	noise := t.Noise.Sample(b.Num)
	xHat := t.Generator.Generate(noise, b.Num)

	dReal, realFeatures := t.Discriminator.Discriminate(b.Inputs, b.Num)
	dFake, fakeFeatures := t.Discriminator.Discriminate(xHat, b.Num)

	dLoss := AdversarialLoss(dReal, dFake, b.Num)
	var gLoss anydiff.Res
	if t.UseAdversarial {
		gLoss = GeneratorLoss(dFake, b.Num)
	} else {
		gLoss = FeatureMatchingLoss(fakeFeatures, realFeatures)
	}

	dLossVal := scalarFloat(dLoss.Output())
	gLossVal := scalarFloat(gLoss.Output())
	if !isFinite(dLossVal) || !isFinite(gLossVal) {
		return nil, fmt.Errorf("training step %d: non-finite loss (d_loss=%v g_loss=%v)",
			t.StepCount, dLossVal, gLossVal)
	}

	dGrad := anydiff.NewGrad(t.Discriminator.Parameters()...)
	dLoss.Propagate(oneVector(c, dLoss.Output().Len()), dGrad)
	gGrad := anydiff.NewGrad(t.Generator.Parameters()...)
	gLoss.Propagate(oneVector(c, gLoss.Output().Len()), gGrad)

	rate := t.Rater.Rate(float64(t.StepCount))
	applyGradient(c, t.DiscOpt.Transform(dGrad), rate)
	applyGradient(c, t.GenOpt.Transform(gGrad), rate)
	t.StepCount++

	return &StepResult{
		Generated: xHat.Output().Copy(),
		DiscLoss:  dLossVal,
		GenLoss:   gLossVal,
	}, nil
}

// applyGradient takes a descent step by scaling the
// gradient by the negated rate and adding it to its
// variables.
func applyGradient(c anyvec.Creator, g anydiff.Grad, rate float64) {
	g.Scale(c.MakeNumeric(-rate))
	g.AddToVars()
}
