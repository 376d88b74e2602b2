package anogan

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
)

// AdversarialLoss measures how well the discriminator
// separates a batch of real outputs from a batch of
// generated outputs.
//
// It is the sum of two cross-entropy terms: the real
// scores against an all-ones target and the fake scores
// against an all-zeros target.
// Both arguments are logits; the sigmoid is fused into
// the cross-entropy.
func AdversarialLoss(dReal, dFake anydiff.Res, n int) anydiff.Res {
	return anydiff.Add(bce(1, dReal, n), bce(0, dFake, n))
}

// GeneratorLoss measures how well a batch of generated
// outputs fools the discriminator.
//
// It is the cross-entropy of the fake scores (logits)
// against an all-ones target.
func GeneratorLoss(dFake anydiff.Res, n int) anydiff.Res {
	return bce(1, dFake, n)
}

// FeatureMatchingLoss measures the mean squared distance
// between corresponding discriminator feature
// activations on generated and real inputs, averaged
// across feature layers.
//
// Training the generator against this signal instead of
// the raw adversarial loss reduces mode collapse.
//
// The two lists must be non-empty and have the same
// length, with matching vector sizes at each index.
func FeatureMatchingLoss(fake, real []anydiff.Res) anydiff.Res {
	if len(fake) == 0 || len(fake) != len(real) {
		panic("feature lists must be non-empty and equal in length")
	}
	c := fake[0].Output().Creator()
	var sum anydiff.Res
	for i, f := range fake {
		diff := anydiff.Sub(f, real[i])
		sq := anydiff.Square(diff)
		mean := anydiff.Scale(anydiff.Sum(sq),
			c.MakeNumeric(1/float64(f.Output().Len())))
		if sum == nil {
			sum = mean
		} else {
			sum = anydiff.Add(sum, mean)
		}
	}
	return anydiff.Scale(sum, c.MakeNumeric(1/float64(len(fake))))
}

// ResidualLoss measures reconstruction fidelity as the
// mean absolute difference between a sample and its
// reconstruction.
func ResidualLoss(x, xHat anydiff.Res) anydiff.Res {
	c := x.Output().Creator()
	return anydiff.Scale(anydiff.Sum(ResidualImage(x, xHat)),
		c.MakeNumeric(1/float64(x.Output().Len())))
}

// ResidualImage computes the elementwise absolute
// difference between a sample and its reconstruction.
// The result has the same shape as the inputs and is
// symmetric in its arguments.
func ResidualImage(x, xHat anydiff.Res) anydiff.Res {
	c := x.Output().Creator()
	diff := anydiff.Sub(x, xHat)
	return anydiff.Pool(diff, func(diff anydiff.Res) anydiff.Res {
		neg := anydiff.Scale(diff, c.MakeNumeric(-1))
		return anydiff.Add(anydiff.ClipPos(diff), anydiff.ClipPos(neg))
	})
}

// bce computes the mean binary cross-entropy of a batch
// of logits against a constant target.
func bce(target float64, logits anydiff.Res, n int) anydiff.Res {
	c := logits.Output().Creator()
	desired := c.MakeVector(logits.Output().Len())
	if target != 0 {
		desired.AddScalar(c.MakeNumeric(target))
	}
	costs := anynet.SigmoidCE{Average: true}.Cost(anydiff.NewConst(desired), logits, n)
	return anydiff.Scale(anydiff.Sum(costs), c.MakeNumeric(1/float64(n)))
}
