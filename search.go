package anogan

import (
	"fmt"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec"
)

const (
	// DefaultSearchSteps is the default number of latent
	// optimization steps per search.
	DefaultSearchSteps = 500

	// DefaultSearchLambda is the default weight of the
	// discrimination term in the anomaly score.
	DefaultSearchLambda = 0.1
)

// A SearchResult is the outcome of one latent search.
type SearchResult struct {
	// Z is the optimized latent vector.
	Z anyvec.Vector

	// Score is the anomaly score: the value of the search
	// objective at Z.
	Score float64

	// Reconstruction is the generator's output at Z.
	Reconstruction anyvec.Vector
}

// A Searcher finds, for a fixed input sample, the latent
// vector whose reconstruction best matches the sample.
//
// Model parameters are frozen during a search; only the
// latent variable is optimized.
type Searcher struct {
	Generator     Generator
	Discriminator Discriminator

	// LatentSize is the latent vector dimensionality.
	LatentSize int

	// Steps is the number of gradient steps per search.
	// With zero steps, Search scores the all-zero latent
	// vector without mutating anything.
	Steps int

	// Lambda weighs the discrimination term against the
	// residual term in the search objective.
	Lambda float64

	// Rater determines the learning rate, keyed by the
	// step index within the search.
	Rater anysgd.Rater

	// UseAdversarial, if set, uses the adversarial loss
	// between the real and reconstructed discriminator
	// outputs as the discrimination term instead of the
	// feature matching distance.
	UseAdversarial bool
}

// NewSearcher creates a Searcher with the default step
// count and lambda and a constant learning rate.
func NewSearcher(g Generator, d Discriminator, latentSize int,
	lr float64) *Searcher {
	return &Searcher{
		Generator:     g,
		Discriminator: d,
		LatentSize:    latentSize,
		Steps:         DefaultSearchSteps,
		Lambda:        DefaultSearchLambda,
		Rater:         anysgd.ConstRater(lr),
	}
}

// Search optimizes a fresh zero-initialized latent
// vector to reconstruct x and returns the result.
//
// Each invocation owns its own latent variable and its
// own optimizer state, so nothing leaks between
// searches.
func (s *Searcher) Search(x anyvec.Vector) (*SearchResult, error) {
	c := x.Creator()
	z := anydiff.NewVar(c.MakeVector(s.LatentSize))
	xConst := anydiff.NewConst(x)
	opt := &anysgd.Adam{DecayRate1: 0.5}

	for i := 0; i < s.Steps; i++ {
		score, _ := s.objective(xConst, z)
		grad := anydiff.NewGrad(z)
		score.Propagate(oneVector(c, score.Output().Len()), grad)
		grad = opt.Transform(grad)
		grad.Scale(c.MakeNumeric(-s.Rater.Rate(float64(i))))
		grad.AddToVars()
	}

	score, recon := s.objective(xConst, z)
	val := scalarFloat(score.Output())
	if !isFinite(val) {
		return nil, fmt.Errorf("latent search: non-finite anomaly score: %v", val)
	}
	return &SearchResult{
		Z:              z.Vector,
		Score:          val,
		Reconstruction: recon.Output().Copy(),
	}, nil
}

// objective evaluates the search objective
//
//	(1-lambda)*residual + lambda*discrimination
//
// at the current latent vector, returning the score and
// the reconstruction.
func (s *Searcher) objective(x *anydiff.Const, z *anydiff.Var) (anydiff.Res,
	anydiff.Res) {
	c := x.Output().Creator()
	xHat := s.Generator.Generate(z, 1)
	score := anydiff.Pool(xHat, func(xHat anydiff.Res) anydiff.Res {
		residual := ResidualLoss(x, xHat)
		dReal, realFeatures := s.Discriminator.Discriminate(x, 1)
		dFake, fakeFeatures := s.Discriminator.Discriminate(xHat, 1)
		var discrimination anydiff.Res
		if s.UseAdversarial {
			discrimination = AdversarialLoss(dReal, dFake, 1)
		} else {
			discrimination = FeatureMatchingLoss(fakeFeatures, realFeatures)
		}
		return anydiff.Add(
			anydiff.Scale(residual, c.MakeNumeric(1-s.Lambda)),
			anydiff.Scale(discrimination, c.MakeNumeric(s.Lambda)),
		)
	})
	return score, xHat
}
