package anogan

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
)

// A NoiseSampler draws batches of random latent vectors
// for the generator.
//
// Every draw is independent; a sampled batch is never
// reused.
// This is deliberately a separate type from the search
// variable used by Searcher, which is a persistent,
// optimized quantity rather than ephemeral noise.
type NoiseSampler struct {
	Creator anyvec.Creator

	// Size is the latent vector dimensionality.
	Size int
}

// Sample draws n latent vectors from a standard normal
// distribution, packed into one constant.
func (n *NoiseSampler) Sample(num int) *anydiff.Const {
	vec := n.Creator.MakeVector(n.Size * num)
	anyvec.Rand(vec, anyvec.Normal, nil)
	return anydiff.NewConst(vec)
}
