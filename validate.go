package anogan

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// A Validator estimates the models' anomaly-detection
// quality by running a latent search over a small
// labeled subset and accumulating an AUC metric.
//
// Searching is per-sample and inherently sequential;
// every sample needs its own optimized latent vector.
type Validator struct {
	Searcher *Searcher
	AUC      *AUC

	// Normal and Anomalous are the two test streams.
	Normal    SampleList
	Anomalous SampleList

	// TakeBatches is how many batches of size BatchSize
	// are drawn from the front of each stream.
	// Zero means one batch.
	TakeBatches int
	BatchSize   int

	// Recorder, if non-nil, receives an image triple of
	// input, reconstruction and residual per sample.
	Recorder    Recorder
	ImageWidth  int
	ImageHeight int
}

// Validate runs one validation pass and returns its AUC.
//
// The accumulator is reset first, so every pass is an
// independent estimate and best-so-far comparisons stay
// meaningful across epochs.
func (v *Validator) Validate(step int) (float64, error) {
	v.AUC.Reset()
	for i, sample := range v.subset() {
		res, err := v.Searcher.Search(sample.Input)
		if err != nil {
			return 0, essentials.AddCtx("validate", err)
		}
		v.AUC.Add(sample.Anomalous, res.Score)
		if v.Recorder != nil && v.ImageWidth > 0 {
			v.Recorder.Image("test/inoutres", step+i,
				sideBySide(sample.Input, res.Reconstruction, v.ImageWidth,
					v.ImageHeight),
				3*v.ImageWidth, v.ImageHeight)
		}
	}
	return v.AUC.Value(), nil
}

// subset gathers the validation samples: the first
// TakeBatches*BatchSize samples of the normal stream
// followed by the same number from the anomalous stream.
func (v *Validator) subset() []*Sample {
	take := v.TakeBatches
	if take == 0 {
		take = 1
	}
	count := take * v.BatchSize
	if v.BatchSize == 0 {
		count = take
	}
	var res []*Sample
	for _, list := range []SampleList{v.Normal, v.Anomalous} {
		n := count
		if list.Len() < n {
			n = list.Len()
		}
		for i := 0; i < n; i++ {
			res = append(res, list.GetSample(i))
		}
	}
	return res
}

// sideBySide concatenates the input, its reconstruction,
// and their residual image horizontally into one image
// vector of width 3*width.
func sideBySide(x, recon anyvec.Vector, width, height int) anyvec.Vector {
	c := x.Creator()
	residual := ResidualImage(anydiff.NewConst(x),
		anydiff.NewConst(recon)).Output()
	rows := make([]anyvec.Vector, 0, 3*height)
	for y := 0; y < height; y++ {
		start, end := y*width, (y+1)*width
		rows = append(rows, x.Slice(start, end), recon.Slice(start, end),
			residual.Slice(start, end))
	}
	return c.Concat(rows...)
}
