package anogan

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec"
)

// A Sample is one image with its anomaly label.
// Training streams contain normal samples only, so their
// labels are all false.
type Sample struct {
	Input anyvec.Vector

	// Anomalous is true for anomalous test samples.
	Anomalous bool
}

// A SampleList is an anysgd.SampleList that produces
// labeled image samples.
type SampleList interface {
	anysgd.SampleList

	GetSample(idx int) *Sample
}

// A SliceSampleList is a concrete SampleList with
// predetermined samples.
type SliceSampleList []*Sample

// Len returns the number of samples.
func (s SliceSampleList) Len() int {
	return len(s)
}

// Swap swaps two samples.
func (s SliceSampleList) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// Slice copies a sub-slice of the list.
func (s SliceSampleList) Slice(i, j int) anysgd.SampleList {
	return append(SliceSampleList{}, s[i:j]...)
}

// GetSample returns the sample at the index.
func (s SliceSampleList) GetSample(idx int) *Sample {
	return s[idx]
}

// A Batch stores a batch of images in a packed format.
type Batch struct {
	Inputs    *anydiff.Const
	Anomalous []bool
	Num       int
}
