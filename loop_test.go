package anogan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
)

type recordingSink struct {
	scalars map[string]int
	images  map[string]int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		scalars: map[string]int{},
		images:  map[string]int{},
	}
}

func (r *recordingSink) Scalar(name string, step int, value float64) {
	r.scalars[name]++
}

func (r *recordingSink) Image(name string, step int, img anyvec.Vector,
	width, height int) {
	r.images[name]++
}

func testLoop(t *testing.T, dir string) (*Loop, *recordingSink) {
	c := anyvec32.DefaultCreator{}
	gen, disc := testModels(c)
	trainer := NewTrainer(gen, disc, &NoiseSampler{Creator: c, Size: 2}, 0.001)

	makeList := func(values []float64, anomalous bool) SliceSampleList {
		var res SliceSampleList
		for _, v := range values {
			res = append(res, &Sample{
				Input:     c.MakeVectorData(c.MakeNumericList([]float64{v})),
				Anomalous: anomalous,
			})
		}
		return res
	}

	searcher := NewSearcher(gen, disc, 2, 0.01)
	searcher.Steps = 5

	sink := newRecordingSink()
	validator := &Validator{
		Searcher:  searcher,
		AUC:       NewAUC(100),
		Normal:    makeList([]float64{0.1, 0.2}, false),
		Anomalous: makeList([]float64{0.8, 0.9}, true),
		BatchSize: 2,
	}
	loop := &Loop{
		Trainer:          trainer,
		Samples:          makeList([]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, false),
		BatchSize:        2,
		Epochs:           4,
		StepLogFrequency: 1,
		ValidateEvery:    2,
		Validator:        validator,
		Selector:         NewSelector(dir),
		Recorder:         sink,
	}
	return loop, sink
}

func TestLoopRun(t *testing.T) {
	loop, sink := testLoop(t, t.TempDir())

	if err := loop.Run(nil); err != nil {
		t.Fatal(err)
	}

	// 4 epochs of 3 batches each.
	if loop.Trainer.StepCount != 12 {
		t.Errorf("expected 12 steps but got %d", loop.Trainer.StepCount)
	}
	// Validation on epochs 0 and 2.
	if sink.scalars["auc"] != 2 {
		t.Errorf("expected 2 AUC records but got %d", sink.scalars["auc"])
	}
	if sink.scalars["d_loss"] == 0 || sink.scalars["g_loss"] == 0 {
		t.Error("expected periodic loss records")
	}
	if loop.Selector.Best() < 0 {
		t.Error("selector never saw a validation AUC")
	}
	if _, _, err := ReadBestAUC(loop.Selector.LogDir); err != nil {
		t.Errorf("missing best checkpoint: %s", err)
	}
}

func TestLoopEarlyStop(t *testing.T) {
	loop, _ := testLoop(t, t.TempDir())

	done := make(chan struct{})
	close(done)
	if err := loop.Run(done); err != nil {
		t.Fatal(err)
	}
	if loop.Trainer.StepCount != 0 {
		t.Errorf("expected no steps but got %d", loop.Trainer.StepCount)
	}
}

func TestLoopCheckpointError(t *testing.T) {
	loop, _ := testLoop(t, t.TempDir())

	// A regular file where the log dir should go makes
	// every checkpoint write fail.
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, nil, 0644); err != nil {
		t.Fatal(err)
	}
	loop.Selector = NewSelector(blocked)
	c := anyvec32.DefaultCreator{}
	gen, disc := testModels(c)
	loop.Selector.Consider(0.5, []float64{0, 1}, gen, disc)

	done := make(chan struct{})
	close(done)
	if err := loop.Run(done); err == nil {
		t.Error("a failed checkpoint write should surface as an error")
	}
}
