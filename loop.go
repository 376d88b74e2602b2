package anogan

import (
	"errors"
	"log"

	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

// A Loop drives training: it iterates training steps
// over epochs, keeps running loss averages, emits
// periodic log records, and periodically validates and
// checkpoints the best models.
type Loop struct {
	Trainer *Trainer

	// Samples is the normal-only training stream.
	Samples SampleList

	BatchSize int
	Epochs    int

	// StepLogFrequency is how many steps pass between
	// scalar/image records.
	// Zero disables periodic records.
	StepLogFrequency int

	// ValidateEvery is the epoch period of validation
	// passes.
	// Zero disables validation.
	ValidateEvery int

	Validator *Validator
	Selector  *Selector

	// Recorder, if non-nil, receives the periodic
	// records.
	Recorder Recorder

	// ImageWidth and ImageHeight, if non-zero, enable
	// image records of generated samples.
	ImageWidth  int
	ImageHeight int
}

// Run trains for the configured number of epochs,
// validating every ValidateEvery epochs and handing the
// resulting AUC to the Selector.
//
// Run returns early, without error, when the done
// channel is closed.
// It waits for any pending checkpoint write before
// returning, and reports a checkpoint write failure as
// its error.
func (l *Loop) Run(done <-chan struct{}) (err error) {
	if l.Samples.Len() == 0 {
		return errors.New("run training loop: empty sample list")
	}
	dMean := &Mean{}
	gMean := &Mean{}
	defer func() {
		if l.Selector == nil {
			return
		}
		l.Selector.Wait()
		if err == nil {
			err = l.Selector.Err()
		}
	}()

	for epoch := 0; epoch < l.Epochs; epoch++ {
		anysgd.Shuffle(l.Samples)
		for i := 0; i < l.Samples.Len(); i += l.batchSize() {
			select {
			case <-done:
				return nil
			default:
			}
			j := i + l.batchSize()
			if j > l.Samples.Len() {
				j = l.Samples.Len()
			}
			batch, err := l.Trainer.Fetch(l.Samples.Slice(i, j))
			if err != nil {
				return essentials.AddCtx("run training loop", err)
			}
			res, err := l.Trainer.Step(batch.(*Batch))
			if err != nil {
				return essentials.AddCtx("run training loop", err)
			}
			dMean.Add(res.DiscLoss)
			gMean.Add(res.GenLoss)
			l.logStep(res, dMean, gMean)
		}
		log.Printf("epoch %d completed", epoch)
		dMean.Reset()
		gMean.Reset()

		if l.Validator == nil || l.ValidateEvery == 0 ||
			epoch%l.ValidateEvery != 0 {
			continue
		}
		step := l.Trainer.StepCount
		auc, err := l.Validator.Validate(step)
		if err != nil {
			return essentials.AddCtx("run training loop", err)
		}
		if l.Recorder != nil {
			l.Recorder.Scalar("auc", step, auc)
		}
		if l.Selector != nil {
			l.Selector.Consider(auc, l.Validator.AUC.Thresholds(),
				l.serializableGenerator(), l.serializableDiscriminator())
		}
	}
	return nil
}

// logStep emits the periodic scalar and image records,
// keyed by the global step counter.
// The loss scalars are the epoch's running averages.
func (l *Loop) logStep(res *StepResult, dMean, gMean *Mean) {
	step := l.Trainer.StepCount
	if l.Recorder == nil || l.StepLogFrequency == 0 ||
		step%l.StepLogFrequency != 0 {
		return
	}
	l.Recorder.Scalar("learning_rate", step, l.Trainer.Rater.Rate(float64(step)))
	l.Recorder.Scalar("d_loss", step, dMean.Value())
	l.Recorder.Scalar("g_loss", step, gMean.Value())
	if l.ImageWidth > 0 && l.ImageHeight > 0 {
		size := l.ImageWidth * l.ImageHeight
		l.Recorder.Image("generated", step, res.Generated.Slice(0, size),
			l.ImageWidth, l.ImageHeight)
	}
}

func (l *Loop) batchSize() int {
	if l.BatchSize == 0 {
		return l.Samples.Len()
	}
	return l.BatchSize
}

func (l *Loop) serializableGenerator() serializer.Serializer {
	return l.Trainer.Generator.(serializer.Serializer)
}

func (l *Loop) serializableDiscriminator() serializer.Serializer {
	return l.Trainer.Discriminator.(serializer.Serializer)
}
