// Command mnist trains an anomaly detector on MNIST
// digits, treating one digit class as anomalous.
// The training stream contains only normal digits; the
// held-out class appears only in the validation stream.
package main

import (
	"log"

	"github.com/unixpickle/anogan"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/mnist"
	"github.com/unixpickle/rip"
)

const (
	anomalousDigit = 7
	imageSize      = 28
	logDir         = "log"
)

func main() {
	log.Println("Setting up...")

	creator := anyvec32.CurrentCreator()

	hps := anogan.Hyperparams{
		anogan.HyperLearningRate:     0.0002,
		anogan.HyperLatentVectorSize: 32,
		anogan.HyperEpochs:           30,
		anogan.HyperStepLogFrequency: 100,
		anogan.HyperBatchSize:        64,
	}
	if err := hps.Require(anogan.HyperLearningRate,
		anogan.HyperLatentVectorSize, anogan.HyperEpochs,
		anogan.HyperBatchSize); err != nil {
		log.Fatal(err)
	}
	latentSize := hps.Int(anogan.HyperLatentVectorSize, 0)
	learningRate := hps.Float(anogan.HyperLearningRate, 0)

	generator := &anogan.NetGenerator{Net: anynet.Net{
		anynet.NewFC(creator, latentSize, 256),
		anynet.ReLU,
		anynet.NewFC(creator, 256, imageSize*imageSize),
		anynet.Sigmoid,
	}}
	discriminator := &anogan.NetDiscriminator{Net: anynet.Net{
		anynet.NewFC(creator, imageSize*imageSize, 256),
		anynet.ReLU,
		anynet.NewFC(creator, 256, 1),
	}}
	if err := anogan.ValidateModels(creator, generator, discriminator,
		latentSize, imageSize*imageSize); err != nil {
		log.Fatal(err)
	}

	log.Println("Loading data...")
	training := filterSamples(mnist.LoadTrainingDataSet().Samples, creator, false)
	testSamples := mnist.LoadTestingDataSet().Samples
	normalTest := filterSamples(testSamples, creator, false)
	anomalousTest := filterSamples(testSamples, creator, true)

	noise := &anogan.NoiseSampler{Creator: creator, Size: latentSize}
	trainer := anogan.NewTrainer(generator, discriminator, noise, learningRate)

	searcher := anogan.NewSearcher(generator, discriminator, latentSize,
		learningRate)
	// The full 500 steps per sample makes validation very
	// slow on a CPU-only run.
	searcher.Steps = 100

	recorder := &anogan.LogRecorder{Dir: logDir + "/images"}
	selector := anogan.NewSelector(logDir)
	validator := &anogan.Validator{
		Searcher:    searcher,
		AUC:         anogan.NewAUC(anogan.DefaultNumThresholds),
		Normal:      normalTest,
		Anomalous:   anomalousTest,
		BatchSize:   hps.Int(anogan.HyperBatchSize, 0),
		Recorder:    recorder,
		ImageWidth:  imageSize,
		ImageHeight: imageSize,
	}
	loop := &anogan.Loop{
		Trainer:          trainer,
		Samples:          training,
		BatchSize:        hps.Int(anogan.HyperBatchSize, 0),
		Epochs:           hps.Int(anogan.HyperEpochs, 0),
		StepLogFrequency: hps.Int(anogan.HyperStepLogFrequency, 0),
		ValidateEvery:    10,
		Validator:        validator,
		Selector:         selector,
		Recorder:         recorder,
		ImageWidth:       imageSize,
		ImageHeight:      imageSize,
	}

	log.Println("Press ctrl+c once to stop...")
	if err := loop.Run(rip.NewRIP().Chan()); err != nil {
		log.Fatal(err)
	}
	log.Printf("Best validation AUC: %f", selector.Best())
}

// filterSamples splits a sample set by the anomalous
// digit class and packs the kept images into vectors.
func filterSamples(samples []mnist.Sample, c anyvec.Creator,
	anomalous bool) anogan.SliceSampleList {
	var res anogan.SliceSampleList
	for _, sample := range samples {
		if (sample.Label == anomalousDigit) != anomalous {
			continue
		}
		vec := c.MakeVectorData(c.MakeNumericList(sample.Intensities))
		res = append(res, &anogan.Sample{Input: vec, Anomalous: anomalous})
	}
	return res
}
