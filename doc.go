// Package anogan implements training and evaluation
// utilities for GAN-based anomaly detection, in the
// style of AnoGAN.
//
// A Generator and Discriminator pair is trained with the
// usual adversarial game on normal data only.
// At evaluation time, a gradient search over the latent
// space finds the code that best reconstructs an input
// sample; the final search loss is the sample's anomaly
// score.
// Periodically during training, the anomaly scores over a
// small labeled validation subset are fed to an AUC
// metric, and the best-scoring models are checkpointed.
package anogan
