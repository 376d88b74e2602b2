package anogan

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var g NetGenerator
	serializer.RegisterTypedDeserializer(g.SerializerType(), DeserializeNetGenerator)
	var d NetDiscriminator
	serializer.RegisterTypedDeserializer(d.SerializerType(), DeserializeNetDiscriminator)
}

// A Generator maps batches of latent vectors to batches
// of synthetic samples.
type Generator interface {
	Generate(z anydiff.Res, n int) anydiff.Res
	Parameters() []*anydiff.Var
}

// A Discriminator maps batches of samples to realism
// scores (logits, one per sample) and to the
// intermediate feature activations that produced them.
//
// The feature list must be non-empty and in a consistent
// order across calls, since feature matching compares
// activations index by index.
type Discriminator interface {
	Discriminate(x anydiff.Res, n int) (score anydiff.Res, features []anydiff.Res)
	Parameters() []*anydiff.Var
}

// NetGenerator is a Generator backed by an anynet.Net.
type NetGenerator struct {
	Net anynet.Net
}

// DeserializeNetGenerator attempts to deserialize a
// NetGenerator.
func DeserializeNetGenerator(d []byte) (*NetGenerator, error) {
	var net anynet.Net
	if err := serializer.DeserializeAny(d, &net); err != nil {
		return nil, essentials.AddCtx("deserialize NetGenerator", err)
	}
	return &NetGenerator{Net: net}, nil
}

// Generate applies the network to a batch of latent
// vectors.
func (n *NetGenerator) Generate(z anydiff.Res, num int) anydiff.Res {
	return n.Net.Apply(z, num)
}

// Parameters returns the parameters of the network.
func (n *NetGenerator) Parameters() []*anydiff.Var {
	return n.Net.Parameters()
}

// SerializerType returns the unique ID used to serialize
// a NetGenerator with the serializer package.
func (n *NetGenerator) SerializerType() string {
	return "github.com/unixpickle/anogan.NetGenerator"
}

// Serialize serializes the NetGenerator.
func (n *NetGenerator) Serialize() ([]byte, error) {
	return serializer.SerializeAny(n.Net)
}

// NetDiscriminator is a Discriminator backed by an
// anynet.Net.
// The output of every layer but the last is exposed as a
// feature activation.
type NetDiscriminator struct {
	Net anynet.Net
}

// DeserializeNetDiscriminator attempts to deserialize a
// NetDiscriminator.
func DeserializeNetDiscriminator(d []byte) (*NetDiscriminator, error) {
	var net anynet.Net
	if err := serializer.DeserializeAny(d, &net); err != nil {
		return nil, essentials.AddCtx("deserialize NetDiscriminator", err)
	}
	return &NetDiscriminator{Net: net}, nil
}

// Discriminate applies the network to a batch of samples
// and records the hidden-layer activations.
func (n *NetDiscriminator) Discriminate(x anydiff.Res, num int) (anydiff.Res,
	[]anydiff.Res) {
	features := make([]anydiff.Res, 0, len(n.Net))
	out := x
	for i, layer := range n.Net {
		out = layer.Apply(out, num)
		if i+1 < len(n.Net) {
			features = append(features, out)
		}
	}
	return out, features
}

// Parameters returns the parameters of the network.
func (n *NetDiscriminator) Parameters() []*anydiff.Var {
	return n.Net.Parameters()
}

// SerializerType returns the unique ID used to serialize
// a NetDiscriminator with the serializer package.
func (n *NetDiscriminator) SerializerType() string {
	return "github.com/unixpickle/anogan.NetDiscriminator"
}

// Serialize serializes the NetDiscriminator.
func (n *NetDiscriminator) Serialize() ([]byte, error) {
	return serializer.SerializeAny(n.Net)
}
