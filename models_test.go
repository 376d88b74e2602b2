package anogan

import (
	"reflect"
	"testing"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/serializer"
)

func TestNetDiscriminatorFeatures(t *testing.T) {
	c := anyvec32.DefaultCreator{}
	_, disc := testModels(c)

	in := anydiff.NewConst(anyvec32.MakeVectorData([]float32{0.5, -1}))
	score, features := disc.Discriminate(in, 2)

	if score.Output().Len() != 2 {
		t.Errorf("expected 2 scores but got %d", score.Output().Len())
	}
	if len(features) != 2 {
		t.Fatalf("expected 2 feature layers but got %d", len(features))
	}
	if features[0].Output().Len() != 6 || features[1].Output().Len() != 6 {
		t.Error("bad feature activation sizes")
	}
}

func TestModelSerialize(t *testing.T) {
	c := anyvec32.DefaultCreator{}
	gen, disc := testModels(c)

	data, err := serializer.SerializeAny(gen, disc)
	if err != nil {
		t.Fatal(err)
	}
	var newGen *NetGenerator
	var newDisc *NetDiscriminator
	if err := serializer.DeserializeAny(data, &newGen, &newDisc); err != nil {
		t.Fatal(err)
	}

	origFC := gen.Net[0].(*anynet.FC)
	newFC := newGen.Net[0].(*anynet.FC)
	if !reflect.DeepEqual(origFC.Weights.Vector.Data(),
		newFC.Weights.Vector.Data()) {
		t.Error("generator weights differ after a round trip")
	}
	if len(newDisc.Net) != len(disc.Net) {
		t.Errorf("expected %d layers but got %d", len(disc.Net),
			len(newDisc.Net))
	}
}
