package anogan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/unixpickle/anyvec/anyvec32"
)

func TestLogRecorderImage(t *testing.T) {
	dir := t.TempDir()
	r := &LogRecorder{Dir: dir}

	c := anyvec32.DefaultCreator{}
	img := c.MakeVectorData(c.MakeNumericList([]float64{0, 0.5, 1, 2}))
	r.Image("test/inoutres", 7, img, 2, 2)

	path := filepath.Join(dir, "test_inoutres_7.png")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("missing image file: %s", err)
	}
}

func TestLogRecorderNoDir(t *testing.T) {
	r := &LogRecorder{}
	c := anyvec32.DefaultCreator{}
	// Should be a no-op rather than an error.
	r.Image("x", 0, c.MakeVector(4), 2, 2)
}
