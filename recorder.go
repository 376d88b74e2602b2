package anogan

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/unixpickle/anyvec"
)

// A Recorder accepts scalar and image records keyed by a
// global step number.
// It is the sink for training curves and for inspection
// images.
type Recorder interface {
	Scalar(name string, step int, value float64)
	Image(name string, step int, img anyvec.Vector, width, height int)
}

// A LogRecorder logs scalars with the standard log
// package and writes images as grayscale PNG files under
// a directory.
type LogRecorder struct {
	// Dir is where image files are written.
	// If it is empty, images are dropped.
	Dir string
}

// Scalar logs the scalar record.
func (l *LogRecorder) Scalar(name string, step int, value float64) {
	log.Printf("step %d: %s=%f", step, name, value)
}

// Image writes the image as a PNG file named after the
// record and step.
// Component values are clipped between 0 and 1.
// Write failures are logged and dropped, since a lost
// inspection image should not abort a run.
func (l *LogRecorder) Image(name string, step int, img anyvec.Vector,
	width, height int) {
	if l.Dir == "" {
		return
	}
	file := fmt.Sprintf("%s_%d.png", strings.ReplaceAll(name, "/", "_"), step)
	path := filepath.Join(l.Dir, file)
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		log.Printf("record image %s: %s", name, err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Printf("record image %s: %s", name, err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, grayImage(width, height, img)); err != nil {
		log.Printf("record image %s: %s", name, err)
	}
}

// A NopRecorder discards all records.
type NopRecorder struct{}

// Scalar does nothing.
func (n NopRecorder) Scalar(name string, step int, value float64) {}

// Image does nothing.
func (n NopRecorder) Image(name string, step int, img anyvec.Vector,
	width, height int) {
}

// grayImage converts a vector of intensities into a
// grayscale image, clipping values between 0 and 1.
func grayImage(width, height int, v anyvec.Vector) image.Image {
	data := vectorData(v)
	if len(data) != width*height {
		panic("incorrect tensor size")
	}
	res := image.NewGray(image.Rect(0, 0, width, height))
	idx := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := data[idx]
			if val < 0 {
				val = 0
			} else if val > 1 {
				val = 1
			}
			res.SetGray(x, y, color.Gray{Y: uint8(val*0xff + 0.5)})
			idx++
		}
	}
	return res
}
