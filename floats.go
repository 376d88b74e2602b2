package anogan

import (
	"math"

	"github.com/unixpickle/anyvec"
)

// vectorData extracts the components of a vector as
// float64 values.
//
// The anyvec.NumericList type must be []float32 or
// []float64.
func vectorData(v anyvec.Vector) []float64 {
	switch data := v.Data().(type) {
	case []float64:
		return data
	case []float32:
		res := make([]float64, len(data))
		for i, x := range data {
			res[i] = float64(x)
		}
		return res
	default:
		panic("unsupported numeric type")
	}
}

// scalarFloat extracts the value of a one-component
// vector, e.g. a loss output.
func scalarFloat(v anyvec.Vector) float64 {
	return vectorData(v)[0]
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// oneVector creates a vector of n ones, suitable as an
// upstream vector for back-propagation.
func oneVector(c anyvec.Creator, n int) anyvec.Vector {
	res := c.MakeVector(n)
	res.AddScalar(c.MakeNumeric(1))
	return res
}
