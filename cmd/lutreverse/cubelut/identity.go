package cubelut

import "github.com/lucasb-eyer/go-colorful"

// Identity returns a LUT of the given size mapping every grid point to
// itself.
func Identity(size int) *LUT {
	lut := &LUT{
		Title:     "Identity LUT",
		Size:      size,
		DomainMin: [3]float64{0, 0, 0},
		DomainMax: [3]float64{1, 1, 1},
		Samples:   make([]colorful.Color, 0, size*size*size),
	}
	for b := 0; b < size; b++ {
		for g := 0; g < size; g++ {
			for r := 0; r < size; r++ {
				lut.Samples = append(lut.Samples, colorful.Color{
					R: float64(r) / float64(size-1),
					G: float64(g) / float64(size-1),
					B: float64(b) / float64(size-1),
				})
			}
		}
	}
	return lut
}

// WriteIdentityFile writes an identity LUT to path. Used to synthesize
// a placeholder input when the default input file is absent.
func WriteIdentityFile(path string, size int) error {
	return Identity(size).WriteFile(path)
}
