package cubelut

import (
	"math"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/lucasb-eyer/go-colorful"
)

// RoundTripRow summarizes inversion error for one channel of the
// round-trip forward(inverse(p)) vs p.
type RoundTripRow struct {
	Channel   string  `csv:"Channel"`
	MeanError float64 `csv:"Mean Error"`
	MaxError  float64 `csv:"Max Error"`
}

// RoundTrip pushes every grid point of the inverse LUT back through
// the forward transform and measures how far it lands from where it
// started. Returns one row per channel plus an aggregate RGB row
// using go-colorful's RGB distance.
func RoundTrip(forward, inverse *LUT) []RoundTripRow {
	fe := newEvaluator(forward)
	n := inverse.Size

	var sum, max [3]float64
	var sumRGB, maxRGB float64
	i := 0
	for b := 0; b < n; b++ {
		for g := 0; g < n; g++ {
			for r := 0; r < n; r++ {
				p := vec3{
					float64(r) / float64(n-1),
					float64(g) / float64(n-1),
					float64(b) / float64(n-1),
				}
				inv := inverse.Samples[i]
				i++
				back := fe.eval(vec3{inv.R, inv.G, inv.B})

				for c := 0; c < 3; c++ {
					d := math.Abs(back[c] - p[c])
					sum[c] += d
					if d > max[c] {
						max[c] = d
					}
				}
				want := colorful.Color{R: p[0], G: p[1], B: p[2]}
				got := colorful.Color{R: clampUnit(back[0]), G: clampUnit(back[1]), B: clampUnit(back[2])}
				d := want.DistanceRgb(got)
				sumRGB += d
				if d > maxRGB {
					maxRGB = d
				}
			}
		}
	}

	total := float64(n * n * n)
	return []RoundTripRow{
		{Channel: "R", MeanError: sum[0] / total, MaxError: max[0]},
		{Channel: "G", MeanError: sum[1] / total, MaxError: max[1]},
		{Channel: "B", MeanError: sum[2] / total, MaxError: max[2]},
		{Channel: "RGB", MeanError: sumRGB / total, MaxError: maxRGB},
	}
}

// WriteReportFile writes round-trip rows as CSV.
func WriteReportFile(path string, rows []RoundTripRow) error {
	b, err := csvutil.Marshal(rows)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
