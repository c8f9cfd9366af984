package hdr

import "math"

const (
	lutSize = 256

	// DefaultKnee is the brightness level above which highlight
	// compression begins.
	DefaultKnee = 0.7

	displayGamma    = 2.2
	sCurveSteepness = 12.0
)

// TableBank holds the four precomputed per-channel transfer curves.
// Built once per processor configuration; immutable afterwards, so a
// bank is safely shared read-only across processor instances.
type TableBank struct {
	GammaDecode   [lutSize]uint8
	GammaEncode   [lutSize]uint8
	SCurve        [lutSize]uint8
	HighlightKnee [lutSize]uint8
}

// NewTableBank builds the lookup tables. A per-pixel table lookup keeps
// the hot path free of transcendental evaluation. Knee values outside
// (0,1) fall back to DefaultKnee.
func NewTableBank(knee float64) *TableBank {
	if knee <= 0 || knee >= 1 {
		knee = DefaultKnee
	}

	bank := &TableBank{}
	for i := 0; i < lutSize; i++ {
		x := float64(i) / 255.0

		bank.GammaDecode[i] = quantize(math.Pow(x, displayGamma))
		bank.GammaEncode[i] = quantize(math.Pow(x, 1.0/displayGamma))
		bank.SCurve[i] = quantize(sigmoid(sCurveSteepness * (x - 0.5)))

		if x <= knee {
			bank.HighlightKnee[i] = quantize(x)
		} else {
			// Reinhard-style roll-off above the knee; continuous in
			// value at x == knee.
			bank.HighlightKnee[i] = quantize(knee + (x-knee)/(1+(x-knee)))
		}
	}

	return bank
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// quantize maps a normalized value to a byte with rounding and clamping.
func quantize(v float64) uint8 {
	scaled := math.Round(v * 255.0)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
