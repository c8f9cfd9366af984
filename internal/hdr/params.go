// Package hdr implements the telemetry-adaptive frame-processing engine:
// the mapping from telemetry snapshots to enhancement parameters and the
// ordered per-frame transform pipeline that consumes them.
package hdr

// ToneCurve selects the brightness mapping applied uniformly per channel.
type ToneCurve int

const (
	ToneCurveLinear ToneCurve = iota
	ToneCurveSCurve
	ToneCurveAdaptive
)

func (c ToneCurve) String() string {
	switch c {
	case ToneCurveLinear:
		return "linear"
	case ToneCurveSCurve:
		return "s_curve"
	case ToneCurveAdaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

// ParseToneCurve resolves a curve identifier from configuration.
func ParseToneCurve(s string) (ToneCurve, bool) {
	switch s {
	case "linear":
		return ToneCurveLinear, true
	case "s_curve":
		return ToneCurveSCurve, true
	case "adaptive":
		return ToneCurveAdaptive, true
	default:
		return ToneCurveLinear, false
	}
}

// WhiteBalance holds per-channel multiplicative gains. Green stays at 1.0;
// only red and blue are ever adjusted by telemetry.
type WhiteBalance struct {
	Red   float64
	Green float64
	Blue  float64
}

// Neutral reports whether the gains are an identity transform.
func (w WhiteBalance) Neutral() bool {
	return w.Red == 1.0 && w.Green == 1.0 && w.Blue == 1.0
}

// GridSize is the CLAHE tile grid dimensions.
type GridSize struct {
	Width  int
	Height int
}

// Params is the full set of enhancement parameters consumed by the
// pipeline. Owned by a single processor between frames; recomputed from
// the preset baseline whenever a telemetry snapshot arrives.
type Params struct {
	Exposure float64
	// Contrast is derived from telemetry and reported in metrics; no
	// pipeline stage consumes it yet. Local contrast comes from the
	// equalization controls below.
	Contrast        float64
	Saturation      float64
	SharpenStrength float64
	HighlightShift  float64
	ShadowShift     float64
	WhiteBalance    WhiteBalance
	ToneCurve       ToneCurve
	DenoiseStrength int
	CLAHEClipLimit  float64
	CLAHEGridSize   GridSize
}

// DefaultParams returns the hard-coded parameter defaults used when no
// preset matches.
func DefaultParams() Params {
	return Params{
		Exposure:        1.0,
		Contrast:        1.0,
		Saturation:      1.1,
		SharpenStrength: 0.6,
		HighlightShift:  0.0,
		ShadowShift:     0.0,
		WhiteBalance:    WhiteBalance{Red: 1.0, Green: 1.0, Blue: 1.0},
		ToneCurve:       ToneCurveSCurve,
		DenoiseStrength: 5,
		CLAHEClipLimit:  3.0,
		CLAHEGridSize:   GridSize{Width: 8, Height: 8},
	}
}

// Preset is a named baseline selecting enhancement parameters before any
// telemetry adjustment is layered on top. Loaded once at startup and
// never mutated.
type Preset struct {
	CLAHEClipLimit  float64
	CLAHEGridSize   GridSize
	Saturation      float64
	SharpenStrength float64
	ToneCurve       ToneCurve
	Denoise         bool
	DenoiseStrength int
}

// WithPreset overlays a preset's fields onto p and returns the result.
func (p Params) WithPreset(pr Preset) Params {
	p.CLAHEClipLimit = pr.CLAHEClipLimit
	p.CLAHEGridSize = pr.CLAHEGridSize
	p.Saturation = pr.Saturation
	p.SharpenStrength = pr.SharpenStrength
	p.ToneCurve = pr.ToneCurve
	if pr.Denoise {
		p.DenoiseStrength = pr.DenoiseStrength
	} else {
		p.DenoiseStrength = 0
	}
	return p
}

const (
	maxGain     = 3.0
	maxStrength = 1.0
	maxShift    = 1.0
)

// Clamped pins every gain and strength to its physically sane range so
// that interpolated values can never overflow a channel downstream.
func (p Params) Clamped() Params {
	p.Exposure = clampFloat(p.Exposure, 0, maxGain)
	p.Contrast = clampFloat(p.Contrast, 0, maxGain)
	p.Saturation = clampFloat(p.Saturation, 0, maxGain)
	p.SharpenStrength = clampFloat(p.SharpenStrength, 0, maxStrength)
	p.HighlightShift = clampFloat(p.HighlightShift, -maxShift, maxShift)
	p.ShadowShift = clampFloat(p.ShadowShift, -maxShift, maxShift)
	p.WhiteBalance.Red = clampFloat(p.WhiteBalance.Red, 0, maxGain)
	p.WhiteBalance.Green = clampFloat(p.WhiteBalance.Green, 0, maxGain)
	p.WhiteBalance.Blue = clampFloat(p.WhiteBalance.Blue, 0, maxGain)
	if p.DenoiseStrength < 0 {
		p.DenoiseStrength = 0
	}
	return p
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
