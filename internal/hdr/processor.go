package hdr

import (
	"math"
	"time"

	"github.com/ericosh007/generativeperception/internal/logger"
	"github.com/ericosh007/generativeperception/internal/telemetry"
)

// Processor runs the twelve-stage enhancement pipeline. It owns the
// current parameters, the lookup table bank and the latency accumulator;
// at most one Process call may be in flight per instance.
type Processor struct {
	baseline Params
	params   Params
	mappings MappingSet
	bank     *TableBank
	acc      Accumulator
	preset   string
}

// Option adjusts processor construction.
type Option func(*Processor)

// WithMappings replaces the shipped telemetry mapping tables.
func WithMappings(m MappingSet) Option {
	return func(p *Processor) {
		p.mappings = m
	}
}

// WithKnee overrides the highlight compression knee point.
func WithKnee(knee float64) Option {
	return func(p *Processor) {
		p.bank = NewTableBank(knee)
	}
}

// NewProcessor builds a processor for the named preset. Unknown preset
// identifiers leave parameters at the hard-coded defaults.
func NewProcessor(presetID string, presets map[string]Preset, opts ...Option) *Processor {
	baseline := DefaultParams()
	if preset, ok := presets[presetID]; ok {
		baseline = baseline.WithPreset(preset)
	} else if presetID != "" {
		logger.Warn().Str("preset", presetID).Msg("Unknown preset, using defaults")
	}

	p := &Processor{
		baseline: baseline,
		params:   baseline,
		mappings: DefaultMappings(),
		bank:     NewTableBank(DefaultKnee),
		preset:   presetID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Params returns the parameters currently in effect.
func (p *Processor) Params() Params {
	return p.params
}

// Preset returns the preset identifier the processor was built with.
func (p *Processor) Preset() string {
	return p.preset
}

// Metrics returns the running latency accumulator state.
func (p *Processor) Metrics() (frames uint64, averageMs float64) {
	return p.acc.Count(), p.acc.Average()
}

// Process enhances one frame. The input buffer is never mutated; a new
// frame of identical dimensions is returned together with this frame's
// metrics. A nil snapshot runs all stages with the parameters left from
// the previous update.
func (p *Processor) Process(frame *Frame, snapshot telemetry.Snapshot) (*Frame, FrameMetrics, error) {
	if err := frame.Validate(); err != nil {
		return nil, FrameMetrics{}, err
	}

	start := time.Now()

	if snapshot != nil {
		p.params = Interpolate(p.baseline, p.mappings, snapshot)
	}
	params := p.params

	// 1. Gamma decode into a perceptually-linear working space so the
	// multiplicative stages behave physically.
	out := frame.Clone()
	applyLUT(out, &p.bank.GammaDecode)

	// 2. White balance in linear space; green is never touched.
	if !params.WhiteBalance.Neutral() {
		applyWhiteBalance(out, params.WhiteBalance)
	}

	// 3-5. Luminance-isolated local contrast and exposure: equalize and
	// scale only the Y plane, then recompose with untouched chroma.
	y, cb, cr := splitYCbCr(out)
	y = equalizePlane(y, out.Width, out.Height, params.CLAHEClipLimit, params.CLAHEGridSize)
	if params.Exposure != 1.0 {
		for i, v := range y {
			y[i] = clampByte(math.Round(float64(v) * params.Exposure))
		}
	}
	mergeYCbCr(out, y, cb, cr)

	// 6. Tone curve.
	switch params.ToneCurve {
	case ToneCurveSCurve:
		applyLUT(out, &p.bank.SCurve)
	case ToneCurveAdaptive:
		curve := adaptiveToneCurve(out)
		applyLUT(out, &curve)
	case ToneCurveLinear:
		// no-op
	}

	// 7. Saturation boost.
	if params.Saturation != 1.0 {
		scaleSaturation(out, params.Saturation)
	}

	// 8. Detail enhancement.
	if params.SharpenStrength > 0 {
		unsharpMask(out, params.SharpenStrength)
	}

	// 9. Highlight/shadow adjustment.
	if params.HighlightShift != 0 || params.ShadowShift != 0 {
		adjustHighlightsShadows(out, params.HighlightShift, params.ShadowShift)
	}

	// 10. Denoise.
	if params.DenoiseStrength > 0 {
		denoise(out, params.DenoiseStrength)
	}

	// 11. Gamma encode back to display-referred range.
	applyLUT(out, &p.bank.GammaEncode)

	// 12. Metrics.
	elapsed := float64(time.Since(start)) / float64(time.Millisecond)
	p.acc.Record(elapsed)

	metrics := FrameMetrics{
		ProcessTimeMs:   elapsed,
		AverageTimeMs:   p.acc.Average(),
		Exposure:        params.Exposure,
		Contrast:        params.Contrast,
		Saturation:      params.Saturation,
		SharpenStrength: params.SharpenStrength,
	}
	return out, metrics, nil
}

// applyWhiteBalance scales the red and blue channels by their gains.
func applyWhiteBalance(f *Frame, wb WhiteBalance) {
	n := f.pixelCount()
	for i := 0; i < n; i++ {
		b := float64(f.Pix[i*channels]) * wb.Blue
		r := float64(f.Pix[i*channels+2]) * wb.Red
		f.Pix[i*channels] = clampByte(math.Round(b))
		f.Pix[i*channels+2] = clampByte(math.Round(r))
	}
}

// adaptiveToneCurve builds a histogram-equalization curve from the
// frame's own luminance distribution. This is the one per-frame
// statistical computation in an otherwise table-driven pipeline.
func adaptiveToneCurve(f *Frame) [lutSize]uint8 {
	lum := luminancePlane(f)

	var hist [lutSize]int
	for _, v := range lum {
		hist[v]++
	}

	var curve [lutSize]uint8
	total := len(lum)
	cum := 0
	for i := range hist {
		cum += hist[i]
		curve[i] = clampByte(math.Round(float64(cum) / float64(total) * 255.0))
	}
	return curve
}
