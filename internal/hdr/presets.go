package hdr

// DefaultPresets returns the three shipped enhancement presets. The set
// is open-ended: configuration may define additional presets.
func DefaultPresets() map[string]Preset {
	return map[string]Preset{
		"performance": {
			CLAHEClipLimit:  2.0,
			CLAHEGridSize:   GridSize{Width: 4, Height: 4},
			Saturation:      1.05,
			SharpenStrength: 0.3,
			ToneCurve:       ToneCurveLinear,
			Denoise:         false,
		},
		"balanced": {
			CLAHEClipLimit:  3.0,
			CLAHEGridSize:   GridSize{Width: 8, Height: 8},
			Saturation:      1.10,
			SharpenStrength: 0.6,
			ToneCurve:       ToneCurveSCurve,
			Denoise:         true,
			DenoiseStrength: 5,
		},
		"quality": {
			CLAHEClipLimit:  4.0,
			CLAHEGridSize:   GridSize{Width: 16, Height: 16},
			Saturation:      1.15,
			SharpenStrength: 0.8,
			ToneCurve:       ToneCurveAdaptive,
			Denoise:         true,
			DenoiseStrength: 10,
		},
	}
}
