package hdr

import "github.com/ericosh007/generativeperception/internal/telemetry"

// Interpolate derives enhancement parameters from a telemetry snapshot.
// Pure function of its inputs: the baseline is copied, the snapshot is
// only read. Kinds without a mapping table, and fields a table does not
// define, stay at the baseline value. Out-of-range readings clamp to the
// nearest breakpoint, so bad sensor data never fails.
func Interpolate(baseline Params, mappings MappingSet, snapshot telemetry.Snapshot) Params {
	params := baseline
	for kind, reading := range snapshot {
		table, ok := mappings[kind]
		if !ok || len(table.Points) == 0 {
			continue
		}
		applyEffect(&params, table.resolve(reading.Value))
	}
	return params.Clamped()
}

func applyEffect(p *Params, effect Effect) {
	for field, value := range effect {
		switch field {
		case TargetExposure:
			p.Exposure = value
		case TargetContrast:
			p.Contrast = value
		case TargetSharpen:
			p.SharpenStrength = value
		case TargetRedGain:
			p.WhiteBalance.Red = value
			p.WhiteBalance.Green = 1.0
		case TargetBlueGain:
			p.WhiteBalance.Blue = value
			p.WhiteBalance.Green = 1.0
		}
	}
}
