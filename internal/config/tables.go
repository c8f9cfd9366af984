package config

import (
	"fmt"
	"sort"

	"github.com/spf13/viper"

	"github.com/ericosh007/generativeperception/internal/errors"
	"github.com/ericosh007/generativeperception/internal/hdr"
	"github.com/ericosh007/generativeperception/internal/telemetry"
)

// File-facing shapes for the [presets.*] and [mappings.*] sections.

type presetSection struct {
	ClaheClip       float64 `mapstructure:"clahe_clip"`
	ClaheGrid       []int   `mapstructure:"clahe_grid"`
	SaturationBoost float64 `mapstructure:"saturation_boost"`
	Sharpening      float64 `mapstructure:"sharpening"`
	ToneCurve       string  `mapstructure:"tone_curve"`
	Denoise         bool    `mapstructure:"denoise"`
	DenoiseStrength int     `mapstructure:"denoise_strength"`
}

type mappingSection struct {
	Policy string                   `mapstructure:"policy"`
	Points []map[string]interface{} `mapstructure:"points"`
}

// loadPresets merges [presets.*] sections from the config file over the
// shipped preset set.
func loadPresets(v *viper.Viper, presets map[string]hdr.Preset) error {
	errFactory := errors.New()

	if !v.IsSet("presets") {
		return nil
	}

	raw := map[string]presetSection{}
	if err := v.UnmarshalKey("presets", &raw); err != nil {
		return errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	for name, section := range raw {
		curve, ok := hdr.ParseToneCurve(section.ToneCurve)
		if !ok {
			return errFactory.WithData(hdr.ErrInvalidPreset, fmt.Sprintf(
				"preset %q: unknown tone curve %q", name, section.ToneCurve))
		}
		if len(section.ClaheGrid) != 2 || section.ClaheGrid[0] <= 0 || section.ClaheGrid[1] <= 0 {
			return errFactory.WithData(hdr.ErrInvalidPreset, fmt.Sprintf(
				"preset %q: clahe_grid must be two positive integers", name))
		}

		presets[name] = hdr.Preset{
			CLAHEClipLimit:  section.ClaheClip,
			CLAHEGridSize:   hdr.GridSize{Width: section.ClaheGrid[0], Height: section.ClaheGrid[1]},
			Saturation:      section.SaturationBoost,
			SharpenStrength: section.Sharpening,
			ToneCurve:       curve,
			Denoise:         section.Denoise,
			DenoiseStrength: section.DenoiseStrength,
		}
	}
	return nil
}

// loadMappings merges [mappings.*] sections over the shipped tables.
// Each point is a table with an "at" breakpoint plus one entry per
// parameter field it pins, e.g.:
//
//	[[mappings.ambient_light.points]]
//	at = 500.0
//	exposure = 1.2
//	contrast = 1.0
func loadMappings(v *viper.Viper, mappings hdr.MappingSet) error {
	errFactory := errors.New()

	if !v.IsSet("mappings") {
		return nil
	}

	raw := map[string]mappingSection{}
	if err := v.UnmarshalKey("mappings", &raw); err != nil {
		return errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	for name, section := range raw {
		kind := telemetry.Kind(name)

		policy := hdr.PolicyLinear
		switch section.Policy {
		case "", "linear":
		case "nearest":
			policy = hdr.PolicyNearest
		default:
			return errFactory.WithData(errors.ErrInvalidConfig, fmt.Sprintf(
				"mapping %q: unknown policy %q", name, section.Policy))
		}

		points := make([]hdr.Breakpoint, 0, len(section.Points))
		for i, entry := range section.Points {
			at, ok := toFloat(entry["at"])
			if !ok {
				return errFactory.WithData(errors.ErrInvalidConfig, fmt.Sprintf(
					"mapping %q: point %d is missing its breakpoint", name, i))
			}

			effect := hdr.Effect{}
			for key, value := range entry {
				if key == "at" {
					continue
				}
				f, ok := toFloat(value)
				if !ok {
					return errFactory.WithData(errors.ErrInvalidConfig, fmt.Sprintf(
						"mapping %q: point %d field %q is not numeric", name, i, key))
				}
				effect[hdr.Target(key)] = f
			}
			points = append(points, hdr.Breakpoint{Value: at, Effect: effect})
		}

		sort.Slice(points, func(i, j int) bool { return points[i].Value < points[j].Value })

		table := hdr.MappingTable{Kind: kind, Policy: policy, Points: points}
		if err := table.Validate(); err != nil {
			return err
		}
		mappings[kind] = table
	}
	return nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
