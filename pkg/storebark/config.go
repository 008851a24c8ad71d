package storebark

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// DefaultCategories returns the built-in category configuration: revenue
// pushes on by default, everything else opt-in. Callers receive a fresh map
// they may mutate.
func DefaultCategories() map[Category]CategoryConfig {
	return map[Category]CategoryConfig{
		CategoryRevenue: {Enabled: true, Sound: "calypso", Group: "Revenue"},
		CategoryRefund:  {Enabled: false, Sound: "minuet", Group: "Refund"},
		CategoryRisk:    {Enabled: false, Sound: "chord", Group: "Risk"},
		CategoryStatus:  {Enabled: false, Sound: "popcorn", Group: "Status"},
	}
}

// CategoryOverride is one category's slice of an override layer. Nil fields
// inherit the value from the layer below; set fields replace it wholesale.
type CategoryOverride struct {
	Enabled *bool   `json:"enabled"`
	Icon    *string `json:"icon"`
	Sound   *string `json:"sound"`
	Group   *string `json:"group"`
}

// ResolveCategories merges the layered category configuration into the
// effective per-category settings. Layers, later wins:
//
//  1. built-in defaults
//  2. globalJSON, a JSON-encoded override blob (a parse failure is logged
//     and the layer skipped, it never aborts resolution)
//  3. appOverride, the per-tenant override
//  4. sound overrides: a category-specific sound wins outright, otherwise
//     defaultSound replaces the sound from the earlier layers
//
// Resolution is a pure function of its inputs aside from the error log.
func ResolveCategories(logger zerolog.Logger, globalJSON string, appOverride map[Category]CategoryOverride, defaultSound string, categorySounds map[Category]string) map[Category]CategoryConfig {
	resolved := DefaultCategories()

	if globalJSON != "" {
		var global map[Category]CategoryOverride
		if err := json.Unmarshal([]byte(globalJSON), &global); err != nil {
			logger.Error().Err(err).Msg("notification config blob is not valid JSON, layer skipped")
		} else {
			applyOverrides(resolved, global)
		}
	}

	applyOverrides(resolved, appOverride)

	for _, cat := range Categories {
		cfg := resolved[cat]
		if sound := categorySounds[cat]; sound != "" {
			cfg.Sound = sound
		} else if defaultSound != "" {
			cfg.Sound = defaultSound
		}
		resolved[cat] = cfg
	}

	return resolved
}

func applyOverrides(dst map[Category]CategoryConfig, overrides map[Category]CategoryOverride) {
	for cat, o := range overrides {
		cfg, ok := dst[cat]
		if !ok {
			// Unknown category names never add new categories.
			continue
		}
		if o.Enabled != nil {
			cfg.Enabled = *o.Enabled
		}
		if o.Icon != nil {
			cfg.Icon = *o.Icon
		}
		if o.Sound != nil {
			cfg.Sound = *o.Sound
		}
		if o.Group != nil {
			cfg.Group = *o.Group
		}
		dst[cat] = cfg
	}
}

// ParseCategoryOverrides decodes a JSON override blob into its typed form.
// Used for per-tenant override blobs where, unlike the global layer, the
// caller decides how to react to a malformed value.
func ParseCategoryOverrides(blob string) (map[Category]CategoryOverride, error) {
	var overrides map[Category]CategoryOverride
	if err := json.Unmarshal([]byte(blob), &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}
