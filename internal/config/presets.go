package config

import "sort"

// Rates is a named (b, k) pair.
type Rates struct {
	B           float64
	K           float64
	Description string
}

var Presets = map[string]Rates{
	"azuay":     {B: 0.3, K: 0.1, Description: "reference outbreak, R0 = 3"},
	"slow":      {B: 0.15, K: 0.1, Description: "slow spread, R0 = 1.5"},
	"fast":      {B: 0.6, K: 0.1, Description: "fast spread, R0 = 6"},
	"contained": {B: 0.1, K: 0.2, Description: "sub-critical, R0 = 0.5"},
}

func GetPreset(name string) (Rates, bool) {
	r, ok := Presets[name]
	return r, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
