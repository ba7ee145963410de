package mandelbrot

import (
	"fmt"
	"sort"
)

var presets = map[string]Settings{
	// Binary image on the square window with the doubled update and the |a+b| test
	"classic": {
		Bounds:        Square,
		Coloring:      Silhouette,
		Divergence:    SumAbs,
		DoubleStep:    true,
		EscapeRadius:  16,
		MaxIterations: 100,
	},
	"grayscale": {
		Bounds:        Framed,
		Divergence:    Modulus,
		EscapeRadius:  16,
		GrayScale:     true,
		MaxIterations: 100,
	},
	"random": {
		Bounds:        Framed,
		Coloring:      RandomPalette,
		Divergence:    Taxicab,
		EscapeRadius:  16,
		MaxIterations: 100,
	},
	"twotone": {
		Bounds:        Framed,
		Coloring:      TwoTone,
		Divergence:    Modulus,
		EscapeRadius:  16,
		MaxIterations: 100,
	},
	"ultrafractal": {
		Bounds:        Framed,
		Coloring:      UltraFractal,
		Divergence:    Modulus,
		EscapeRadius:  2,
		MaxIterations: 100,
	},
}

// Preset returns a verified copy of the named settings
func Preset(name string) (Settings, error) {
	s, ok := presets[name]
	if !ok {
		return Settings{}, fmt.Errorf("unknown preset %q (have %v)", name, PresetNames())
	}
	if err := s.Verify(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
