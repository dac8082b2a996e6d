package config

var Presets = map[string]*Config{
	"classic": {
		Form: "linear", A: 1, B: -1, C: 3,
		X0: 0, Y0: 1, Target: 3.5, H: 0.5,
		Order: "rk4", Reference: 1.597,
	},
	"relaxation": {
		Form: "linear", A: 2, B: 1, C: 3,
		X0: 0, Y0: 1, Target: 2.0, H: 0.1,
		Order: "rk4", Reference: 2.2642411176571153,
	},
	"growth": {
		Form: "separable",
		X0:   0, Y0: 1, Target: 1.0, H: 0.1,
		Order: "rk4", Reference: 1.6487212707001282,
	},
	"coarse": {
		Form: "linear", A: 2, B: 1, C: 3,
		X0: 0, Y0: 1, Target: 2.0, H: 0.5,
		Order: "rk2", Reference: 2.2642411176571153,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
