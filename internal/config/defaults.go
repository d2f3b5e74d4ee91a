package config

import (
	_ "embed"
)

//go:embed defaults/hanoi.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// DefaultSettings returns the hard-coded defaults, used when even the
// embedded file cannot be parsed.
func DefaultSettings() Settings {
	return Settings{
		DiskCapacity:  3,
		RenderPlain:   false,
		InterfaceMode: "graphics",
		TimeLimit:     0,
		Lives:         3,
		Hold: HoldSeconds{
			Win:     4,
			Loss:    13,
			Warning: 3,
			Error:   3,
			Info:    0,
		},
	}
}
