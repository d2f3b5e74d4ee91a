package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyCustom DifficultyPreset = "custom"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyCustom}
}

// ParsePreset validates a preset name.
func ParsePreset(name string) (DifficultyPreset, error) {
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", name)
}

// Describe returns a one-line summary for menus.
func (p DifficultyPreset) Describe() string {
	switch p {
	case DifficultyEasy:
		return "3 disks, 3 lives, no clock"
	case DifficultyNormal:
		return "5 disks, 3 lives, no clock"
	case DifficultyHard:
		return "7 disks, 1 life, 5 minute clock"
	}
	return "settings from config file and flags"
}

// ApplyPreset overwrites disk count, lives and time limit for preset.
// The custom preset leaves s untouched.
func ApplyPreset(s *Settings, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		s.DiskCapacity = 3
		s.Lives = 3
		s.TimeLimit = 0
	case DifficultyNormal:
		s.DiskCapacity = 5
		s.Lives = 3
		s.TimeLimit = 0
	case DifficultyHard:
		s.DiskCapacity = 7
		s.Lives = 1
		s.TimeLimit = 300
	}
}
