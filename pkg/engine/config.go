package engine

import (
	"os"

	"github.com/patchbay/sessioncore/pkg/midi"
	"gopkg.in/yaml.v3"
)

// Config is the engine's YAML-loadable configuration: sample rate/block
// size bounds, channel count, voice pool size, and an optional CC-map
// override for the fixed table in pkg/midi/ccmap.go (spec.md §6's "the
// CC table is configurable" expansion). Grounded on the ambient config
// layer SPEC_FULL.md specifies for the teacher (gopkg.in/yaml.v3), used
// here for the first time in this tree since clapgo itself has no
// standalone config file (a host configures it via the CLAP factory).
type Config struct {
	SampleRate  float64        `yaml:"sample_rate"`
	MaxFrames   int            `yaml:"max_frames"`
	Channels    int            `yaml:"channels"`
	MaxVoices   int            `yaml:"max_voices"`
	BPM         float64        `yaml:"bpm"`
	CCOverrides map[uint8]CCOverride `yaml:"cc_overrides"`
}

// CCOverride replaces one entry of the default CC map.
type CCOverride struct {
	Kind  string `yaml:"kind"`
	Index int    `yaml:"index"`
}

// DefaultConfig returns the engine's built-in defaults.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		MaxFrames:  512,
		Channels:   2,
		MaxVoices:  128,
		BPM:        120,
	}
}

// LoadConfig reads and parses a YAML config file, starting from
// DefaultConfig and overwriting only the fields present in the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, newError(KindConfig, "LoadConfig", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, newError(KindConfig, "LoadConfig", err)
	}
	return cfg, nil
}

var ccBindingNames = map[string]midi.BindingKind{
	"fader":            midi.BindingFader,
	"mute":             midi.BindingMute,
	"smart_param":      midi.BindingSmartParam,
	"page_prev":        midi.BindingPagePrev,
	"page_next":        midi.BindingPageNext,
	"transport_stop":   midi.BindingTransportStop,
	"transport_play":   midi.BindingTransportPlay,
	"transport_loop":   midi.BindingTransportLoop,
	"transport_record": midi.BindingTransportRecord,
}

// BuildCCMap starts from midi.DefaultCCMap and applies this config's
// overrides, unknown kind names are skipped rather than erroring, since
// a config typo shouldn't take down the CC table's working entries.
func (c Config) BuildCCMap() midi.CCMap {
	m := midi.DefaultCCMap()
	for cc, override := range c.CCOverrides {
		kind, ok := ccBindingNames[override.Kind]
		if !ok {
			continue
		}
		m[cc] = midi.CCBinding{Kind: kind, Index: override.Index}
	}
	return m
}
