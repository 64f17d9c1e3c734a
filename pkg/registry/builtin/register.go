package builtin

import (
	"github.com/patchbay/sessioncore/pkg/plugin"
	"github.com/patchbay/sessioncore/pkg/registry"
)

// DefaultMaxVoices is the voice count MonoSynth registers with when no
// override is given.
const DefaultMaxVoices = 128

// RegisterAll adds every built-in processor to the given registry.
// Called once at engine startup (pkg/engine).
func RegisterAll(r *registry.Registry) error {
	if err := r.Register(Info(), func() plugin.Processor {
		return NewMonoSynth(DefaultMaxVoices)
	}); err != nil {
		return err
	}
	if err := r.Register(gainInfo(), func() plugin.Processor {
		return NewGain()
	}); err != nil {
		return err
	}
	if err := r.Register(eqInfo(), func() plugin.Processor {
		return NewEQ()
	}); err != nil {
		return err
	}
	return nil
}
