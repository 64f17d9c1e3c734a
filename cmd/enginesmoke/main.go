// The enginesmoke command is an offline harness that drives pkg/engine
// through a short scripted session and writes the rendered master output
// as raw interleaved little-endian float32 PCM — there is no OS audio device opening
// here (spec.md's non-goal), so no host audio library is wired in; this
// binary exists to exercise the render path end to end, the way a host
// eventually would.
package main

import (
	"encoding/binary"
	"flag"
	"os"

	"github.com/patchbay/sessioncore/pkg/engine"
	"github.com/patchbay/sessioncore/pkg/graph"
	"github.com/patchbay/sessioncore/pkg/host"
	"github.com/patchbay/sessioncore/pkg/midi"
	"github.com/patchbay/sessioncore/pkg/registry/builtin"
	"github.com/patchbay/sessioncore/pkg/session"
)

var (
	outPath    = flag.String("out", "smoke.pcm", "output path for raw interleaved float32 PCM")
	seconds    = flag.Float64("seconds", 2.0, "render duration in seconds")
	bpm        = flag.Float64("bpm", 120, "session tempo")
	sampleRate = flag.Float64("sample-rate", 48000, "sample rate")
	blockSize  = flag.Int("block", 256, "block size in frames")
)

func main() {
	flag.Parse()
	log := host.NewLogger("enginesmoke")

	cfg := engine.DefaultConfig()
	cfg.BPM = *bpm
	cfg.SampleRate = *sampleRate
	cfg.MaxFrames = *blockSize

	e, err := engine.New(cfg)
	if err != nil {
		log.Error("engine.New failed: %v", err)
		os.Exit(1)
	}

	if err := buildSession(e, cfg); err != nil {
		log.Error("buildSession failed: %v", err)
		os.Exit(1)
	}
	e.AttachSnapshot()

	out, err := os.Create(*outPath)
	if err != nil {
		log.Error("create output failed: %v", err)
		os.Exit(1)
	}
	defer out.Close()

	e.Session.Transport.Play()
	scriptNotes(e)

	totalFrames := int(*seconds * *sampleRate)
	rendered := 0
	var steadyTime int64
	for rendered < totalFrames {
		n := *blockSize
		if rendered+n > totalFrames {
			n = totalFrames - rendered
		}
		if n <= 0 {
			break
		}
		if err := e.Process(steadyTime, n); err != nil {
			log.Error("Process failed at frame %d: %v", rendered, err)
			os.Exit(1)
		}
		writeBlock(out, e.Master().AudioOut, n)
		steadyTime += int64(n)
		rendered += n
	}

	log.Info("rendered %d frames to %s", rendered, *outPath)
}

// buildSession wires a single instrument track (MonoSynth -> Gain ->
// master) and one scene, the minimal topology spec.md §4.4 describes per
// track collapsed to one track for the smoke test.
func buildSession(e *engine.Engine, cfg engine.Config) error {
	synth, err := e.Registry.Create(builtin.MonoSynthID)
	if err != nil {
		return err
	}
	if err := synth.Activate(cfg.SampleRate, 1, uint32(cfg.MaxFrames)); err != nil {
		return err
	}
	if err := synth.StartProcessing(); err != nil {
		return err
	}

	gain, err := e.Registry.Create(builtin.GainID)
	if err != nil {
		return err
	}
	if err := gain.Activate(cfg.SampleRate, 1, uint32(cfg.MaxFrames)); err != nil {
		return err
	}
	if err := gain.StartProcessing(); err != nil {
		return err
	}

	synthNode := e.Graph.AddNode("track0-synth", graph.KindSynth, synth)
	gainNode := e.Graph.AddNode("track0-gain", graph.KindGain, gain)
	if err := e.Graph.Connect(synthNode.ID, gainNode.ID); err != nil {
		return err
	}
	e.AddMasterNode(gainNode.ID)

	if err := e.Session.AddTrack(session.NewTrack("lead")); err != nil {
		return err
	}
	return e.Session.AddScene(session.NewScene("scene 1"))
}

// scriptNotes pushes a short C-major triad into the MIDI ring, the way a
// MIDI poll thread would, so the rendered PCM is audible rather than
// silent.
func scriptNotes(e *engine.Engine) {
	for _, key := range []uint8{60, 64, 67} {
		e.MIDIIn.Push(midi.Message{Data: [3]byte{0x90, key, 100}, Len: 3})
	}
}

func writeBlock(out *os.File, buf [][]float32, frames int) {
	channels := len(buf)
	interleaved := make([]float32, frames*channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			interleaved[i*channels+ch] = buf[ch][i]
		}
	}
	_ = binary.Write(out, binary.LittleEndian, interleaved)
}
