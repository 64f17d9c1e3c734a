package plugin

import (
	"errors"
	"io"

	"github.com/patchbay/sessioncore/pkg/param"
)

// Common errors
var (
	ErrNotImplemented     = errors.New("not implemented")
	ErrInvalidHost        = errors.New("invalid host")
	ErrInitFailed         = errors.New("initialization failed")
	ErrInvalidSampleRate  = errors.New("invalid sample rate")
)

// Info represents plugin metadata
type Info struct {
	ID          string
	Name        string
	Vendor      string
	URL         string
	Version     string
	Description string
	Manual      string
	Support     string
	Features    []string
}

// Processor is the uniform contract every instrument and effect
// implements, whether built in (pkg/registry/builtin) or loaded
// externally in the future. It generalizes the teacher's cgo/C-ABI
// plugin surface into a pure-Go interface with no host pointer in the
// hot path.
type Processor interface {
	// Lifecycle
	Init() error
	Destroy()
	Activate(sampleRate float64, minFrames, maxFrames uint32) error
	Deactivate()
	StartProcessing() error
	StopProcessing()
	Reset()

	// Processing
	Process(steadyTime int64, framesCount uint32, audioIn, audioOut [][]float32, events interface{}) ProcessResult

	// Extensions
	GetExtension(id string) interface{}
	OnMainThread()

	// Info
	GetPluginID() string
	GetPluginInfo() Info

	// Parameters (spec's params.count/get_info/get_value/set_value,
	// the main-thread half of parameter automation; the audio-thread
	// half is the events.In/events.Out stream Process already takes).
	ParamCount() int
	ParamInfo(index int) (param.Info, error)
	ParamValue(id uint32) (float64, error)
	SetParamValue(id uint32, value float64) error

	// State (spec's state.save/state.load)
	SaveState(w io.Writer) error
	LoadState(r io.Reader) error
}

// ProcessResult represents the result of audio processing
type ProcessResult int

const (
	ProcessResultError   ProcessResult = -1
	ProcessContinue      ProcessResult = 0
	ProcessContinueIfNotQuiet ProcessResult = 1
	ProcessTail          ProcessResult = 2
	ProcessSleep         ProcessResult = 3
)

// Common plugin features
const (
	FeatureInstrument      = "instrument"
	FeatureAudioEffect     = "audio-effect"
	FeatureNoteEffect      = "note-effect"
	FeatureNoteDetector    = "note-detector"
	FeatureAnalyzer        = "analyzer"
	FeatureSynthesizer     = "synthesizer"
	FeatureSampler         = "sampler"
	FeatureDrum            = "drum"
	FeatureFilter          = "filter"
	FeaturePhaser          = "phaser"
	FeatureEqualizer       = "equalizer"
	FeatureDeesser         = "de-esser"
	FeaturePhaseVocoder    = "phase-vocoder"
	FeatureGranular        = "granular"
	FeatureFrequencyShifter = "frequency-shifter"
	FeaturePitchShifter    = "pitch-shifter"
	FeatureDistortion      = "distortion"
	FeatureTransientShaper = "transient-shaper"
	FeatureCompressor      = "compressor"
	FeatureExpander        = "expander"
	FeatureGate            = "gate"
	FeatureLimiter         = "limiter"
	FeatureFlanger         = "flanger"
	FeatureChorus          = "chorus"
	FeatureDelay           = "delay"
	FeatureReverb          = "reverb"
	FeatureTremolo         = "tremolo"
	FeatureGlitch          = "glitch"
	FeatureUtility         = "utility"
	FeaturePitchCorrection = "pitch-correction"
	FeatureRestoration     = "restoration"
	FeatureMultiEffects    = "multi-effects"
	FeatureMixing          = "mixing"
	FeatureMastering       = "mastering"
	FeatureMono            = "mono"
	FeatureStereo          = "stereo"
	FeatureSurround        = "surround"
	FeatureAmbisonic       = "ambisonic"
)