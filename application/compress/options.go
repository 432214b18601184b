package compress

// Defaults for encoding orchestration knobs. They can all be overridden via
// Options (and, through the CLI, via the yaml config).
const (
	// DefaultSizeTolerance allows the output to exceed its byte target by 1%
	DefaultSizeTolerance = 0.01
	// DefaultContainerMargin reserves a share of the bit budget for muxing overhead
	DefaultContainerMargin = 0.05
	// DefaultAudioBitRate is the ceiling for re-encoded audio, bits/sec
	DefaultAudioBitRate = 128_000
	// DefaultMaxAttempts bounds the encode-verify-retry loop
	DefaultMaxAttempts = 3
	// DefaultPreset is the encoder speed/quality preset
	DefaultPreset = "medium"
)

// Options tunes the reduction and merge services.
type Options struct {
	// SizeTolerance is the fraction by which output may exceed the target size
	SizeTolerance float64
	// ContainerMargin is the fraction of the bit budget reserved for the container
	ContainerMargin float64
	// AudioBitRate is the audio bitrate ceiling in bits/sec
	AudioBitRate int64
	// MaxAttempts bounds how many times an overshooting encode is retried
	MaxAttempts int
	// Preset is the encoder preset name
	Preset string
}

// withDefaults fills zero-valued fields with the package defaults
func (o Options) withDefaults() Options {
	if o.SizeTolerance == 0 {
		o.SizeTolerance = DefaultSizeTolerance
	}
	if o.ContainerMargin == 0 {
		o.ContainerMargin = DefaultContainerMargin
	}
	if o.AudioBitRate == 0 {
		o.AudioBitRate = DefaultAudioBitRate
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Preset == "" {
		o.Preset = DefaultPreset
	}
	return o
}
