package media

// ProbeInfo holds the properties of a media file reported by the engine's
// probe: container-level metadata plus the bitrates needed for planning.
type ProbeInfo struct {
	Duration     float64 // seconds
	Size         int64   // bytes, as reported by the container
	BitRate      int64   // overall bits/sec
	AudioBitRate int64   // first audio stream bits/sec, 0 if none reported
	FormatName   string
}

// AudioBitRateOrDefault returns the probed audio bitrate, falling back to
// def when the stream did not report one.
func (p *ProbeInfo) AudioBitRateOrDefault(def int64) int64 {
	if p.AudioBitRate > 0 {
		return p.AudioBitRate
	}
	return def
}
