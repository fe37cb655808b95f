package condense

// QualityKind tags how a codec interprets its quality value. The kind is
// resolved against the codec family at configuration load, never inside
// the plan builder.
type QualityKind int

const (
	// QualityIgnored applies to stream copy and uncompressed PCM.
	QualityIgnored QualityKind = iota
	// QualityCRF is a constant rate factor (x264/x265/VP9 style).
	QualityCRF
	// QualityBitrate is a target bitrate such as "48k".
	QualityBitrate
	// QualityVBRLevel is a variable-bitrate scale position (MP3 V0-V9,
	// AAC q:a, FLAC compression level).
	QualityVBRLevel
)

// Quality is a codec quality setting with its resolved interpretation.
type Quality struct {
	Kind  QualityKind
	Value string
}

// AudioParams describes how segment audio is produced.
type AudioParams struct {
	Codec     string
	Quality   Quality
	ExtraArgs map[string]string
}

// Copy reports whether the audio stream is copied unmodified.
func (a AudioParams) Copy() bool {
	return a.Codec == "copy"
}

// VideoParams describes how segment video is produced, when video output
// is enabled at all.
type VideoParams struct {
	Enabled   bool
	Codec     string
	Quality   Quality
	ExtraArgs map[string]string
}

// Copy reports whether the video stream is copied unmodified.
func (v VideoParams) Copy() bool {
	return v.Codec == "copy"
}

// CodecParams is the full codec configuration snapshot carried by a plan.
type CodecParams struct {
	Audio AudioParams
	Video VideoParams
}
