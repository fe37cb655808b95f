package condense

import "github.com/welpo/shuku/internal/media"

// NoTrack marks an absent track selection in an EncodePlan.
const NoTrack = -1

// PlanInput gathers everything the plan builder assembles: the merged
// timeline, track selections, chapter partition, and codec configuration.
type PlanInput struct {
	Source               string
	Segments             []Segment
	TotalDuration        float64
	AudioTrackID         int // NoTrack when no audio selected
	SubtitleTrackID      int // NoTrack when no embedded track selected
	ExternalSubtitlePath string
	ChaptersKept         []media.Chapter
	ChaptersRemoved      []media.Chapter
	Codec                CodecParams
}

// EncodePlan is the immutable, fully resolved description of what to
// produce, handed to the encoder. Chapters carry condensed-timeline times.
type EncodePlan struct {
	Source               string
	Segments             []Segment
	AudioTrackID         int
	SubtitleTrackID      int
	ExternalSubtitlePath string
	Chapters             []media.Chapter
	ChaptersRemoved      []media.Chapter
	Codec                CodecParams
	TotalDuration        float64
	CondensedDuration    float64
}

// BuildPlan assembles an EncodePlan. Surviving chapters are re-based onto
// the condensed timeline; a chapter that falls entirely inside removed
// time collapses and is dropped. An empty segment list is refused with
// ErrEmptyPlan: there is nothing to encode.
func BuildPlan(in PlanInput) (EncodePlan, error) {
	if len(in.Segments) == 0 {
		return EncodePlan{}, Wrap(ErrEmptyPlan, "plan", "no segments to encode", nil)
	}
	plan := EncodePlan{
		Source:               in.Source,
		Segments:             append([]Segment(nil), in.Segments...),
		AudioTrackID:         in.AudioTrackID,
		SubtitleTrackID:      in.SubtitleTrackID,
		ExternalSubtitlePath: in.ExternalSubtitlePath,
		ChaptersRemoved:      append([]media.Chapter(nil), in.ChaptersRemoved...),
		Codec:                in.Codec,
		TotalDuration:        in.TotalDuration,
		CondensedDuration:    CondensedDuration(in.Segments),
	}
	for _, ch := range in.ChaptersKept {
		start := RemapTime(in.Segments, ch.Start)
		end := RemapTime(in.Segments, ch.End)
		if end <= start {
			continue
		}
		plan.Chapters = append(plan.Chapters, media.Chapter{
			Title: ch.Title,
			Start: start,
			End:   end,
		})
	}
	return plan, nil
}

// HasAudio reports whether the plan selects an audio track.
func (p EncodePlan) HasAudio() bool {
	return p.AudioTrackID != NoTrack
}

// Summary holds the reporting statistics derivable from a plan. The
// engine exposes numbers; formatting belongs to the caller.
type Summary struct {
	TotalDuration     float64
	CondensedDuration float64
	SegmentCount      int
	ChaptersRemoved   int
}

// Summary derives the reporting statistics for this plan.
func (p EncodePlan) Summary() Summary {
	return Summary{
		TotalDuration:     p.TotalDuration,
		CondensedDuration: p.CondensedDuration,
		SegmentCount:      len(p.Segments),
		ChaptersRemoved:   len(p.ChaptersRemoved),
	}
}

// Ratio returns condensed over total duration, or 0 when the total is
// unknown.
func (s Summary) Ratio() float64 {
	if s.TotalDuration <= 0 {
		return 0
	}
	return s.CondensedDuration / s.TotalDuration
}
