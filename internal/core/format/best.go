package format

import (
	"cmp"
	"slices"

	"github.com/guiyumin/vgrab/internal/core/extractor"
)

// compareVideo orders combined rows best first: height, then fps (30 when
// unknown), then audio bitrate.
func compareVideo(a, b extractor.RawFormat) int {
	if c := cmp.Compare(b.Height.OrElse(0), a.Height.OrElse(0)); c != 0 {
		return c
	}
	if c := cmp.Compare(b.FPS.OrElse(defaultFPS), a.FPS.OrElse(defaultFPS)); c != 0 {
		return c
	}
	return cmp.Compare(b.ABR.OrElse(0), a.ABR.OrElse(0))
}

func compareAudio(a, b extractor.RawFormat) int {
	return cmp.Compare(b.ABR.OrElse(0), a.ABR.OrElse(0))
}

// SortVideo ranks combined rows in place. Ties keep input order.
func SortVideo(rows []extractor.RawFormat) {
	slices.SortStableFunc(rows, compareVideo)
}

// SortAudio ranks audio-only rows in place by bitrate. Ties keep input order.
func SortAudio(rows []extractor.RawFormat) {
	slices.SortStableFunc(rows, compareAudio)
}

// PickVideo returns the first row of the ranked video list, or nil
func PickVideo(ranked []Display) *Display {
	if len(ranked) == 0 {
		return nil
	}
	best := ranked[0]
	return &best
}

// PickAudio returns the first row of the ranked audio list when it belongs
// to an audio tier, or nil. Audio below the lowest tier is never recommended
// since it does not appear in the grouped output, even when it is the only
// audio stream. Keeping the pick a member of the groups matches the web
// frontend, which reads it from the first audio group.
func PickAudio(ranked []Display) *Display {
	if len(ranked) == 0 {
		return nil
	}
	best := ranked[0]
	if _, ok := audioTierOf(best.bitrate); !ok {
		return nil
	}
	return &best
}
