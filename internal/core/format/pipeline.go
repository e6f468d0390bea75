package format

import (
	"github.com/guiyumin/vgrab/internal/core/extractor"
	"github.com/samber/lo"
)

// Process runs the full pipeline over one extraction's raw descriptors:
// classify and rank, normalize, group by tier, pick the recommended rows.
// It holds no state and is safe to call concurrently.
func Process(raw []extractor.RawFormat) Result {
	videoRaw, audioRaw := Classify(raw)

	video := lo.Map(videoRaw, func(f extractor.RawFormat, _ int) Display { return Normalize(f) })
	audio := lo.Map(audioRaw, func(f extractor.RawFormat, _ int) Display { return Normalize(f) })

	return Result{
		BestVideo:    PickVideo(video),
		BestAudio:    PickAudio(audio),
		VideoFormats: GroupVideo(video),
		AudioFormats: GroupAudio(audio),
	}
}
