package format

import (
	"math"

	"github.com/samber/lo"
)

// Tier is a half-open [Min, Max) range with a display label
type Tier struct {
	Label string
	Min   float64
	Max   float64
}

func (t Tier) Contains(v float64) bool {
	return v >= t.Min && v < t.Max
}

// VideoTiers lists the resolution tiers, best first
var VideoTiers = []Tier{
	{"Ultra High Quality (2160p/4K)", 2160, math.Inf(1)},
	{"Quad HD Quality (1440p)", 1440, 2160},
	{"Full HD Quality (1080p)", 1080, 1440},
	{"HD Quality (720p)", 720, 1080},
	{"Standard Definition (480p)", 480, 720},
	{"Low Definition (360p and below)", math.Inf(-1), 480},
}

// AudioTiers lists the bitrate tiers, best first.
// Bitrates below 128kbps fall in no tier.
var AudioTiers = []Tier{
	{"High Quality Audio (256kbps+)", 256, math.Inf(1)},
	{"Medium Quality Audio (128–255kbps)", 128, 256},
}

func audioTierOf(abr float64) (Tier, bool) {
	return lo.Find(AudioTiers, func(t Tier) bool { return t.Contains(abr) })
}

// groupBy buckets formats into tiers using key, keeping input order inside a
// tier and dropping empty tiers
func groupBy(formats []Display, tiers []Tier, key func(Display) float64) []Group {
	groups := make([]Group, 0, len(tiers))
	for _, t := range tiers {
		members := lo.Filter(formats, func(d Display, _ int) bool {
			return t.Contains(key(d))
		})
		if len(members) == 0 {
			continue
		}
		groups = append(groups, Group{Label: t.Label, Formats: members})
	}
	return groups
}

// GroupVideo buckets video formats by height
func GroupVideo(formats []Display) []Group {
	return groupBy(formats, VideoTiers, func(d Display) float64 { return float64(d.Height) })
}

// GroupAudio buckets audio formats by bitrate
func GroupAudio(formats []Display) []Group {
	return groupBy(formats, AudioTiers, func(d Display) float64 { return d.bitrate })
}
