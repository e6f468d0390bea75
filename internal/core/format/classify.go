package format

import (
	"strings"

	"github.com/guiyumin/vgrab/internal/core/extractor"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// isAuxiliary reports rows yt-dlp lists that are not media (storyboards, mhtml sprites)
func isAuxiliary(f extractor.RawFormat) bool {
	if strings.Contains(strings.ToLower(f.Note), "storyboard") {
		return true
	}
	return strings.EqualFold(f.Ext.OrEmpty(), "mhtml")
}

// IsCombined reports a playable descriptor carrying both audio and video
func IsCombined(f extractor.RawFormat) bool {
	return f.Playable() && f.HasVideo() && f.HasAudio()
}

// IsAudioOnly reports a playable audio-only descriptor with a known bitrate
func IsAudioOnly(f extractor.RawFormat) bool {
	return f.Playable() && !f.HasVideo() && f.HasAudio() && f.ABR.OrElse(0) > 0
}

// Classify splits raw descriptors into combined video+audio rows and
// audio-only rows. Rows without a URL, auxiliary rows, video-only rows and
// audio rows without a bitrate are dropped. Both results come back ranked
// best first (see SortVideo and SortAudio).
func Classify(raw []extractor.RawFormat) (video, audio []extractor.RawFormat) {
	usable := lo.Filter(raw, func(f extractor.RawFormat, _ int) bool {
		return f.Playable() && !isAuxiliary(f)
	})

	video = lo.Filter(usable, func(f extractor.RawFormat, _ int) bool { return IsCombined(f) })
	audio = lo.Filter(usable, func(f extractor.RawFormat, _ int) bool { return IsAudioOnly(f) })

	if dropped := len(raw) - len(video) - len(audio); dropped > 0 {
		log.WithFields(log.Fields{
			"total":   len(raw),
			"video":   len(video),
			"audio":   len(audio),
			"dropped": dropped,
		}).Debug("classified formats")
	}

	SortVideo(video)
	SortAudio(audio)
	return video, audio
}
