package format

import (
	"strings"

	"github.com/guiyumin/vgrab/internal/core/extractor"
)

const (
	defaultFPS        = 30
	defaultVideoExt   = "mp4"
	defaultAudioExt   = "mp3"
	labelSeparator    = " • "
	audioQualityToken = "Audio"
)

// QualityTier maps a vertical resolution to its short tier label.
// Heights below 480 (and unknown heights, passed as 0) are "360p".
func QualityTier(height int) string {
	switch {
	case height >= 2160:
		return "4K"
	case height >= 1440:
		return "1440p"
	case height >= 1080:
		return "1080p"
	case height >= 720:
		return "720p"
	case height >= 480:
		return "480p"
	default:
		return "360p"
	}
}

// AudioQuality maps an audio bitrate in kbps to High, Medium or Low
func AudioQuality(abr float64) string {
	switch {
	case abr >= 256:
		return "High"
	case abr >= 128:
		return "Medium"
	default:
		return "Low"
	}
}

// Normalize converts one playable raw descriptor into a Display.
// Rows with a video track get a resolution tier label; audio-only rows get
// an audio quality label.
func Normalize(f extractor.RawFormat) Display {
	if f.HasVideo() {
		return normalizeVideo(f)
	}
	return normalizeAudio(f)
}

func normalizeVideo(f extractor.RawFormat) Display {
	height := f.Height.OrElse(0)
	tier := QualityTier(height)
	ext := f.Ext.OrElse(defaultVideoExt)
	abr := f.ABR.OrElse(0)

	segments := []string{
		tier,
		formatNumber(f.FPS.OrElse(defaultFPS)) + "fps",
		strings.ToUpper(ext),
	}
	if abr > 0 {
		segments = append(segments, formatNumber(abr)+"kbps Audio")
	}
	size, sizeKnown := fileSizeOf(f)
	if sizeKnown {
		segments = append(segments, size)
	}

	d := Display{
		ID:           f.ID,
		Quality:      tier,
		MimeType:     "video/" + ext,
		URL:          f.URL.OrEmpty(),
		HasAudio:     f.HasAudio(),
		HasVideo:     true,
		FileSize:     size,
		VideoQuality: f.Note,
		Label:        strings.Join(segments, labelSeparator),
		Ext:          ext,
		Height:       height,
		bitrate:      abr,
	}
	if fps, ok := f.FPS.Get(); ok {
		d.FPS = &fps
	}
	if abr > 0 {
		d.AudioBitrate = formatNumber(abr) + "kbps"
	}
	d.Kind = KindFromFlags(d.HasAudio, d.HasVideo)
	return d
}

func normalizeAudio(f extractor.RawFormat) Display {
	ext := f.Ext.OrElse(defaultAudioExt)
	abr := f.ABR.OrElse(0)

	segments := []string{
		AudioQuality(abr) + " Quality",
		strings.ToUpper(ext),
	}
	if abr > 0 {
		segments = append(segments, formatNumber(abr)+"kbps")
	}
	size, sizeKnown := fileSizeOf(f)
	if sizeKnown {
		segments = append(segments, size)
	}

	d := Display{
		ID:       f.ID,
		Quality:  audioQualityToken,
		MimeType: "audio/" + ext,
		URL:      f.URL.OrEmpty(),
		HasAudio: f.HasAudio(),
		HasVideo: false,
		FileSize: size,
		Label:    strings.Join(segments, labelSeparator),
		Ext:      ext,
		bitrate:  abr,
	}
	if abr > 0 {
		d.AudioBitrate = formatNumber(abr) + "kbps"
	}
	d.Kind = KindFromFlags(d.HasAudio, d.HasVideo)
	return d
}

// fileSizeOf treats a zero byte count as unknown
func fileSizeOf(f extractor.RawFormat) (string, bool) {
	if size, ok := f.FileSize.Get(); ok && size > 0 {
		return FileSize(size), true
	}
	return UnknownSize, false
}
