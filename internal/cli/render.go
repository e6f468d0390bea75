package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guiyumin/vgrab/internal/core/format"
	"github.com/guiyumin/vgrab/internal/core/i18n"
	"github.com/guiyumin/vgrab/internal/core/video"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	groupStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	bestStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// renderVideo formats a resolved URL for the terminal
func renderVideo(resp video.Response, t *i18n.Translations) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n  %s\n", titleStyle.Render(resp.Title))
	fmt.Fprintf(&b, "  %s\n\n", metaStyle.Render(fmt.Sprintf("%s: %s • %s: %s • %s: %s",
		t.Formats.Author, resp.Author,
		t.Formats.Duration, resp.Duration,
		t.Formats.Views, resp.Views,
	)))

	groups := resp.FormatGroups
	if len(groups.VideoFormats) == 0 && len(groups.AudioFormats) == 0 {
		fmt.Fprintf(&b, "  %s\n\n", t.Formats.NoFormats)
		return b.String()
	}

	if groups.BestVideo != nil || groups.BestAudio != nil {
		fmt.Fprintf(&b, "  %s\n", sectionStyle.Render(t.Formats.Recommended))
		for _, best := range []*format.Display{groups.BestVideo, groups.BestAudio} {
			if best != nil {
				fmt.Fprintf(&b, "    %s %s\n", bestStyle.Render("★"), best.Label)
			}
		}
		b.WriteString("\n")
	}

	width := idColumnWidth(groups)
	writeGroups(&b, t.Formats.VideoAudio, groups.VideoFormats, width)
	writeGroups(&b, t.Formats.AudioOnly, groups.AudioFormats, width)

	return b.String()
}

func writeGroups(b *strings.Builder, title string, groups []format.Group, width int) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s\n", sectionStyle.Render(title))
	for _, g := range groups {
		fmt.Fprintf(b, "    %s\n", groupStyle.Render(g.Label))
		for _, f := range g.Formats {
			fmt.Fprintf(b, "      %s  %s\n", idStyle.Render(runewidth.FillRight(f.ID, width)), f.Label)
		}
	}
	b.WriteString("\n")
}

// idColumnWidth is the display width of the widest format ID
func idColumnWidth(r format.Result) int {
	width := 0
	for _, groups := range [][]format.Group{r.VideoFormats, r.AudioFormats} {
		for _, f := range format.Formats(groups) {
			width = max(width, runewidth.StringWidth(f.ID))
		}
	}
	return width
}
