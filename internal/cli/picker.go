package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guiyumin/vgrab/internal/core/format"
	"github.com/guiyumin/vgrab/internal/core/i18n"
	"github.com/guiyumin/vgrab/internal/core/video"
)

var (
	pickerSelectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	pickerDimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pickerHelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pickerContainerStyle = lipgloss.NewStyle().Padding(1, 2)
)

type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var pickerKeys = pickerKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// pickerRow is one line of the picker: a section/group heading or a format
type pickerRow struct {
	heading string
	format  *format.Display
	section bool
}

type pickerModel struct {
	title  string
	rows   []pickerRow
	cursor int // index into rows, always on a format row
	chosen *format.Display
	t      *i18n.Translations
}

func newPickerModel(resp video.Response, t *i18n.Translations) pickerModel {
	m := pickerModel{title: resp.Title, t: t, cursor: -1}

	add := func(title string, groups []format.Group) {
		if len(groups) == 0 {
			return
		}
		m.rows = append(m.rows, pickerRow{heading: title, section: true})
		for _, g := range groups {
			m.rows = append(m.rows, pickerRow{heading: g.Label})
			for i := range g.Formats {
				m.rows = append(m.rows, pickerRow{format: &g.Formats[i]})
			}
		}
	}
	add(t.Formats.VideoAudio, resp.FormatGroups.VideoFormats)
	add(t.Formats.AudioOnly, resp.FormatGroups.AudioFormats)

	m.cursor = m.next(-1, 1)
	return m
}

// next returns the index of the next format row from i in direction dir,
// or i when there is none
func (m pickerModel) next(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(m.rows); j += dir {
		if m.rows[j].format != nil {
			return j
		}
	}
	return i
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, pickerKeys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, pickerKeys.Up):
		m.cursor = m.next(m.cursor, -1)
	case key.Matches(keyMsg, pickerKeys.Down):
		m.cursor = m.next(m.cursor, 1)
	case key.Matches(keyMsg, pickerKeys.Select):
		if m.cursor >= 0 {
			m.chosen = m.rows[m.cursor].format
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.chosen != nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(m.title))

	if m.cursor < 0 {
		fmt.Fprintf(&b, "%s\n", m.t.Formats.NoFormats)
		return pickerContainerStyle.Render(b.String())
	}

	for i, row := range m.rows {
		switch {
		case row.section:
			fmt.Fprintf(&b, "%s\n", sectionStyle.Render(row.heading))
		case row.format == nil:
			fmt.Fprintf(&b, "  %s\n", groupStyle.Render(row.heading))
		case i == m.cursor:
			fmt.Fprintf(&b, "  %s\n", pickerSelectedStyle.Render("> "+row.format.Label))
		default:
			fmt.Fprintf(&b, "    %s\n", pickerDimStyle.Render(row.format.Label))
		}
	}

	fmt.Fprintf(&b, "\n%s", pickerHelpStyle.Render(m.t.Formats.PickHint))
	return pickerContainerStyle.Render(b.String())
}

// runPicker lets the user choose one format. Returns nil when they quit.
func runPicker(resp video.Response, lang string) (*format.Display, error) {
	p := tea.NewProgram(newPickerModel(resp, i18n.T(lang)))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(pickerModel).chosen, nil
}
