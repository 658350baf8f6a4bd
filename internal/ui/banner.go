package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/zy/internal/config"
	"github.com/muurk/zy/internal/version"
)

// Row is one key/value line of the banner.
type Row struct {
	Key   string
	Value string
}

// Banner is the boxed summary printed at startup.
type Banner struct {
	Title    string
	Subtitle string
	Rows     []Row
	Width    int
}

// NewBanner describes cfg. Rows keep a fixed order.
func NewBanner(cfg *config.Config) *Banner {
	rows := []Row{
		{"Root", cfg.Root},
	}
	for i, url := range cfg.URLs() {
		key := ""
		if i == 0 {
			key = "Listen"
		}
		rows = append(rows, Row{key, url})
	}
	rows = append(rows,
		Row{"Index", cfg.Index},
		Row{"404", cfg.NotFound},
		Row{"Cache", fmt.Sprintf("%ds", cfg.Cache)},
		Row{"SPA", flag(cfg.SPA)},
		Row{"CORS", flag(!cfg.NoCORS)},
		Row{"Hidden", flag(cfg.All)},
		Row{"Symlinks", followLinks(cfg.FollowLinks)},
	)
	if cfg.MDNS {
		rows = append(rows, Row{"mDNS", flag(true)})
	}

	return &Banner{
		Title:    version.Product,
		Subtitle: version.Full(),
		Rows:     rows,
		Width:    GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (b *Banner) SetWidth(width int) *Banner {
	b.Width = width
	return b
}

// Render returns the styled banner
func (b *Banner) Render() string {
	width := clampWidth(b.Width)

	top := lipgloss.JoinHorizontal(lipgloss.Bottom,
		TitleStyle.Render(b.Title),
		SubtitleStyle.Render(b.Subtitle),
	)

	lines := make([]string, 0, len(b.Rows))
	for _, r := range b.Rows {
		lines = append(lines, KeyStyle.Render(r.Key)+ValueStyle.Render(r.Value))
	}

	content := top
	if len(lines) > 0 {
		content = lipgloss.JoinVertical(lipgloss.Left, top, "", strings.Join(lines, "\n"))
	}
	return BoxStyle(width).Render(content)
}

// String implements fmt.Stringer
func (b *Banner) String() string {
	return b.Render()
}

func flag(on bool) string {
	if on {
		return OnStyle.Render("on")
	}
	return OffStyle.Render("off")
}

func followLinks(on bool) string {
	if on {
		return OnStyle.Render("follow")
	}
	return OffStyle.Render("within root")
}
