// Package transcript writes rendered lines to a terminal.
package transcript

import (
	"hash/fnv"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"matrix-render/internal/render"
)

// Separator joins the padded sender column and the content in align mode.
const Separator = " │ "

type Options struct {
	// Align pads the sender to PrefixWidth cells instead of emitting the raw TAB.
	Align       bool
	PrefixWidth int
	// Color styles the sender with a per-nick color.
	Color bool
	// Filter drops lines whose sender does not fuzzy-match it.
	Filter string
}

type Writer struct {
	out  io.Writer
	opts Options
}

func NewWriter(out io.Writer, opts Options) *Writer {
	if opts.PrefixWidth <= 0 {
		opts.PrefixWidth = 16
	}
	return &Writer{out: out, opts: opts}
}

// Write emits line. It reports whether the line passed the filter.
func (w *Writer) Write(line string) (bool, error) {
	if !Match(line, w.opts.Filter) {
		return false, nil
	}
	_, err := io.WriteString(w.out, w.Format(line)+"\n")
	return err == nil, err
}

// Format applies the writer's align and color options to line.
func (w *Writer) Format(line string) string {
	prefix, content, tabbed := Split(line)
	if !tabbed {
		if w.opts.Color {
			return sentenceStyle.Render(line)
		}
		return line
	}
	if w.opts.Align {
		prefix = pad(prefix, w.opts.PrefixWidth)
	}
	if w.opts.Color {
		prefix = nickStyle(strings.TrimSpace(prefix)).Render(prefix)
	}
	if w.opts.Align {
		return prefix + Separator + content
	}
	return prefix + "\t" + content
}

// Split cuts a rendered line at its first TAB. Lines without a TAB, such as
// membership sentences, report tabbed=false.
func Split(line string) (prefix, content string, tabbed bool) {
	prefix, content, tabbed = strings.Cut(line, "\t")
	if !tabbed {
		return "", line, false
	}
	return prefix, content, true
}

// Match reports whether line's sender fuzzy-matches query. Lines without a
// sender column are matched as a whole. An empty query matches everything.
func Match(line, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	prefix, content, tabbed := Split(line)
	target := content
	if tabbed {
		target = prefix
	}
	return len(fuzzy.Find(strings.ToLower(query), []string{strings.ToLower(target)})) > 0
}

// pad truncates or right-pads s to exactly width terminal cells.
func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

var (
	sentenceStyle = lipgloss.NewStyle().Faint(true)
	serverStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CC0000"))
	nickPalette   = []lipgloss.Color{
		"#7D56F4", "#00AA00", "#D7875F", "#0087D7",
		"#AF5FAF", "#5FAFAF", "#D7AF00", "#FF5F87",
	}
)

// nickStyle picks a stable color for a sender.
func nickStyle(nick string) lipgloss.Style {
	if nick == render.ServerSender {
		return serverStyle
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(nick))
	return lipgloss.NewStyle().Foreground(nickPalette[h.Sum32()%uint32(len(nickPalette))])
}
