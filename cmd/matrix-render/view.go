package main

import (
	"flag"
	"io"
	"path/filepath"

	"github.com/samber/lo"

	"matrix-render/internal/config"
	"matrix-render/internal/feed"
	"matrix-render/internal/transcript"
	"matrix-render/internal/tui"
)

func viewMain(cfg config.Config, args []string) {
	if err := runView(cfg, args, tui.Run); err != nil {
		log.Fatalf("view failed: %v", err)
	}
}

// runView renders the feed into memory and hands the lines to show.
func runView(cfg config.Config, args []string, show func(tui.Options) error) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flags := addOutputFlags(fs)
	var inline bool
	fs.BoolVar(&inline, "inline", false, "Do not switch to the alternate screen")
	if done, err := parseFlags(fs, args); done || err != nil {
		return err
	}
	cfg = flags.apply(fs, cfg)
	// The viewport cannot show TABs; always use the padded column.
	cfg.Align = true

	in, err := feed.Open(flags.input)
	if err != nil {
		return err
	}
	defer in.Close()

	var rendered []string
	if _, err := newPipeline(log).run(in, func(line string) error {
		rendered = append(rendered, line)
		return nil
	}); err != nil {
		return err
	}

	w := transcript.NewWriter(io.Discard, transcriptOptions(cfg))
	lines := lo.FilterMap(rendered, func(line string, _ int) (string, bool) {
		return w.Format(line), transcript.Match(line, cfg.Filter)
	})

	title := "matrix-render"
	if flags.input != "-" {
		title += " · " + filepath.Base(flags.input)
	}
	return show(tui.Options{Title: title, Lines: lines, Inline: inline})
}
