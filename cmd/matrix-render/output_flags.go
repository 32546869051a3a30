package main

import (
	"flag"

	"matrix-render/internal/config"
	"matrix-render/internal/transcript"
)

type outputFlags struct {
	input       string
	align       bool
	color       bool
	filter      string
	prefixWidth int
}

func addOutputFlags(fs *flag.FlagSet) *outputFlags {
	f := &outputFlags{}
	fs.StringVar(&f.input, "i", "-", "JSONL file with one Matrix event per line (- for stdin)")
	fs.BoolVar(&f.align, "align", false, "Pad the sender column instead of emitting a raw TAB")
	fs.BoolVar(&f.color, "color", false, "Color sender names")
	fs.StringVar(&f.filter, "filter", "", "Only show lines whose sender fuzzy-matches this query")
	fs.IntVar(&f.prefixWidth, "prefix-width", 0, "Sender column width in align mode")
	return f
}

// apply overlays the flags that were set explicitly on cfg.
func (f *outputFlags) apply(fs *flag.FlagSet, cfg config.Config) config.Config {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "align":
			cfg.Align = f.align
		case "color":
			cfg.Color = f.color
		case "filter":
			cfg.Filter = f.filter
		case "prefix-width":
			if f.prefixWidth > 0 {
				cfg.PrefixWidth = f.prefixWidth
			}
		}
	})
	return cfg
}

func transcriptOptions(cfg config.Config) transcript.Options {
	return transcript.Options{
		Align:       cfg.Align,
		PrefixWidth: cfg.PrefixWidth,
		Color:       cfg.Color,
		Filter:      cfg.Filter,
	}
}
