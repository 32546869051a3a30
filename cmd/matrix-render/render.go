package main

import (
	"flag"
	"io"
	"os"

	"matrix-render/internal/config"
	"matrix-render/internal/feed"
	"matrix-render/internal/transcript"
)

func renderMain(cfg config.Config, args []string) {
	if err := runRender(cfg, args, os.Stdout); err != nil {
		log.Fatalf("render failed: %v", err)
	}
}

func runRender(cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flags := addOutputFlags(fs)
	if done, err := parseFlags(fs, args); done || err != nil {
		return err
	}
	cfg = flags.apply(fs, cfg)

	in, err := feed.Open(flags.input)
	if err != nil {
		return err
	}
	defer in.Close()

	w := transcript.NewWriter(out, transcriptOptions(cfg))
	filtered := 0
	st, err := newPipeline(log).run(in, func(line string) error {
		ok, err := w.Write(line)
		if err == nil && !ok {
			filtered++
		}
		return err
	})
	log.WithField("rendered", st.Rendered).
		WithField("skipped", st.Skipped).
		WithField("filtered", filtered).
		Info("render finished")
	return err
}
