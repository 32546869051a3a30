package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"matrix-render/internal/config"
)

func initConfigMain(root rootArgs, args []string) {
	if err := runInitConfig(root, args, os.Stdout); err != nil {
		log.Fatalf("init-config failed: %v", err)
	}
}

// runInitConfig writes the default config file unless one already exists.
func runInitConfig(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("init-config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var force bool
	fs.BoolVar(&force, "force", false, "Overwrite an existing config file")
	if done, err := parseFlags(fs, args); done || err != nil {
		return err
	}

	path := root.cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return errors.New("config path is empty and $HOME is not set")
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "wrote %s\n", path)
	return nil
}
