package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"matrix-render/internal/config"
	"matrix-render/internal/logger"
)

var log = logger.Named("cli")

const usage = `usage: matrix-render [-c key=value]... [--config path] [command] [flags]

commands:
  render       render a JSONL event feed to stdout (default)
  view         render a feed into a scrollable viewer
  kinds        list every event kind and the line it renders to
  init-config  write a default config file
`

func main() {
	if err := config.LoadDotEnv(""); err != nil {
		log.Warnf("failed to load .env: %v", err)
	}
	root, rest, err := parseRootArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("parse args: %v", err)
	}

	cfg, err := config.Load(root.cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg = config.ApplyKVOverrides(cfg, root.overrides)

	if err := logger.Configure(cfg.LogLevel); err != nil {
		log.Warnf("invalid log level %q: %v", cfg.LogLevel, err)
	}
	if logFile, _, err := logger.SetupFile(cfg.LogPath); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}
	log = log.WithField("run_id", uuid.NewString())
	log.WithField("config", cfg.Source).Debug("starting")

	// 未给出子命令时默认 render，支持 `matrix-render -i events.jsonl` 直接使用。
	cmd := "render"
	if len(rest) > 0 && rest[0] != "" && rest[0][0] != '-' {
		cmd, rest = rest[0], rest[1:]
	}
	switch cmd {
	case "render":
		renderMain(cfg, rest)
	case "view":
		viewMain(cfg, rest)
	case "kinds":
		kindsMain()
	case "init-config":
		initConfigMain(root, rest)
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}
