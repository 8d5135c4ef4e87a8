// atlastool builds voxel texture atlases from a material manifest and
// inspects the GRF archives and atlas dumps involved.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/voxeltex/internal/config"
	"github.com/Faultbox/voxeltex/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command, rest := args[0], args[1:]
	switch command {
	case "build":
		err = cmdBuild(ctx, cfg, rest)
	case "info":
		err = cmdInfo(rest)
	case "list", "ls":
		err = cmdList(rest)
	case "pack":
		err = cmdPack(rest)
	case "preview":
		err = cmdPreview(ctx, cfg, rest)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error(command+" failed", zap.Error(err))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`atlastool - voxel texture atlas utility

Usage:
  atlastool [flags] <command> [arguments]

Commands:
  build <manifest.yaml>        Pack the manifest's materials and dump the atlas
  info <dump-dir>              Summarize an atlas dump
  list <file.grf> [pattern]    List archive files (optional glob pattern)
  pack <out.grf> <dir>         Store every file under dir in a new archive
  preview <manifest.yaml>      Show the manifest's materials on voxels

Flags:
  -config <path>     Config file (default: ./voxeltex.yaml)
  -debug             Enable debug logging
  -atlas-size <n>    Initial atlas width and height
  -no-tilepad        Disable tile padding until the atlas first expands
  -out <dir>         Directory for atlas dumps

Examples:
  atlastool build blocks.yaml
  atlastool -atlas-size 512 -out dump build blocks.yaml
  atlastool list textures.grf "*.png"
  atlastool info atlas-dump`)
}
