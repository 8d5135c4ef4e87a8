package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/voxeltex/internal/export"
	"github.com/Faultbox/voxeltex/internal/logger"
	"github.com/Faultbox/voxeltex/pkg/grf"
)

func cmdList(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: atlastool list <file.grf> [pattern]")
	}

	archive, err := grf.Open(args[0])
	if err != nil {
		return err
	}
	defer archive.Close()

	pattern := ""
	if len(args) > 1 {
		pattern = strings.ToLower(args[1])
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, f := range filterNames(archive.List(), pattern) {
		fmt.Fprintln(w, f)
	}
	return nil
}

// filterNames keeps names whose base matches the glob pattern or that
// contain it. An empty pattern keeps everything.
func filterNames(names []string, pattern string) []string {
	if pattern == "" {
		return names
	}
	var out []string
	for _, f := range names {
		lower := strings.ToLower(f)
		matched, _ := filepath.Match(pattern, filepath.Base(lower))
		if matched || strings.Contains(lower, pattern) {
			out = append(out, f)
		}
	}
	return out
}

func cmdPack(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: atlastool pack <out.grf> <dir>")
	}
	n, err := packDir(args[0], args[1])
	if err != nil {
		return err
	}
	logger.Info("archive written", zap.String("path", args[0]), zap.Int("files", n))
	return nil
}

// packDir stores every regular file under dir in a new archive at out,
// named by its slash-separated path relative to dir.
func packDir(out, dir string) (int, error) {
	w := grf.NewWriter()
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		count++
		return w.Add(filepath.ToSlash(rel), data)
	})
	if err != nil {
		return 0, err
	}

	f, err := os.Create(out)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	if _, err := w.WriteTo(f); err != nil {
		return 0, err
	}
	return count, f.Close()
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: atlastool info <dump-dir>")
	}

	path, err := export.FindIndex(args[0])
	if err != nil {
		return err
	}
	snap, err := export.ReadIndex(path)
	if err != nil {
		return err
	}

	transparent := 0
	for _, e := range snap.Entries {
		if e.Transparent {
			transparent++
		}
	}

	fmt.Printf("Index:       %s\n", path)
	fmt.Printf("Size:        %dx%d\n", snap.Width, snap.Height)
	fmt.Printf("Tile size:   %.4f\n", snap.TileSize)
	fmt.Printf("Rasters:     %d (%d transparent)\n", len(snap.Entries), transparent)
	fmt.Printf("Materials:   %d\n", len(snap.Materials))
	for i, slot := range snap.Materials {
		fmt.Printf("  %3d  %s\n", i+1, slot.Spec())
	}
	return nil
}
