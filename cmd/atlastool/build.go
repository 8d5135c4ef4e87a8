package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/voxeltex/internal/assets"
	"github.com/Faultbox/voxeltex/internal/config"
	"github.com/Faultbox/voxeltex/internal/engine/voxeltex"
	"github.com/Faultbox/voxeltex/internal/export"
	"github.com/Faultbox/voxeltex/internal/logger"
	"github.com/Faultbox/voxeltex/pkg/material"
)

func cmdBuild(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: atlastool build <manifest.yaml>")
	}

	manifest, err := material.LoadManifest(args[0])
	if err != nil {
		return err
	}

	mgr, err := openAssets(cfg.Assets)
	if err != nil {
		return err
	}
	defer mgr.Close()

	snap, err := buildAtlas(ctx, cfg, mgr, manifest)
	if err != nil {
		return err
	}

	paths, err := export.Write(cfg.Export.Dir, snap, cfg.Export.Compress)
	if err != nil {
		return err
	}
	logger.Info("atlas written",
		zap.Strings("files", paths),
		zap.Int("width", snap.Width),
		zap.Int("height", snap.Height),
		zap.Int("rasters", len(snap.Entries)),
		zap.Int("materials", len(snap.Materials)))
	return nil
}

func openAssets(cfg config.AssetsConfig) (*assets.Manager, error) {
	mgr := assets.NewManager(cfg.Patterns...)
	for _, path := range cfg.GRFPaths {
		if err := mgr.AddArchive(path); err != nil {
			mgr.Close()
			return nil, err
		}
	}
	for _, dir := range cfg.Dirs {
		if err := mgr.AddDir(dir); err != nil {
			mgr.Close()
			return nil, err
		}
	}
	return mgr, nil
}

// buildAtlas loads the manifest into a headless texture and returns the
// resulting atlas.
func buildAtlas(ctx context.Context, cfg *config.Config, src voxeltex.RasterSource, m *material.Manifest) (voxeltex.Snapshot, error) {
	tex, err := newTexture(cfg, src, nil)
	if err != nil {
		return voxeltex.Snapshot{}, err
	}
	if err := loadManifest(ctx, tex, m); err != nil {
		return voxeltex.Snapshot{}, err
	}
	return tex.Snapshot(), nil
}

func newTexture(cfg *config.Config, src voxeltex.RasterSource, binding voxeltex.Binding) (*voxeltex.Texture, error) {
	return voxeltex.New(voxeltex.Options{
		Source:               src,
		Binding:              binding,
		Width:                cfg.Atlas.Width,
		Height:               cfg.Atlas.Height,
		TileSize:             cfg.Atlas.TileSize,
		TilePad:              cfg.Atlas.TilePad,
		Padding:              cfg.Atlas.Padding,
		MaxConcurrentFetches: cfg.Loader.MaxConcurrentFetches,
		SettleDelay:          cfg.Loader.SettleDelay,
	})
}

// loadManifest loads the sprite sheets, then the materials, and waits for
// them. Missing rasters are reported but do not fail the load.
func loadManifest(ctx context.Context, tex *voxeltex.Texture, m *material.Manifest) error {
	log := logger.Named("atlastool")
	for _, sheet := range m.Sprites {
		tiles, err := tex.Sprite(ctx, sheet.Name, sheet.TileWidth, sheet.TileHeight)
		if err != nil {
			log.Warn("sprite sheet skipped", zap.String("sheet", sheet.Name), zap.Error(err))
			continue
		}
		log.Debug("sprite sheet packed", zap.String("sheet", sheet.Name), zap.Int("tiles", len(tiles)))
	}

	batch := tex.Load(ctx, m.Materials...)
	if _, err := batch.Wait(ctx); err != nil {
		return fmt.Errorf("loading materials: %w", err)
	}
	if failed := batch.Failed(); len(failed) > 0 {
		log.Warn("rasters missing", zap.Strings("names", failed))
	}
	return nil
}
