package main

import (
	"context"
	"errors"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/voxeltex/internal/config"
	"github.com/Faultbox/voxeltex/internal/engine/camera"
	"github.com/Faultbox/voxeltex/internal/engine/input"
	"github.com/Faultbox/voxeltex/internal/engine/model"
	"github.com/Faultbox/voxeltex/internal/engine/renderer"
	"github.com/Faultbox/voxeltex/internal/engine/shader"
	"github.com/Faultbox/voxeltex/internal/engine/window"
	"github.com/Faultbox/voxeltex/internal/logger"
	"github.com/Faultbox/voxeltex/pkg/material"
	"github.com/Faultbox/voxeltex/pkg/math"
)

const fovY = gomath.Pi / 4

// cmdPreview opens a window showing one voxel per material of the manifest,
// painted from the live atlas.
func cmdPreview(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: atlastool preview <manifest.yaml>")
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

	win, err := window.New(window.Config{
		Title:  "atlastool - " + args[0],
		Width:  cfg.Preview.Width,
		Height: cfg.Preview.Height,
		VSync:  cfg.Preview.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	r, err := renderer.New()
	if err != nil {
		return err
	}
	defer r.Close()
	r.Resize(win.DrawableSize())

	binding := shader.NewBinding(cfg.Atlas.FourTap)
	tex, err := newTexture(cfg, mgr, binding)
	if err != nil {
		return err
	}

	// Loading blocks on uploads, which only this loop performs.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	loaded := make(chan error, 1)
	go func() { loaded <- loadManifest(ctx, tex, manifest) }()

	var mesh *model.Mesh
	cam := camera.NewOrbitCamera()
	in := input.New()
	last := time.Now()
	log := logger.Named("preview")

	for !in.Update() && ctx.Err() == nil {
		if in.KeyPressed(sdl.SCANCODE_ESCAPE) {
			break
		}
		for _, e := range in.Events() {
			switch e.Type {
			case input.EventDrag:
				cam.HandleDrag(e.DX, e.DY)
			case input.EventWheel:
				cam.HandleZoom(e.DY)
			case input.EventWindowResize:
				r.Resize(win.DrawableSize())
			}
		}

		select {
		case err := <-loaded:
			if err != nil {
				return err
			}
			mesh = previewMesh(len(tex.Materials()))
			if _, err := tex.Paint(mesh, nil); err != nil {
				return err
			}
			lo, hi := meshBounds(mesh)
			cam.FitToBounds(lo, hi)
			w, h := tex.Size()
			log.Info("atlas ready", zap.Int("width", w), zap.Int("height", h), zap.Int("faces", mesh.NumFaces()))
		default:
		}

		if _, err := binding.Upload(); err != nil {
			return err
		}
		now := time.Now()
		tex.Tick(now.Sub(last))
		last = now

		if mesh != nil {
			r.Sync(mesh)
		}
		w, h := win.DrawableSize()
		proj := math.Perspective(fovY, float32(w)/float32(max(h, 1)), 0.1, 1000)
		r.Draw(binding, proj.Mul(cam.ViewMatrix()))
		win.SwapBuffers()
	}
	return nil
}

// previewMesh lays out one voxel of every type 1..n along X, one voxel
// apart.
func previewMesh(n int) *model.Mesh {
	if n == 0 {
		return &model.Mesh{}
	}
	chunk := model.NewChunk(2*n-1, 1, 1)
	for i := 0; i < n; i++ {
		chunk.Set(2*i, 0, 0, i+1)
	}
	return model.BuildMesh(chunk)
}

func meshBounds(mesh *model.Mesh) (lo, hi math.Vec3) {
	first := true
	for i := range mesh.Faces {
		for _, p := range mesh.Faces[i].Positions {
			if first {
				lo, hi, first = p, p, false
				continue
			}
			lo = math.Vec3{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
			hi = math.Vec3{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
		}
	}
	return lo, hi
}
