package voxeltex

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/Faultbox/voxeltex/pkg/material"
)

// Handle is a material bound to the shared atlas.
type Handle struct {
	Index   int
	Binding Binding
}

// Animation repaints one mesh with a cycle of material specs.
type Animation struct {
	tex    *Texture
	mesh   Renderable
	frames []material.Spec
	tween  *gween.Tween
	fired  int
}

// Animate registers an animation that repaints mesh with the next frame
// every delay, driven by Tick. Zero delay uses DefaultAnimationDelay.
func (t *Texture) Animate(mesh Renderable, frames []material.Spec, delay time.Duration) (*Animation, error) {
	if len(frames) < 2 {
		return nil, ErrTooFewFrames
	}
	for _, f := range frames {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}
	if delay <= 0 {
		delay = DefaultAnimationDelay
	}

	n := float32(len(frames))
	a := &Animation{
		tex:    t,
		mesh:   mesh,
		frames: append([]material.Spec(nil), frames...),
		tween:  gween.New(0, n, n*float32(delay.Seconds()), ease.Linear),
	}

	t.animMu.Lock()
	t.animations = append(t.animations, a)
	t.animMu.Unlock()
	return a, nil
}

// Material returns the handle animated meshes should render with.
func (a *Animation) Material() Handle {
	return Handle{Index: MaterialTransparent, Binding: a.tex.opts.Binding}
}

// Stop unregisters the animation.
func (a *Animation) Stop() {
	t := a.tex
	t.animMu.Lock()
	defer t.animMu.Unlock()
	for i, other := range t.animations {
		if other == a {
			t.animations = append(t.animations[:i], t.animations[i+1:]...)
			return
		}
	}
}

// Tick advances every registered animation by dt. It must be called from
// one goroutine, usually the render loop.
func (t *Texture) Tick(dt time.Duration) {
	t.animMu.Lock()
	anims := append([]*Animation(nil), t.animations...)
	t.animMu.Unlock()

	for _, a := range anims {
		a.advance(float32(dt.Seconds()))
	}
}

func (a *Animation) advance(dt float32) {
	v, done := a.tween.Update(dt)
	a.fireUpTo(v)
	for done {
		a.fired = 0
		v, done = a.tween.Set(a.tween.Overflow)
		a.fireUpTo(v)
	}
}

// fireUpTo paints every frame whose interval has elapsed.
func (a *Animation) fireUpTo(v float32) {
	steps := int(v + 1e-4)
	for a.fired < steps {
		frame := a.frames[a.fired%len(a.frames)]
		a.fired++
		if _, err := a.tex.Paint(a.mesh, &frame); err != nil {
			a.tex.log.Warn("animation frame skipped", zap.Error(err))
		}
	}
}
