package voxeltex

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRasterSource is returned by New when Options.Source is nil.
	ErrNoRasterSource = errors.New("voxeltex: a raster source is required")

	// ErrTooFewFrames is returned by Animate for fewer than two frames.
	ErrTooFewFrames = errors.New("voxeltex: animation needs at least two frames")
)

// FetchError reports a raster that could not be fetched or decoded.
type FetchError struct {
	Name string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("voxeltex: loading %q: %v", e.Name, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
