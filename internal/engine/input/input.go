// Package input turns SDL2 events into preview events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventDrag
	EventWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	DX, DY float32
}

// Input collects the events of one frame.
type Input struct {
	events   []Event
	dragging bool
	lastX    float32
	lastY    float32
}

// New creates an input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update polls SDL events. It returns true once the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.State == sdl.PRESSED
				i.lastX, i.lastY = float32(e.X), float32(e.Y)
			}

		case *sdl.MouseMotionEvent:
			x, y := float32(e.X), float32(e.Y)
			if i.dragging {
				i.events = append(i.events, Event{Type: EventDrag, DX: x - i.lastX, DY: y - i.lastY})
			}
			i.lastX, i.lastY = x, y

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{Type: EventWheel, DY: float32(e.Y)})
		}
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// KeyPressed reports whether scancode went down this frame.
func (i *Input) KeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
