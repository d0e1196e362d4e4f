// Package headless provides a frontend without any output device.
// It is used for batch runs and tests, keypad input can be scripted.
package headless

import (
	"sync"

	"github.com/retroenv/chip8vm/internal/vm"
)

// Frontend records rendered frames and beep state changes and returns
// scripted keypad snapshots.
type Frontend struct {
	mu sync.Mutex

	frames   int
	last     vm.Display
	beep      bool
	beeps     int
	beepCalls int
	keys     []vm.Keys
	quitWhen func(frame int) bool
	polls    int
}

// Option configures a headless frontend.
type Option func(*Frontend)

// WithKeys sets the keypad snapshots returned by consecutive polls. After
// the last snapshot was returned it keeps being returned.
func WithKeys(keys ...vm.Keys) Option {
	return func(f *Frontend) {
		f.keys = keys
	}
}

// WithQuitAfter requests to quit on the given poll number, counted from 1.
func WithQuitAfter(polls int) Option {
	return func(f *Frontend) {
		f.quitWhen = func(poll int) bool {
			return poll >= polls
		}
	}
}

// New returns a new headless frontend.
func New(opts ...Option) *Frontend {
	f := &Frontend{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Render stores the display as the last frame.
func (f *Frontend) Render(display vm.Display) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.frames++
	f.last = display
	return nil
}

// Poll returns the next scripted keypad snapshot.
func (f *Frontend) Poll() (vm.Keys, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.polls++
	if f.quitWhen != nil && f.quitWhen(f.polls) {
		return vm.Keys{}, true
	}

	if len(f.keys) == 0 {
		return vm.Keys{}, false
	}
	keys := f.keys[0]
	if len(f.keys) > 1 {
		f.keys = f.keys[1:]
	}
	return keys, false
}

// SetBeep records the beep state.
func (f *Frontend) SetBeep(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if on {
		f.beepCalls++
		if !f.beep {
			f.beeps++
		}
	}
	f.beep = on
}

// Close implements the frontend lifecycle, there is nothing to release.
func (f *Frontend) Close() error {
	return nil
}

// Frames returns the number of rendered frames.
func (f *Frontend) Frames() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

// LastFrame returns the last rendered display.
func (f *Frontend) LastFrame() vm.Display {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// Beeping returns whether the beep is currently on.
func (f *Frontend) Beeping() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.beep
}

// BeepCalls returns how often the beep was requested to play.
func (f *Frontend) BeepCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.beepCalls
}

// Beeps returns how often the beep was started.
func (f *Frontend) Beeps() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.beeps
}
