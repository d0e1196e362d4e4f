//go:build sdl

// Package sdl provides a frontend that uses SDL2 for display, keypad input
// and sound. It requires cgo and the SDL2 development libraries and is only
// built with the sdl build tag.
package sdl

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	windowTitle = "chip8vm"
	scale       = 10

	audioFrequency = 44100
	toneFrequency  = 440
	toneVolume     = 32
)

// keymap maps the left side of a QWERTY keyboard to the hexadecimal keypad.
var keymap = map[sdl.Keycode]int{
	sdl.K_1: 0x1, sdl.K_2: 0x2, sdl.K_3: 0x3, sdl.K_4: 0xC,
	sdl.K_q: 0x4, sdl.K_w: 0x5, sdl.K_e: 0x6, sdl.K_r: 0xD,
	sdl.K_a: 0x7, sdl.K_s: 0x8, sdl.K_d: 0x9, sdl.K_f: 0xE,
	sdl.K_z: 0xA, sdl.K_x: 0x0, sdl.K_c: 0xB, sdl.K_v: 0xF,
}

// Frontend renders into an SDL window and reads the keyboard.
type Frontend struct {
	logger   *log.Logger
	window   *sdl.Window
	renderer *sdl.Renderer
	audio    sdl.AudioDeviceID // 0 if no audio device could be opened
	tone     []byte
	playing  bool

	keys vm.Keys
}

// New initializes SDL and opens the window and audio device. A missing audio
// device is not an error, the frontend runs without sound in that case.
func New(logger *log.Logger) (*Frontend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	window, err := sdl.CreateWindow(windowTitle, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		vm.DisplayWidth*scale, vm.DisplayHeight*scale, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	f := &Frontend{
		logger:   logger,
		window:   window,
		renderer: renderer,
		tone:     squareWave(audioFrequency, toneFrequency, toneVolume),
	}
	f.openAudio()
	return f, nil
}

func (f *Frontend) openAudio() {
	desired := &sdl.AudioSpec{
		Freq:     audioFrequency,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  1024,
	}
	device, err := sdl.OpenAudioDevice("", false, desired, nil, 0)
	if err != nil {
		f.logger.Warn("Opening audio device failed, sound is disabled", log.Err(err))
		return
	}
	f.audio = device
}

// Render draws the display into the window.
func (f *Frontend) Render(display vm.Display) error {
	if err := f.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	if err := f.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := f.renderer.SetDrawColor(255, 255, 255, 255); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}

	for y, row := range display {
		for x, pixel := range row {
			if !pixel {
				continue
			}
			rect := &sdl.Rect{X: int32(x * scale), Y: int32(y * scale), W: scale, H: scale}
			if err := f.renderer.FillRect(rect); err != nil {
				return fmt.Errorf("drawing pixel: %w", err)
			}
		}
	}

	f.renderer.Present()
	return nil
}

// Poll processes all pending window events and returns the keypad state.
// Closing the window or pressing escape requests to quit.
func (f *Frontend) Poll() (vm.Keys, bool) {
	var quit bool
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true

		case *sdl.KeyboardEvent:
			pressed := e.Type == sdl.KEYDOWN
			if e.Keysym.Sym == sdl.K_ESCAPE && pressed {
				quit = true
				continue
			}
			if key, ok := keymap[e.Keysym.Sym]; ok {
				f.keys[key] = pressed
			}
		}
	}
	return f.keys, quit
}

// SetBeep starts or stops the tone. While the tone is on the audio queue is
// refilled whenever less than half of the queued tone is left to play.
func (f *Frontend) SetBeep(on bool) {
	if f.audio == 0 {
		return
	}

	if !on {
		if f.playing {
			sdl.PauseAudioDevice(f.audio, true)
			sdl.ClearQueuedAudio(f.audio)
			f.playing = false
		}
		return
	}

	if needsRefill(sdl.GetQueuedAudioSize(f.audio), len(f.tone)) {
		if err := sdl.QueueAudio(f.audio, f.tone); err != nil {
			f.logger.Warn("Queueing audio failed", log.Err(err))
			return
		}
	}
	if !f.playing {
		sdl.PauseAudioDevice(f.audio, false)
		f.playing = true
	}
}

// needsRefill returns whether the queued audio in bytes runs low compared
// to the size of a queued tone.
func needsRefill(queued uint32, toneSize int) bool {
	return int(queued) < toneSize/2
}

// Close releases all SDL resources.
func (f *Frontend) Close() error {
	if f.audio != 0 {
		sdl.CloseAudioDevice(f.audio)
	}
	if err := f.renderer.Destroy(); err != nil {
		return fmt.Errorf("destroying renderer: %w", err)
	}
	if err := f.window.Destroy(); err != nil {
		return fmt.Errorf("destroying window: %w", err)
	}
	sdl.Quit()
	return nil
}

// squareWave returns one second of unsigned 8 bit mono samples of a square
// wave with the given frequency and amplitude around the silence level.
func squareWave(sampleRate, frequency int, amplitude byte) []byte {
	const silence = 128

	samples := make([]byte, sampleRate)
	period := sampleRate / frequency
	for i := range samples {
		if i%period < period/2 {
			samples[i] = silence + amplitude
		} else {
			samples[i] = silence - amplitude
		}
	}
	return samples
}
