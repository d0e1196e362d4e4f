package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/chip8vm/internal/frontend/headless"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func assemble(words ...uint16) []byte {
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	return program
}

func newTestRunner(t *testing.T, frontend Frontend, cfg Config, words ...uint16) (*Runner, *vm.VM) {
	t.Helper()
	machine, err := vm.New(assemble(words...))
	assert.NoError(t, err)
	return New(log.NewTestLogger(t), machine, frontend, cfg), machine
}

func runWithTimeout(t *testing.T, r *Runner) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.Run(ctx)
}

func TestRunInstructionLimit(t *testing.T) {
	frontend := headless.New()
	// jp $200
	r, machine := newTestRunner(t, frontend, Config{Speed: 6000, MaxInstructions: 10, Trace: true}, 0x1200)

	assert.NoError(t, runWithTimeout(t, r))
	assert.Equal(t, uint64(10), r.Executed())
	assert.Equal(t, uint16(vm.ProgramStart), machine.PC())
	assert.Equal(t, 1, frontend.Frames())
}

func TestRunFatalError(t *testing.T) {
	frontend := headless.New()
	r, machine := newTestRunner(t, frontend, Config{Speed: 600}, 0x6001, 0x00EE)

	err := runWithTimeout(t, r)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.Equal(t, uint64(1), r.Executed())
	assert.Equal(t, uint16(vm.ProgramStart+2), machine.PC())
}

func TestRunQuit(t *testing.T) {
	frontend := headless.New(headless.WithQuitAfter(3))
	r, _ := newTestRunner(t, frontend, Config{Speed: 60}, 0x1200)

	assert.NoError(t, runWithTimeout(t, r))
	assert.Equal(t, uint64(2), r.Executed())
}

func TestRunCancelled(t *testing.T) {
	frontend := headless.New()
	r, _ := newTestRunner(t, frontend, Config{Speed: 60}, 0x1200)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunRendersUpdatedDisplay(t *testing.T) {
	frontend := headless.New()
	// ld I, $050; drw V0, V0, 5; jp $204
	r, _ := newTestRunner(t, frontend, Config{Speed: 600, MaxInstructions: 5}, 0xA050, 0xD005, 0x1204)

	assert.NoError(t, runWithTimeout(t, r))
	assert.Equal(t, 2, frontend.Frames())
	last := frontend.LastFrame()
	assert.True(t, last[0][0])
	assert.False(t, last[1][1])
}

func TestRunWaitsForKey(t *testing.T) {
	var pressed vm.Keys
	pressed[0xB] = true
	frontend := headless.New(headless.WithKeys(vm.Keys{}, vm.Keys{}, pressed))
	// ld V1, K; jp $202
	r, machine := newTestRunner(t, frontend, Config{Speed: 60, MaxInstructions: 4}, 0xF10A, 0x1202)

	assert.NoError(t, runWithTimeout(t, r))
	assert.Equal(t, byte(0xB), machine.Registers()[1])
	assert.Equal(t, uint16(vm.ProgramStart+2), machine.PC())
}

func TestFrameBeepAndTimers(t *testing.T) {
	frontend := headless.New()
	// ld V0, $02; ld ST, V0; jp $204
	r, machine := newTestRunner(t, frontend, Config{Speed: 120}, 0x6002, 0xF018, 0x1204)

	done, err := r.frame()
	assert.NoError(t, err)
	assert.False(t, done)
	// the sound timer was set to 2 and ticked once at the end of the frame
	assert.Equal(t, byte(1), machine.SoundTimer())
	assert.True(t, frontend.Beeping())

	_, err = r.frame()
	assert.NoError(t, err)
	assert.Equal(t, byte(0), machine.SoundTimer())
	assert.False(t, frontend.Beeping())
	assert.Equal(t, 1, frontend.Beeps())
}

func TestFrameSpeedBudget(t *testing.T) {
	frontend := headless.New()
	r, _ := newTestRunner(t, frontend, Config{Speed: 90}, 0x1200)

	// 90 instructions per second are 1.5 instructions per frame
	for range 4 {
		_, err := r.frame()
		assert.NoError(t, err)
	}
	assert.Equal(t, uint64(6), r.Executed())
}

func TestFrameBeepLastsAsLongAsSoundTimer(t *testing.T) {
	frontend := headless.New()
	// ld V0, $FF; ld ST, V0; jp $204
	r, machine := newTestRunner(t, frontend, Config{Speed: 180}, 0x60FF, 0xF018, 0x1204)

	// the timer is set in the first frame and reaches 0 after 255 ticks
	for frame := 1; frame < 255; frame++ {
		_, err := r.frame()
		assert.NoError(t, err)
		assert.True(t, frontend.Beeping())
		assert.Equal(t, frame, frontend.BeepCalls())
	}
	assert.Equal(t, byte(1), machine.SoundTimer())

	_, err := r.frame()
	assert.NoError(t, err)
	assert.False(t, frontend.Beeping())
	assert.Equal(t, 1, frontend.Beeps())
}

var errRender = errors.New("render failed")

// failingRenderer is a frontend whose rendering always fails.
type failingRenderer struct {
	*headless.Frontend
}

func (f failingRenderer) Render(vm.Display) error {
	return errRender
}

func TestFrameFatalErrorKeepsRenderError(t *testing.T) {
	frontend := failingRenderer{Frontend: headless.New()}
	// cls; ret
	r, _ := newTestRunner(t, frontend, Config{Speed: 600}, 0x00E0, 0x00EE)

	done, err := r.frame()
	assert.True(t, done)
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.True(t, errors.Is(err, errRender))
	assert.Equal(t, uint64(1), r.Executed())
}

func TestRunCancelledErrorIsNotWrapped(t *testing.T) {
	r, _ := newTestRunner(t, headless.New(), Config{Speed: 60}, 0x1200)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Run(ctx)
	assert.Equal(t, context.Canceled.Error(), err.Error())
}
