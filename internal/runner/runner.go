// Package runner drives a virtual machine in real time.
//
// The runner executes frames at TimerFrequency. Every frame polls the
// frontend input, executes the share of instructions that the configured
// speed allots to a frame, ticks the machine timers once, updates the beep
// state and renders the display if it was modified.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// TimerFrequency is the rate in Hz at which the machine timers are
// decremented.
const TimerFrequency = 60

// Frontend provides display output, keypad input and sound for a machine.
type Frontend interface {
	// Render displays the framebuffer.
	Render(display vm.Display) error
	// Poll returns the currently pressed keys and whether the user
	// requested to quit.
	Poll() (vm.Keys, bool)
	// SetBeep is called once per frame with the sound state, the tone has
	// to keep playing as long as it is called with true.
	SetBeep(on bool)
}

// Config contains the runner settings.
type Config struct {
	Speed           uint   // instructions per second
	MaxInstructions uint64 // 0 for no limit
	Trace           bool   // log every instruction on debug level
}

// Runner executes a machine at a fixed speed.
type Runner struct {
	logger   *log.Logger
	machine  *vm.VM
	frontend Frontend
	cfg      Config

	budget   uint // accumulated instruction share not executed yet, in 1/TimerFrequency units
	executed uint64
}

// New returns a runner for the given machine and frontend.
func New(logger *log.Logger, machine *vm.VM, frontend Frontend, cfg Config) *Runner {
	return &Runner{
		logger:   logger,
		machine:  machine,
		frontend: frontend,
		cfg:      cfg,
	}
}

// Run executes the machine until the context is cancelled, the user quits,
// the instruction limit is reached or the program fails. Quitting and
// reaching the limit are not errors.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.frontend.Render(r.machine.Display()); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}

	ticker := time.NewTicker(time.Second / TimerFrequency)
	defer ticker.Stop()
	defer r.frontend.SetBeep(false)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			done, err := r.frame()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// Executed returns the number of instructions that were executed.
func (r *Runner) Executed() uint64 {
	return r.executed
}

// frame executes one frame and returns whether the run is finished.
func (r *Runner) frame() (bool, error) {
	keys, quit := r.frontend.Poll()
	if quit {
		r.logger.Info("Quit requested", log.Int("instructions", int(r.executed)))
		return true, nil
	}

	r.budget += r.cfg.Speed
	count := r.budget / TimerFrequency
	r.budget %= TimerFrequency

	var updated bool
	for range count {
		if r.limitReached() {
			r.logger.Info("Instruction limit reached", log.Int("instructions", int(r.executed)))
			return true, r.finishFrame(updated)
		}

		stepUpdated, err := r.step(keys)
		if err != nil {
			return true, errors.Join(err, r.finishFrame(updated))
		}
		updated = updated || stepUpdated
	}

	return false, r.finishFrame(updated)
}

// step executes a single instruction.
func (r *Runner) step(keys vm.Keys) (bool, error) {
	address := r.machine.PC()
	opcode := r.machine.Opcode()
	if r.cfg.Trace {
		ins, _ := disasm.Decode(opcode)
		r.logger.Debug("Execute",
			log.Hex("address", address),
			log.Hex("opcode", opcode),
			log.String("instruction", ins.String()))
	}

	updated, err := r.machine.Step(keys)
	if err != nil {
		return false, fmt.Errorf("executing instruction: %w", err)
	}

	r.executed++
	return updated, nil
}

// finishFrame ticks the timers, updates the beep state and renders the
// display if it was modified during the frame.
func (r *Runner) finishFrame(updated bool) error {
	r.machine.TickTimers()

	r.frontend.SetBeep(r.machine.SoundActive())

	if !updated {
		return nil
	}
	if err := r.frontend.Render(r.machine.Display()); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}
	return nil
}

func (r *Runner) limitReached() bool {
	return r.cfg.MaxInstructions > 0 && r.executed >= r.cfg.MaxInstructions
}
