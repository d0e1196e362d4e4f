//go:build sdl

package main

import (
	"github.com/retroenv/chip8vm/internal/frontend/sdl"
	"github.com/retroenv/retrogolib/log"
)

func init() {
	frontends["sdl"] = func(logger *log.Logger) (frontend, error) {
		return sdl.New(logger)
	}
}
