// Package detector handles system architecture detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector determines the system a program file was written for.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system architecture from the filename extension.
// Raw program dumps usually have no header that identifies the system, files
// without a known extension are therefore assumed to be CHIP-8 programs.
func (d *Detector) Detect(filename string) arch.System {
	system := detectFromFile(filename)
	d.logger.Debug("Detected system",
		log.Stringer("system", system),
		log.String("file", filename))
	return system
}

// Supported returns whether programs of the given system can be run.
func Supported(system arch.System) bool {
	return system == arch.CHIP8System
}

func detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		// .ch8, .c8 and .rom files as well as unknown extensions
		return arch.CHIP8System
	}
}
