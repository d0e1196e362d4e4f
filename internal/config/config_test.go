package config

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name string
		opts options.Program
	}{
		{"default", options.Program{}},
		{"debug", options.Program{Debug: true}},
		{"trace", options.Program{Trace: true}},
		{"quiet", options.Program{Quiet: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := CreateLogger(tt.opts)
			assert.NotNil(t, logger)
		})
	}
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "dev", VersionString("dev", ""))
	assert.Equal(t, "1.0.0 (abcdef1)", VersionString("1.0.0", "abcdef1234567"))
	assert.Equal(t, "1.0.0 (abc)", VersionString("1.0.0", "abc"))
}
