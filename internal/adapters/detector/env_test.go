package detector_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smartmate/internal/adapters/detector"
	"go.trai.ch/smartmate/internal/core/domain"
)

func env(tty bool, ci string) detector.Environment {
	return detector.Environment{
		IsTerminal: func(int) bool { return tty },
		Getenv: func(k string) string {
			if k == "CI" {
				return ci
			}
			return ""
		},
		Stdout: os.Stdout,
	}
}

func TestEnvironment_Detect(t *testing.T) {
	tests := []struct {
		name string
		tty  bool
		ci   string
		want detector.OutputMode
	}{
		{name: "interactive terminal", tty: true, want: detector.ModeTUI},
		{name: "pipe", tty: false, want: detector.ModeLinear},
		{name: "CI=true", tty: true, ci: "true", want: detector.ModeLinear},
		{name: "CI=1", tty: true, ci: "1", want: detector.ModeLinear},
		{name: "CI=false", tty: true, ci: "false", want: detector.ModeTUI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, env(tt.tty, tt.ci).Detect())
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		flag string
		want detector.OutputMode
	}{
		{flag: "", want: detector.ModeAuto},
		{flag: "auto", want: detector.ModeAuto},
		{flag: "tui", want: detector.ModeTUI},
		{flag: "linear", want: detector.ModeLinear},
		{flag: "ci", want: detector.ModeLinear},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := detector.ParseMode(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := detector.ParseMode("fancy")
	require.ErrorIs(t, err, domain.ErrInvalidOutputMode)
}

func TestResolveMode(t *testing.T) {
	assert.Equal(t, detector.ModeTUI, detector.ResolveMode(detector.ModeTUI, detector.ModeAuto))
	assert.Equal(t, detector.ModeLinear, detector.ResolveMode(detector.ModeTUI, detector.ModeLinear))
	assert.Equal(t, detector.ModeTUI, detector.ResolveMode(detector.ModeLinear, detector.ModeTUI))
}
