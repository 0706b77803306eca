package main

import (
	"errors"
	"testing"

	"github.com/gogpu/warp"
)

func TestAffineCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		matrix      []float64
		clamp       bool
		wantErr     error
		wantContain []string
	}{
		{
			name:        "identity",
			args:        []string{"640", "480"},
			matrix:      []float64{1, 0, 0, 0, 1, 0},
			wantContain: []string{"size:   640x480", "offset: (0,0)"},
		},
		{
			name:        "mirror",
			args:        []string{"640", "480"},
			matrix:      []float64{-1, 0, 0, 0, 1, 0},
			wantContain: []string{"size:   640x480", "offset: (-640,0)"},
		},
		{
			name:        "shear",
			args:        []string{"100", "50"},
			matrix:      []float64{1, 0.5, 0, 0, 1, 0},
			wantContain: []string{"size:   125x50"},
		},
		{
			name:    "singular",
			args:    []string{"100", "50"},
			matrix:  []float64{0, 0, 0, 0, 1, 0},
			wantErr: warp.ErrInvalidArgument,
		},
		{
			name:        "singular clamped",
			args:        []string{"100", "50"},
			matrix:      []float64{0, 0, 0, 0, 1, 0},
			clamp:       true,
			wantContain: []string{"size:   1x50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonOut = false
			affineMatrix = tt.matrix
			affineClamp = tt.clamp

			output, err := captureOutput(t, func() error {
				return runAffine(tt.args)
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("runAffine() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("runAffine() error = %v", err)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestAffineCommandCoefficientCount(t *testing.T) {
	affineMatrix = []float64{1, 0, 0}
	t.Cleanup(func() { affineMatrix = []float64{1, 0, 0, 0, 1, 0} })

	if err := runAffine([]string{"10", "10"}); err == nil {
		t.Error("runAffine() with 3 coefficients succeeded, want error")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	for _, name := range []string{"rotate", "affine", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
