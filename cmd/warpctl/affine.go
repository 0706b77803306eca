package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/warp"
)

var (
	affineMatrix []float64
	affineClamp  bool
)

func init() {
	cmd := newAffineCmd()
	cmd.Flags().Float64SliceVarP(&affineMatrix, "matrix", "m", []float64{1, 0, 0, 0, 1, 0},
		"Affine coefficients a,b,c,d,e,f (x' = a*x + b*y + c, y' = d*x + e*y + f)")
	cmd.Flags().BoolVar(&affineClamp, "clamp", false, "Clamp singular matrices to a 1-pixel extent instead of failing")
	rootCmd.AddCommand(cmd)
}

func newAffineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "affine <width> <height>",
		Short: "Show the canvas for an affine transform",
		Long: `The affine command prints the output size and offset for an image
mapped through a 2x3 affine matrix.

Example:
  warpctl affine 640 480 --matrix 1,0.25,0,0,1,0
  warpctl affine 640 480 -m 0,0,0,0,1,0 --clamp`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAffine(args)
		},
	}
}

func runAffine(args []string) error {
	src, err := parseSize(args)
	if err != nil {
		return err
	}
	if len(affineMatrix) != 6 {
		return fmt.Errorf("--matrix needs 6 coefficients, got %d", len(affineMatrix))
	}
	m := warp.Matrix{
		A: affineMatrix[0], B: affineMatrix[1], C: affineMatrix[2],
		D: affineMatrix[3], E: affineMatrix[4], F: affineMatrix[5],
	}

	var opts []warp.BoundsOption
	if affineClamp {
		opts = append(opts, warp.WithDegeneratePolicy(warp.DegenerateClamp))
	}

	r, err := warp.AffineBounds(src, m, opts...)
	if err != nil {
		return err
	}
	return printResult(result{Source: src, Size: r.Size, Offset: r.Min})
}
