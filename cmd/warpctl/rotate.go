package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/warp"
)

var (
	rotateAngle float64
)

func init() {
	cmd := newRotateCmd()
	cmd.Flags().Float64VarP(&rotateAngle, "angle", "a", 0, "Rotation angle in degrees")
	rootCmd.AddCommand(cmd)
}

func newRotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate <width> <height>",
		Short: "Show the canvas for a rotation about the image center",
		Long: `The rotate command prints the output size, the offset and the
source-to-destination matrix for rotating an image about its center.

Example:
  warpctl rotate 100 50 --angle 90
  warpctl rotate 1920 1080 -a 33.5 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRotate(args)
		},
	}
}

func runRotate(args []string) error {
	src, err := parseSize(args)
	if err != nil {
		return err
	}

	m, err := warp.RotationMatrix(src, rotateAngle)
	if err != nil {
		return err
	}
	r, err := warp.RotateBounds(src, rotateAngle)
	if err != nil {
		return err
	}

	coeffs := [6]float64(m.Aff3())
	return printResult(result{
		Source: src,
		Size:   r.Size,
		Offset: r.Min,
		Matrix: &coeffs,
	})
}
