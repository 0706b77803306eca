// Command warpctl prints the output canvas geometry of image transforms.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gogpu/warp"
)

var (
	// Global flags
	verbose bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "warpctl",
	Short: "Compute output canvas size and offset for image transforms",
	Long: `warpctl computes the destination canvas a transform kernel needs:
the bounding size and origin offset of an image after an affine transform
or a rotation about its center.`,
	Version: warp.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			warp.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log bounds computations to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// result is the output of the geometry commands.
type result struct {
	Source warp.Size   `json:"source"`
	Size   warp.Size   `json:"size"`
	Offset warp.Point  `json:"offset"`
	Matrix *[6]float64 `json:"matrix,omitempty"`
}

// printResult writes r as text or, with --json, as indented JSON.
func printResult(r result) error {
	if jsonOut {
		return printJSON(r)
	}
	fmt.Fprintf(os.Stdout, "source: %v\n", r.Source)
	fmt.Fprintf(os.Stdout, "size:   %v\n", r.Size)
	fmt.Fprintf(os.Stdout, "offset: %v\n", r.Offset)
	if r.Matrix != nil {
		m := r.Matrix
		fmt.Fprintf(os.Stdout, "matrix: [%g %g %g; %g %g %g]\n", m[0], m[1], m[2], m[3], m[4], m[5])
	}
	return nil
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// parseSize parses width and height arguments.
func parseSize(args []string) (warp.Size, error) {
	if len(args) != 2 {
		return warp.Size{}, fmt.Errorf("expected <width> <height>, got %d argument(s)", len(args))
	}
	w, err := strconv.Atoi(args[0])
	if err != nil {
		return warp.Size{}, fmt.Errorf("invalid width %q: %w", args[0], err)
	}
	h, err := strconv.Atoi(args[1])
	if err != nil {
		return warp.Size{}, fmt.Errorf("invalid height %q: %w", args[1], err)
	}
	return warp.Sz(w, h), nil
}
