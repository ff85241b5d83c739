package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lutreverse/cmd/lutreverse/cubelut"
)

const (
	defaultInput    = "filename.cube"
	defaultOutput   = "filename_reversed.cube"
	placeholderSize = 2
)

type options struct {
	input  string
	output string
	size   int // 0 means not given; probed from the input instead
	title  string
	report string
}

var (
	reportPath string
	titleFlag  string

	rootCmd = &cobra.Command{
		Use:   "lutreverse [input.cube [output.cube [cube_size]]]",
		Short: "Reverse a 3D .cube LUT",
		Long: `Reverses a 3D color LUT: bakes the approximate inverse of the input
transform onto a new grid and writes it as a .cube file. Forward LUTs
are generally lossy, so the reversal is a best-effort approximation.`,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := options{
				input:  defaultInput,
				output: defaultOutput,
				title:  titleFlag,
				report: reportPath,
			}
			if len(args) > 0 {
				opts.input = args[0]
			}
			if len(args) > 1 {
				opts.output = args[1]
			}
			if len(args) > 2 {
				n, err := strconv.Atoi(args[2])
				if err != nil || n < 2 {
					return fmt.Errorf("invalid cube size %q: expect an integer >= 2", args[2])
				}
				opts.size = n
			}
			return run(opts)
		},
	}
)

func init() {
	rootCmd.Flags().StringVar(&reportPath, "report", "", "write a round-trip error report CSV to this path")
	rootCmd.Flags().StringVar(&titleFlag, "title", "", "TITLE for the output LUT (default derived from the input)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func run(opts options) error {
	if _, err := os.Stat(opts.input); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("check input %s: %w", opts.input, err)
		}
		// Only the documented default filename gets a synthesized
		// placeholder; a missing custom input is a hard error.
		if opts.input != defaultInput {
			return fmt.Errorf("input LUT file not found: %s", opts.input)
		}
		logrus.Warnf("default input %s not found, creating an identity placeholder", opts.input)
		if err := cubelut.WriteIdentityFile(opts.input, placeholderSize); err != nil {
			return fmt.Errorf("create placeholder LUT: %w", err)
		}
	}

	// Explicit CLI size wins over whatever the file declares.
	size := opts.size
	if size == 0 {
		size = cubelut.ProbeSize(opts.input)
	}

	forward, err := cubelut.ParseFile(opts.input)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.input, err)
	}

	logrus.Infof("reversing %s (size %d) onto a %d point grid", opts.input, forward.Size, size)
	inverse, err := cubelut.Invert(forward, size)
	if err != nil {
		return fmt.Errorf("reverse LUT: %w", err)
	}
	if opts.title != "" {
		inverse.Title = opts.title
	}

	if err := inverse.WriteFile(opts.output); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	if opts.report != "" {
		if err := cubelut.WriteReportFile(opts.report, cubelut.RoundTrip(forward, inverse)); err != nil {
			return fmt.Errorf("write report %s: %w", opts.report, err)
		}
		logrus.Infof("round-trip report saved to: %s", opts.report)
	}

	logrus.Infof("successfully reversed LUT saved to: %s", opts.output)
	return nil
}
