package main

import (
	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/jacksmith/fslw/internal/ops"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

var orientCmd = &cobra.Command{
	Use:   "orient <image> -- <fslorient options>",
	Short: "Query or change orientation with fslorient",
	Long: `Run fslorient on <image>. Everything after -- is passed to fslorient.
Setters change the file in place.

Examples:
  fslw orient t1.nii.gz -- -getorient
  fslw orient t1.nii.gz -- -swaporient`,
	Args: cobra.MinimumNArgs(2),
	RunE: runOrient,
}

var reorientCmd = &cobra.Command{
	Use:   "reorient <input> <output>",
	Short: "Reorient to the standard template with fslreorient2std",
	Args:  cobra.ExactArgs(2),
	RunE:  runReorient,
}

func init() {
	rootCmd.AddCommand(orientCmd)
	rootCmd.AddCommand(reorientCmd)
}

func runOrient(cmd *cobra.Command, args []string) error {
	tk, err := newToolkit()
	if err != nil {
		return err
	}

	res, err := tk.Orient(commandContext(cmd), imageio.Path(args[0]), ops.OrientOptions{
		Opts:    shellquote.Join(args[1:]...),
		Verbose: flagVerbose,
	})
	if err != nil {
		return err
	}
	// The image is modified in place; there is no new file to report.
	res.OutputFile = ""
	return report(res)
}

func runReorient(cmd *cobra.Command, args []string) error {
	tk, err := newToolkit()
	if err != nil {
		return err
	}

	res, err := tk.Reorient2Std(commandContext(cmd), imageio.Path(args[0]), ops.Output{Out: args[1]}, flagVerbose)
	if err != nil {
		return err
	}
	return report(res)
}
