package main

import (
	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/jacksmith/fslw/internal/ops"
	"github.com/spf13/cobra"
)

var flirtCmd = &cobra.Command{
	Use:   "flirt <input> <reference> <output>",
	Short: "Register linearly with flirt",
	Long: `Register <input> to <reference> with flirt.

The affine matrix goes to --omat, or to a temp file that is removed
afterwards.

Examples:
  fslw flirt t1.nii.gz MNI152_T1_2mm.nii.gz t1_mni --omat=t1_mni.mat
  fslw flirt t1.nii.gz ref.nii.gz out --dof=12 --opts="-cost mutualinfo"`,
	Args: cobra.ExactArgs(3),
	RunE: runFlirt,
}

var (
	flirtOmat string
	flirtDOF  int
	flirtOpts string
)

func init() {
	flirtCmd.Flags().StringVar(&flirtOmat, "omat", "", "write the affine matrix here")
	flirtCmd.Flags().IntVar(&flirtDOF, "dof", ops.DefaultDOF, "degrees of freedom")
	flirtCmd.Flags().StringVar(&flirtOpts, "opts", "", "extra flirt options")
	rootCmd.AddCommand(flirtCmd)
}

func runFlirt(cmd *cobra.Command, args []string) error {
	tk, err := newToolkit()
	if err != nil {
		return err
	}

	res, err := tk.FLIRT(commandContext(cmd), imageio.Path(args[0]), imageio.Path(args[1]), ops.FLIRTOptions{
		Output:  ops.Output{Out: args[2]},
		Omat:    flirtOmat,
		DOF:     flirtDOF,
		Opts:    flirtOpts,
		Verbose: flagVerbose,
	})
	if err != nil {
		return err
	}
	return report(res)
}
