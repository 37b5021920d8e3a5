package main

import (
	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/jacksmith/fslw/internal/ops"
	"github.com/spf13/cobra"
)

var betCmd = &cobra.Command{
	Use:   "bet <input> <output>",
	Short: "Extract the brain with bet2",
	Long: `Strip non-brain tissue from <input> with bet2, or with the bet wrapper
script when --wrapper is given.

Examples:
  fslw bet t1.nii.gz t1_brain --opts="-f 0.4 -m"
  fslw bet t1.nii.gz t1_brain --wrapper --opts="-R"`,
	Args: cobra.ExactArgs(2),
	RunE: runBet,
}

var (
	betOpts    string
	betWrapper bool
)

func init() {
	betCmd.Flags().StringVar(&betOpts, "opts", "", "extra bet options")
	betCmd.Flags().BoolVar(&betWrapper, "wrapper", false, "run the bet script instead of bet2")
	rootCmd.AddCommand(betCmd)
}

func runBet(cmd *cobra.Command, args []string) error {
	tk, err := newToolkit()
	if err != nil {
		return err
	}

	program := ops.BETCommand
	if betWrapper {
		program = ops.BETWrapper
	}

	res, err := tk.BET(commandContext(cmd), imageio.Path(args[0]), ops.BETOptions{
		Output:  ops.Output{Out: args[1]},
		Opts:    betOpts,
		Command: program,
		Verbose: flagVerbose,
	})
	if err != nil {
		return err
	}
	return report(res)
}
