package main

import (
	"fmt"
	"strings"

	"github.com/jacksmith/fslw/internal/cli"
	"github.com/jacksmith/fslw/internal/ops"
	"github.com/spf13/cobra"
)

// programs are the toolkit programs fslw drives.
var programs = []string{
	ops.BETWrapper,
	ops.BETCommand,
	"fast",
	"flirt",
	"fnirt",
	"fslorient",
	"fslreorient2std",
	"fslstats",
}

var toolHelpCmd = &cobra.Command{
	Use:   "toolhelp <program>",
	Short: "Show a toolkit program's own usage text",
	Long: `Print the usage text of a toolkit program. Unique prefixes are
accepted, so "fslo" means fslorient.

Examples:
  fslw toolhelp bet
  fslw toolhelp fslo`,
	Args:              cobra.ExactArgs(1),
	RunE:              runToolHelp,
	ValidArgsFunction: completePrograms,
}

var toolHelpArg string

func init() {
	toolHelpCmd.Flags().StringVar(&toolHelpArg, "arg", "", "help flag to pass (default --help, -h for bet)")
	rootCmd.AddCommand(toolHelpCmd)
}

func runToolHelp(cmd *cobra.Command, args []string) error {
	program, err := cli.MatchProgram(args[0], programs)
	if err != nil {
		return err
	}

	tk, err := newToolkit()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	var text string
	switch {
	case toolHelpArg != "":
		text, err = tk.Help(ctx, program, ops.HelpOptions{Arg: toolHelpArg})
	case program == ops.BETCommand || program == ops.BETWrapper:
		text, err = tk.BETHelp(ctx, program)
	case program == "fnirt":
		text, err = tk.FNIRTHelp(ctx)
	case program == "fslstats":
		text, err = tk.StatsHelp(ctx)
	case program == "fslorient":
		text, err = tk.OrientHelp(ctx)
	default:
		text, err = tk.Help(ctx, program, ops.HelpOptions{})
	}
	if err != nil {
		return err
	}

	fmt.Print(text)
	if text != "" && !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}
	return nil
}

func completePrograms(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, p := range programs {
		if strings.HasPrefix(p, strings.ToLower(toComplete)) {
			completions = append(completions, p)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
