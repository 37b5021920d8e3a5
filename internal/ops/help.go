package ops

import "context"

// HelpOptions configures Help.
type HelpOptions struct {
	Arg   string // help flag; "--help" when empty
	Extra string // further arguments
}

// Help returns the usage text of program. FSL programs print usage to
// either stream, so stdout and stderr are concatenated.
func (t *Toolkit) Help(ctx context.Context, program string, opts HelpOptions) (string, error) {
	s, err := t.begin(program, false)
	if err != nil {
		return "", err
	}
	defer s.close()

	arg := opts.Arg
	if arg == "" {
		arg = "--help"
	}

	res, err := s.run(ctx, s.command(program, arg, opts.Extra))
	if err != nil {
		return "", err
	}
	return res.Stdout + res.Stderr, nil
}

// BETHelp returns the usage text of bet2 or bet.
func (t *Toolkit) BETHelp(ctx context.Context, command string) (string, error) {
	if command == "" {
		command = BETCommand
	}
	return t.Help(ctx, command, HelpOptions{Arg: betHelpFlag})
}

// FNIRTHelp returns the usage text of fnirt.
func (t *Toolkit) FNIRTHelp(ctx context.Context) (string, error) {
	return t.Help(ctx, "fnirt", HelpOptions{})
}

// StatsHelp returns the usage text of fslstats.
func (t *Toolkit) StatsHelp(ctx context.Context) (string, error) {
	return t.Help(ctx, "fslstats", HelpOptions{})
}

// OrientHelp returns the usage text of fslorient.
func (t *Toolkit) OrientHelp(ctx context.Context) (string, error) {
	return t.Help(ctx, "fslorient", HelpOptions{})
}
