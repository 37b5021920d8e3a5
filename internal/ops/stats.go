package ops

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/jacksmith/fslw/internal/model"
)

// StatsValue is fslstats output. Numeric is set when the whole output
// parsed as a single number, in which case Number holds it; Raw always
// holds the trimmed output with newlines folded to spaces.
type StatsValue struct {
	Raw      string
	Number   float64
	Numeric  bool
	ExitCode int
}

func (v StatsValue) String() string {
	if v.Numeric {
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	}
	return v.Raw
}

// Fields splits Raw on whitespace.
func (v StatsValue) Fields() []string {
	return strings.Fields(v.Raw)
}

// StatsOptions configures Stats.
type StatsOptions struct {
	Opts       string // fslstats operations, e.g. "-m" or "-R"
	Timeseries bool   // pass -t to report per volume
	Verbose    bool
}

// Stats runs fslstats on in.
func (t *Toolkit) Stats(ctx context.Context, in imageio.Input, opts StatsOptions) (StatsValue, error) {
	s, err := t.begin("fslstats", opts.Verbose)
	if err != nil {
		return StatsValue{}, err
	}
	defer s.close()

	file, err := s.input(in)
	if err != nil {
		return StatsValue{}, err
	}

	ts := ""
	if opts.Timeseries {
		ts = "-t"
	}

	res, err := s.run(ctx, s.command("fslstats", ts, quote(file), opts.Opts))
	if err != nil {
		return StatsValue{}, err
	}

	return parseStats(res.Stdout, res.ExitCode), nil
}

func parseStats(stdout string, exitCode int) StatsValue {
	raw := strings.TrimSpace(strings.ReplaceAll(stdout, "\n", " "))
	v := StatsValue{Raw: raw, ExitCode: exitCode}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		v.Number = n
		v.Numeric = true
	}
	return v
}

// COGOptions configures COG.
type COGOptions struct {
	Voxels     bool // report in voxel coordinates instead of mm
	Timeseries bool
	Verbose    bool
}

// COGResult is a centre of gravity. A non-zero ExitCode is reported as
// data, like StatsValue, with Coords nil.
type COGResult struct {
	Coords   []float64
	Command  string
	ExitCode int
}

// Err returns a *model.ToolError when fslstats exited non-zero.
func (r *COGResult) Err() error {
	if r.ExitCode == 0 {
		return nil
	}
	return &model.ToolError{Command: r.Command, ExitCode: r.ExitCode}
}

// COG returns the centre of gravity of in: three coordinates, or three per
// volume with Timeseries.
func (t *Toolkit) COG(ctx context.Context, in imageio.Input, opts COGOptions) (*COGResult, error) {
	flag := "-c"
	if opts.Voxels {
		flag = "-C"
	}

	v, err := t.Stats(ctx, in, StatsOptions{Opts: flag, Timeseries: opts.Timeseries, Verbose: opts.Verbose})
	if err != nil {
		return nil, err
	}
	result := &COGResult{Command: "fslstats " + flag, ExitCode: v.ExitCode}
	if v.ExitCode != 0 {
		return result, nil
	}

	fields := v.Fields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("fslstats %s produced no output", flag)
	}

	cog := make([]float64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid centre of gravity %q: %w", v.Raw, err)
		}
		cog[i] = n
	}
	result.Coords = cog
	return result, nil
}
