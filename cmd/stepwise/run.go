package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/stepwise/internal/cli"
	"github.com/aretw0/stepwise/pkg/dataset"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/session"
)

var runCmd = &cobra.Command{
	Use:   "run <algorithm>",
	Short: "Animate one algorithm",
	Long: `Runs a single algorithm in the terminal. Press p or space to pause and
resume, s to stop and q to quit.`,
	Example: `  stepwise run bubble --values 5,3,8,4,2
  stepwise run binary --random 30 --distinct --target 17
  stepwise run bfs --maze`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario, _ := cmd.Flags().GetString("scenario")
		if len(args) == 0 && scenario == "" {
			return fmt.Errorf("name an algorithm or a --scenario")
		}
		return execute(cmd, args)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <algorithm> <algorithm>...",
	Short: "Animate several algorithms side by side on the same data",
	Example: `  stepwise compare bubble insertion quick --random 25
  stepwise compare linear binary --values 1,4,4,7,9 --target 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario, _ := cmd.Flags().GetString("scenario")
		if len(args) < 2 && scenario == "" {
			return fmt.Errorf("compare needs at least two algorithms or a --scenario")
		}
		return execute(cmd, args)
	},
}

func execute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	opts := cli.RunOptions{
		Request: req,
		Config:  cfg,
		Stdin:   os.Stdin,
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	}
	opts.Scenario, _ = flags.GetString("scenario")
	opts.Headless, _ = flags.GetBool("headless")
	opts.JSON, _ = flags.GetBool("json")
	opts.Debug, _ = flags.GetBool("debug")
	opts.NoCode, _ = flags.GetBool("no-code")

	sigCtx := cli.NewSignalContext(cmd.Context())
	defer sigCtx.Cancel()
	return cli.Execute(sigCtx, opts)
}

// buildRequest turns the data flags into a session request. Without any,
// path searches get the demo maze and everything else a random sequence.
func buildRequest(cmd *cobra.Command, args []string) (session.Request, error) {
	flags := cmd.Flags()
	req := session.Request{Algorithms: args}
	req.Target, _ = flags.GetInt("target")
	req.Direction, _ = flags.GetString("direction")

	seed, _ := flags.GetUint64("seed")
	if !flags.Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}

	values, _ := flags.GetString("values")
	maze, _ := flags.GetBool("maze")
	rows, _ := flags.GetInt("rows")
	switch {
	case values != "":
		v, err := dataset.ParseValues(values)
		if err != nil {
			return req, err
		}
		req.Values = v
	case maze || rows > 0:
		cols, _ := flags.GetInt("cols")
		density, _ := flags.GetFloat64("density")
		if rows > 0 && cols == 0 {
			cols = rows
		}
		req.Maze = &session.MazeRequest{Rows: rows, Cols: cols, Density: density, Seed: seed}
	case flags.Changed("random") || !allPaths(args):
		rnd := &session.RandomRequest{Seed: seed}
		rnd.Distinct, _ = flags.GetBool("distinct")
		for name, dst := range map[string]**int{"random": &rnd.Size, "min": &rnd.Min, "max": &rnd.Max} {
			if flags.Changed(name) {
				n, _ := flags.GetInt(name)
				*dst = &n
			}
		}
		req.Random = rnd
	default:
		req.Maze = &session.MazeRequest{}
	}

	for name, dst := range map[string]*[]int{"start": &req.Start, "goal": &req.Goal} {
		s, _ := flags.GetString(name)
		if s == "" {
			continue
		}
		p, err := dataset.ParsePosition(s)
		if err != nil {
			return req, fmt.Errorf("--%s: %w", name, err)
		}
		*dst = []int{p.Row, p.Col}
	}
	return req, nil
}

// allPaths reports whether every named algorithm searches a grid.
func allPaths(names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, n := range names {
		id, err := domain.ParseAlgorithm(n)
		if err != nil || id.Kind() != domain.KindPath {
			return false
		}
	}
	return true
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("scenario", "", "Run a stored scenario by name")
	f.String("values", "", "Comma separated values, e.g. 5,3,8")
	f.Int("random", dataset.DefaultSize, "Generate this many random values")
	f.Int("min", dataset.DefaultMin, "Smallest random value")
	f.Int("max", dataset.DefaultMax, "Largest random value")
	f.Bool("distinct", false, "Random values without repeats")
	f.Uint64("seed", 0, "Seed for generated data (default: time based)")
	f.Bool("maze", false, "Use the demo maze")
	f.Int("rows", 0, "Generate a random maze with this many rows")
	f.Int("cols", 0, "Columns of the random maze (default: rows)")
	f.Float64("density", 0.25, "Wall density of the random maze")
	f.Int("target", 0, "Value to search for")
	f.String("start", "", "Start cell as row,col")
	f.String("goal", "", "Goal cell as row,col (default: bottom-right)")
	f.String("direction", "asc", "Sort direction: asc or desc")
	f.Bool("headless", false, "Run without the terminal view and print a summary")
	f.Bool("json", false, "Print every frame as a JSON line")
	f.Bool("no-code", false, "Hide the pseudocode panel")
}

func init() {
	addRunFlags(runCmd)
	addRunFlags(compareCmd)
	rootCmd.AddCommand(runCmd, compareCmd)
}
