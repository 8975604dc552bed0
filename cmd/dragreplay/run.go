package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/justyntemme/tabdeck/internal/replay"
	"github.com/justyntemme/tabdeck/internal/tabstrip"
)

// errMismatch is returned by check when a trace's expectations fail
var errMismatch = errors.New("trace expectations not met")

// thresholdFlags override a trace's own thresholds when set
type thresholdFlags struct {
	moveOver     int
	groupOverlap int
	groupDelay   time.Duration
}

func (f *thresholdFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.moveOver, "move-over", 0, "overlap percent needed to pass a tab (50-95)")
	cmd.Flags().IntVar(&f.groupOverlap, "group-overlap", 0, "overlap percent that suggests grouping")
	cmd.Flags().DurationVar(&f.groupDelay, "group-delay", 0, "how long a grouping suggestion must hold")
}

// thresholds resolves the thresholds for tr: defaults, then the trace,
// then flags the user set
func (f *thresholdFlags) thresholds(cmd *cobra.Command, tr *replay.Trace) tabstrip.Thresholds {
	d := tr.Settings()
	if cmd.Flags().Changed("move-over") {
		d.MoveOverThresholdPercent = f.moveOver
	}
	if cmd.Flags().Changed("group-overlap") {
		d.GroupOverlapPercent = f.groupOverlap
	}
	if cmd.Flags().Changed("group-delay") {
		d.CreateGroupDelayMS = int(f.groupDelay / time.Millisecond)
	}
	return d.Thresholds()
}

func newRunCmd() *cobra.Command {
	var flags thresholdFlags
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "run TRACE.yaml",
		Short: "Replay a trace and print every resolution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			rep, err := replay.Run(tr, flags.thresholds(cmd, tr))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asYAML {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(rep)
			}
			printReport(cmd, rep)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the report as YAML")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var flags thresholdFlags
	cmd := &cobra.Command{
		Use:   "check TRACE.yaml...",
		Short: "Replay traces and fail when their expect block does not match",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				tr, err := replay.Load(path)
				if err != nil {
					return err
				}
				rep, err := replay.Run(tr, flags.thresholds(cmd, tr))
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if tr.Expect == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "SKIP %s (no expect block)\n", path)
					continue
				}
				bad := replay.Check(tr, rep)
				if len(bad) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", path)
					continue
				}
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n", path)
				for _, msg := range bad {
					fmt.Fprintf(cmd.OutOrStdout(), "     %s\n", msg)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d: %w", failed, len(args), errMismatch)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func printReport(cmd *cobra.Command, rep *replay.Report) {
	out := cmd.OutOrStdout()
	th := rep.Thresholds
	fmt.Fprintf(out, "thresholds: move-over %.0f%% group-overlap %.0f%% group-delay %s\n",
		th.MoveOver*100, th.GroupOverlap*100, th.GroupDelay)
	for _, st := range rep.Steps {
		side := "after"
		if st.Before {
			side = "before"
		}
		dir := "<"
		if st.Forward {
			dir = ">"
		}
		fmt.Fprintf(out, "%8s pos=%-7.1f %s%+.1f index=%d %s %s", st.At, st.Pos, dir, st.Translate, st.Index, side, st.Target)
		if st.Group != "" {
			fmt.Fprintf(out, " group=%s", st.Group)
		}
		if st.Advisory != tabstrip.AdvisoryNone.String() {
			fmt.Fprintf(out, " advisory=%s", st.Advisory)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "outcome: %s\n", rep.Outcome)
	if rep.Error != "" {
		fmt.Fprintf(out, "error: %s\n", rep.Error)
	}
	fmt.Fprintf(out, "order: %s\n", strings.Join(rep.Order, ","))
	if len(rep.Detached) > 0 {
		fmt.Fprintf(out, "detached: %s\n", strings.Join(rep.Detached, ","))
	}
}
