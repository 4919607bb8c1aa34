// statesim replays configuration values against a chart document and prints
// the exit/entry lists and completion events of every step.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/comalice/statetree"
	"github.com/comalice/statetree/internal/chartfile"
	"github.com/comalice/statetree/internal/production"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "statesim",
		Short:         "Simulate configuration steps of a statechart tree",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd(), newVizCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var valuesPath string
	var debug bool

	cmd := &cobra.Command{
		Use:   "run <chart.yaml>",
		Short: "Replay a sequence of configuration values against a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := loadChart(args[0])
			if err != nil {
				return err
			}

			values, err := loadValues(valuesPath)
			if err != nil {
				return err
			}

			logger, err := newLogger(debug)
			if err != nil {
				return err
			}
			defer logger.Sync()
			tracer := statetree.NewStepTracer(logger)

			var prev *statetree.StateTree
			for i, value := range values {
				tree := statetree.New(node, value).Resolved()

				var exit, entry []*statetree.StateNode
				if prev == nil {
					entry = tree.EntryStates()
				} else {
					exit, entry, err = tree.EntryExitStates(prev)
					if err != nil {
						return fmt.Errorf("step %d: %w", i, err)
					}
				}

				events := tree.DoneEvents(entry)
				tracer.Step(node.ID, tree, exit, entry, events)

				fmt.Fprintf(cmd.OutOrStdout(), "step %d: %s\n", i, tree.Value())
				for _, n := range exit {
					fmt.Fprintf(cmd.OutOrStdout(), "  exit  %s\n", n.ID)
				}
				for _, n := range entry {
					fmt.Fprintf(cmd.OutOrStdout(), "  enter %s\n", n.ID)
				}
				for _, event := range events {
					fmt.Fprintf(cmd.OutOrStdout(), "  fire  %s\n", event.Type)
				}
				if tree.Done() {
					fmt.Fprintf(cmd.OutOrStdout(), "  done\n")
				}

				prev = tree
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML file holding the list of configuration values to replay")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.MarkFlagRequired("values")
	return cmd
}

func newVizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz <chart.yaml>",
		Short: "Print the Graphviz DOT rendering of a chart, initial configuration highlighted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := loadChart(args[0])
			if err != nil {
				return err
			}
			tree := statetree.New(node, statetree.StateValue{}).Resolved()
			viz := &production.DefaultVisualizer{}
			fmt.Fprint(cmd.OutOrStdout(), viz.ExportDOT(node, tree))
			return nil
		},
	}
	return cmd
}

func loadChart(path string) (*statetree.StateNode, error) {
	config, err := chartfile.Load(path)
	if err != nil {
		return nil, err
	}
	return config.Node()
}

func loadValues(path string) ([]statetree.StateValue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var values []statetree.StateValue
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return values, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
