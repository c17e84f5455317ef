package cmd

import (
	"fmt"

	"pacai/experiments"
	"pacai/experiments/metrics"
	"pacai/mdp"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var valueIterationCmd = &cobra.Command{
	Use:   "valueiteration <mdp.yaml>",
	Short: "Compute state values and a greedy policy of an MDP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := mdp.Load(args[0])
		if err != nil {
			return err
		}

		result := experiments.RunValueIteration(m, cfg)
		out := cmd.OutOrStdout()
		for _, state := range m.States() {
			action, ok := result.Policy[state]
			if !ok {
				action = "-"
			}
			fmt.Fprintf(out, "%-12s value=%-10.4f policy=%s\n", state, result.Values[state], action)
		}
		return nil
	},
}

var exportMetrics bool

var qlearnCmd = &cobra.Command{
	Use:   "qlearn <mdp.yaml>",
	Short: "Train a Q-learner against an MDP and report its greedy policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := mdp.Load(args[0])
		if err != nil {
			return err
		}

		registry := prometheus.NewRegistry()
		collector := metrics.NewCollector()
		if exportMetrics {
			promCollector, err := metrics.NewPrometheusCollector(registry)
			if err != nil {
				return err
			}
			collector = promCollector
		}

		result, err := experiments.RunQLearning(m, cfg, collector)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, state := range m.States() {
			action, ok := result.Learner.Policy(state)
			if !ok {
				fmt.Fprintf(out, "%-12s value=%-10.4f policy=-\n", state, result.Learner.Value(state))
				continue
			}
			fmt.Fprintf(out, "%-12s value=%-10.4f policy=%s\n", state, result.Learner.Value(state), action)
		}
		fmt.Fprintf(out, "average training reward %.4f, average testing reward %.4f\n",
			average(result.Learner.TrainingRewards(), min(cfg.Episodes, cfg.NumTraining)),
			average(result.Learner.TestingRewards(), max(cfg.Episodes-cfg.NumTraining, 0)))

		if exportMetrics {
			return printMetrics(cmd, registry)
		}
		return nil
	},
}

func init() {
	qlearnCmd.Flags().BoolVar(&exportMetrics, "metrics", false, "Print Prometheus counters after training")
}

func average(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func printMetrics(cmd *cobra.Command, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather metrics")
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := ""
			for _, label := range m.GetLabel() {
				labels += fmt.Sprintf("%s=%q", label.GetName(), label.GetValue())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s{%s} %g\n", family.GetName(), labels, m.GetCounter().GetValue())
		}
	}
	log.Debug().Msgf("printed %d metric families", len(families))
	return nil
}
