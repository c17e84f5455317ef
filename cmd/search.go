package cmd

import (
	"fmt"

	"pacai/experiments"
	"pacai/maze"
	"pacai/searcher/agent"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <layout>",
	Short: "Find a path from Pacman to the food dot of a layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := maze.Load(args[0])
		if err != nil {
			return err
		}
		problem, err := maze.NewPositionProblem(layout)
		if err != nil {
			return err
		}

		results, err := experiments.RunSearch(problem, cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, result := range results {
			if len(result.Path) == 0 {
				fmt.Fprintf(out, "%s: no path found (%d expansions)\n", result.Algorithm, result.Metric.Expansions)
				continue
			}
			fmt.Fprintf(out, "%s: %d actions, %d expansions\n", result.Algorithm, len(result.Actions), result.Metric.Expansions)
			fmt.Fprint(out, maze.DrawPath(problem, result.Path))
		}
		return nil
	},
}

var games int

var playCmd = &cobra.Command{
	Use:   "play <layout> <minimax|alphabeta|expectimax>",
	Short: "Play Pacman games with an adversarial searcher against random ghosts",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := agent.New(args[1]); !ok {
			return fmt.Errorf("unknown adversarial searcher %s", args[1])
		}
		layout, err := maze.Load(args[0])
		if err != nil {
			return err
		}

		results, err := experiments.RunGames(layout, args[1], games, cfg)
		if err != nil {
			return err
		}
		wins := 0
		for i, result := range results {
			if result.Win {
				wins++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "game %d: win=%t score=%g moves=%d\n", i+1, result.Win, result.Score, result.Moves)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "won %d of %d games\n", wins, len(results))
		return nil
	},
}

func init() {
	playCmd.Flags().IntVar(&games, "games", 1, "Number of games to play")
}
