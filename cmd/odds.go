package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/isaacvp2/pokerproj/common/bench"
	"github.com/isaacvp2/pokerproj/equity"
	"github.com/isaacvp2/pokerproj/holdem"
)

type oddsFlags struct {
	p1, p2, stage, board string
	trials, workers      int
	seed                 int64
}

func newOddsCmd(a *app) *cobra.Command {
	f := &oddsFlags{}
	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Estimate win, loss and tie odds of two hands",
		Long: "Estimate win, loss and tie odds of two hands at a given stage. Missing hands, stage\n" +
			"or board are asked for interactively.",
		Example: `  pokerproj odds --p1 "As Ks" --p2 "Qh Qd" --stage flop --board "2d 5h 9s"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runOdds(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.p1, "p1", "", "player 1 hole cards, e.g. \"As Ks\"")
	fl.StringVar(&f.p2, "p2", "", "player 2 hole cards")
	fl.StringVar(&f.stage, "stage", "", "preflop, flop, turn or river")
	fl.StringVar(&f.board, "board", "", "community cards known at the stage")
	fl.IntVar(&f.trials, "trials", 0, "trials to run (overrides POKER_TRIALS)")
	fl.IntVar(&f.workers, "workers", 0, "goroutines sharing the trials (overrides POKER_WORKERS)")
	fl.Int64Var(&f.seed, "seed", 0, "random seed (overrides POKER_SEED)")
	return cmd
}

func (a *app) runOdds(cmd *cobra.Command, f *oddsFlags) error {
	if cmd.Flags().Changed("trials") {
		a.cfg.Trials = f.trials
	}
	if cmd.Flags().Changed("workers") {
		a.cfg.Workers = f.workers
	}
	if cmd.Flags().Changed("seed") {
		a.cfg.Seed = f.seed
	}
	if a.cfg.Trials <= 0 {
		return fmt.Errorf("%w: %d", equity.ErrInvalidTrials, a.cfg.Trials)
	}

	scenario, err := a.scenarioFromFlags(cmd, f)
	if err != nil {
		return err
	}
	seed := a.cfg.RandSeed()
	a.logger.Debug("running simulation",
		"stage", scenario.Stage, "trials", a.cfg.Trials, "workers", a.cfg.Workers, "seed", seed)

	stats := &equity.Stats{}
	var res equity.Result
	if a.cfg.Workers > 1 {
		res, err = equity.RunParallel(cmd.Context(), scenario, a.cfg.Trials, a.cfg.Workers, seed, stats)
	} else {
		var sim *equity.Simulator
		sim, err = equity.New(seed, scenario, stats)
		if err == nil {
			res, err = sim.RunTrials(a.cfg.Trials)
		}
	}
	if err != nil {
		return err
	}
	if res.Skipped > 0 {
		a.logger.Warn("trials skipped", "skipped", res.Skipped)
	}
	return printOdds(cmd.OutOrStdout(), scenario, res)
}

func (a *app) scenarioFromFlags(cmd *cobra.Command, f *oddsFlags) (holdem.Scenario, error) {
	var s holdem.Scenario
	var err error

	if f.p1 != "" {
		if s.Player1, err = holdem.ParseHoleCards(f.p1); err != nil {
			return s, fmt.Errorf("player 1: %w", err)
		}
	} else if s.Player1, err = a.askHole("Player 1 hole cards (e.g. As Ks)"); err != nil {
		return s, err
	}

	if f.p2 != "" {
		if s.Player2, err = holdem.ParseHoleCards(f.p2); err != nil {
			return s, fmt.Errorf("player 2: %w", err)
		}
	} else if s.Player2, err = a.askHole("Player 2 hole cards", s.Player1.Cards()...); err != nil {
		return s, err
	}

	if f.stage != "" {
		if s.Stage, err = holdem.ParseStage(f.stage); err != nil {
			return s, err
		}
	} else if s.Stage, err = a.askStage(); err != nil {
		return s, err
	}

	switch {
	case cmd.Flags().Changed("board"):
		if s.Community, err = holdem.ParseCards(f.board); err != nil {
			return s, fmt.Errorf("board: %w", err)
		}
	case s.Stage.CommunityCards() == 0:
		s.Community = nil
	default:
		used := append(s.Player1.Cards(), s.Player2.Cards()...)
		if s.Community, err = a.askBoard(s.Stage, used); err != nil {
			return s, err
		}
	}
	return s, s.Validate()
}

// askHole re-prompts until two valid cards not in used are entered.
func (a *app) askHole(label string, used ...holdem.Card) (holdem.HoleCards, error) {
	for {
		in, err := a.prompt.Text(label)
		if err != nil {
			return holdem.HoleCards{}, err
		}
		h, err := holdem.ParseHoleCards(in)
		if err == nil {
			err = holdem.CheckDistinct(append(h.Cards(), used...)...)
		}
		if err == nil {
			return h, nil
		}
		a.prompt.Warn(fmt.Sprintf("Invalid hand: %v. Try again.", err))
	}
}

func (a *app) askStage() (holdem.GameStage, error) {
	options := make([]string, len(holdem.Stages))
	for i, s := range holdem.Stages {
		options[i] = s.String()
	}
	for {
		in, err := a.prompt.Select("Game stage", options)
		if err != nil {
			return 0, err
		}
		stage, err := holdem.ParseStage(in)
		if err == nil {
			return stage, nil
		}
		a.prompt.Warn(fmt.Sprintf("Invalid stage: %v. Try again.", err))
	}
}

func (a *app) askBoard(stage holdem.GameStage, used []holdem.Card) ([]holdem.Card, error) {
	label := fmt.Sprintf("%d community cards for the %s", stage.CommunityCards(), stage)
	for {
		in, err := a.prompt.Text(label)
		if err != nil {
			return nil, err
		}
		board, err := holdem.ParseCards(in)
		if err == nil && len(board) != stage.CommunityCards() {
			err = fmt.Errorf("%w: need %d, got %d", holdem.ErrCommunityCount, stage.CommunityCards(), len(board))
		}
		if err == nil {
			err = holdem.CheckDistinct(append(board, used...)...)
		}
		if err == nil {
			return board, nil
		}
		a.prompt.Warn(fmt.Sprintf("Invalid board: %v. Try again.", err))
	}
}

func printOdds(w io.Writer, s holdem.Scenario, res equity.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Player 1: %s\n", s.Player1)
	fmt.Fprintf(&b, "Player 2: %s\n", s.Player2)
	fmt.Fprintf(&b, "Stage:    %s\n", s.Stage)
	if len(s.Community) > 0 {
		fmt.Fprintf(&b, "Board:    %s\n", holdem.FormatCards(s.Community))
	}
	b.WriteString("\n")

	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Outcome", "Count", "Percent"},
		{"Player 1 wins", humanize.Comma(int64(res.P1Wins)), fmt.Sprintf("%.2f%%", res.P1WinPct)},
		{"Player 2 wins", humanize.Comma(int64(res.P2Wins)), fmt.Sprintf("%.2f%%", res.P2WinPct)},
		{"Tie", humanize.Comma(int64(res.Ties)), fmt.Sprintf("%.2f%%", res.TiePct)},
	}).Srender()
	if err != nil {
		return err
	}
	b.WriteString(table)
	b.WriteString("\n\n")

	lo, hi := res.ConfidenceInterval()
	fmt.Fprintf(&b, "Player 1 equity: %.2f%% (95%% CI %.2f%% to %.2f%%)\n", res.P1Equity(), lo, hi)
	fmt.Fprintf(&b, "Trials: %s", humanize.Comma(int64(res.Trials)))
	if res.Skipped > 0 {
		fmt.Fprintf(&b, " (%s skipped)", humanize.Comma(int64(res.Skipped)))
	}
	fmt.Fprintf(&b, "\nSimulation time: %d ms (%s trials/s)\n",
		res.Elapsed.Milliseconds(), humanize.Comma(int64(bench.PerSecond(res.Trials, res.Elapsed))))

	_, err = io.WriteString(w, b.String())
	return err
}
