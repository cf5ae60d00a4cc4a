package equity

import (
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/isaacvp2/pokerproj/common/bench"
	"github.com/isaacvp2/pokerproj/holdem"
)

var ErrInvalidTrials = errors.New("number of trials must be positive")

// Stats is shared by every simulator of one run.
type Stats struct {
	TrialsRun     atomic.Int64
	TrialsSkipped atomic.Int64
}

// Simulator completes the board of a fixed scenario at random and tallies showdowns.
type Simulator struct {
	scenario holdem.Scenario
	used     []holdem.Card
	board    []holdem.Card

	stats *Stats
	rng   *rand.Rand
}

// New seeds its own generator once; every trial of the batch draws from it.
func New(seed int64, scenario holdem.Scenario, stats *Stats) (*Simulator, error) {
	return NewWithRand(rand.New(rand.NewSource(seed)), scenario, stats)
}

func NewWithRand(rng *rand.Rand, scenario holdem.Scenario, stats *Stats) (*Simulator, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &Stats{}
	}
	h := &Simulator{
		scenario: scenario,
		used:     scenario.UsedCards(),
		board:    make([]holdem.Card, 0, holdem.BoardSize),
		stats:    stats,
		rng:      rng,
	}
	return h, nil
}

func (h *Simulator) Scenario() holdem.Scenario {
	return h.scenario
}

func (h *Simulator) RunTrials(n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTrials, n)
	}
	res := Result{Trials: n}
	var runErr error
	res.Elapsed = bench.MeasureExec(func() {
		for range n {
			outcome, err := h.trial()
			if errors.Is(err, holdem.ErrDeckExhausted) {
				res.Skipped++
				h.stats.TrialsRun.Add(1)
				h.stats.TrialsSkipped.Add(1)
				continue
			}
			if err != nil {
				runErr = err
				return
			}
			h.stats.TrialsRun.Add(1)
			switch outcome {
			case holdem.OUTCOME_PLAYER1:
				res.P1Wins++
			case holdem.OUTCOME_PLAYER2:
				res.P2Wins++
			default:
				res.Ties++
			}
		}
	})
	if runErr != nil {
		return Result{}, runErr
	}
	res.finalize()
	return res, nil
}

func (h *Simulator) trial() (holdem.Outcome, error) {
	deck, err := holdem.NewDeck(h.rng, h.used...)
	if err != nil {
		return holdem.OUTCOME_TIE, err
	}
	deck.Shuffle()

	h.board = append(h.board[:0], h.scenario.Community...)
	for range h.scenario.Stage.NeededCards() {
		c, err := deck.Draw()
		if err != nil {
			return holdem.OUTCOME_TIE, err
		}
		h.board = append(h.board, c)
	}

	sd, err := holdem.ComputeShowdown(h.scenario.Player1, h.scenario.Player2, h.board)
	if err != nil {
		return holdem.OUTCOME_TIE, err
	}
	return sd.Outcome, nil
}

// RunTrials runs n trials of the scenario on the caller's generator.
func RunTrials(rng *rand.Rand, scenario holdem.Scenario, n int) (Result, error) {
	sim, err := NewWithRand(rng, scenario, nil)
	if err != nil {
		return Result{}, err
	}
	return sim.RunTrials(n)
}
