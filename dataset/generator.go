package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/isaacvp2/pokerproj/common/bench"
	"github.com/isaacvp2/pokerproj/common/random"
	"github.com/isaacvp2/pokerproj/equity"
	"github.com/isaacvp2/pokerproj/holdem"
)

type Config struct {
	Simulations int
	Trials      int
	// Relative stage weights; empty means every stage equally likely.
	StageWeights map[holdem.GameStage]float32
	Seed         int64
}

type Summary struct {
	RunID       uuid.UUID
	Simulations int
	Skipped     int
	Stages      map[holdem.GameStage]int
	Elapsed     time.Duration
}

// Generator deals random scenarios, estimates each one and hands the record to every sink.
// One generator is seeded once and shared by all simulations of the run.
type Generator struct {
	cfg        Config
	stageProbs map[holdem.GameStage]float32
	rng        *rand.Rand
	runID      uuid.UUID
	sinks      []Sink
	logger     *slog.Logger
	onRecord   func(Record)
}

func NewGenerator(cfg Config, logger *slog.Logger, sinks ...Sink) (*Generator, error) {
	if cfg.Simulations < 0 {
		return nil, fmt.Errorf("simulations must not be negative, got %d", cfg.Simulations)
	}
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("%w: %d", equity.ErrInvalidTrials, cfg.Trials)
	}
	weights := cfg.StageWeights
	if len(weights) == 0 {
		weights = make(map[holdem.GameStage]float32, len(holdem.Stages))
		for _, s := range holdem.Stages {
			weights[s] = 1
		}
	}
	for s := range weights {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: %d", holdem.ErrInvalidStage, s)
		}
	}
	probs, err := random.Normalize(weights)
	if err != nil {
		return nil, fmt.Errorf("stage weights: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		cfg:        cfg,
		stageProbs: probs,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		runID:      uuid.New(),
		sinks:      sinks,
		logger:     logger,
	}, nil
}

func (g *Generator) RunID() uuid.UUID {
	return g.runID
}

// OnRecord registers a callback invoked after each record is written.
func (g *Generator) OnRecord(fn func(Record)) {
	g.onRecord = fn
}

// Run generates the configured number of records. Cancellation is checked between
// simulations; records written so far stay in the sinks.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: g.runID, Stages: make(map[holdem.GameStage]int)}
	start := time.Now()

	g.logger.Info("dataset run started",
		"run", g.runID, "simulations", g.cfg.Simulations, "trials", g.cfg.Trials)

	for id := 1; id <= g.cfg.Simulations; id++ {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(start)
			return summary, err
		}
		rec, err := g.simulate(id)
		if err != nil {
			summary.Elapsed = time.Since(start)
			return summary, fmt.Errorf("simulation %d: %w", id, err)
		}
		if rec.Result.Skipped > 0 {
			g.logger.Warn("trials skipped", "simulation", id, "skipped", rec.Result.Skipped)
		}
		for _, s := range g.sinks {
			if err := s.Write(ctx, rec); err != nil {
				summary.Elapsed = time.Since(start)
				return summary, err
			}
		}
		summary.Simulations++
		summary.Skipped += rec.Result.Skipped
		summary.Stages[rec.Scenario.Stage]++
		g.logger.Debug("simulation done",
			"simulation", id,
			"stage", rec.Scenario.Stage,
			"p1", rec.Scenario.Player1,
			"p2", rec.Scenario.Player2,
			"p1_win", rec.Result.P1WinPct)
		if g.onRecord != nil {
			g.onRecord(rec)
		}
	}
	summary.Elapsed = time.Since(start)
	g.logger.Info("dataset run finished",
		"run", g.runID,
		"simulations", summary.Simulations,
		"elapsed", summary.Elapsed,
		"per_second", bench.PerSecond(summary.Simulations, summary.Elapsed))
	return summary, nil
}

func (g *Generator) simulate(id int) (Record, error) {
	stage, err := random.Sample(g.rng, g.stageProbs)
	if err != nil {
		return Record{}, err
	}
	scenario, err := holdem.DealScenario(g.rng, stage)
	if err != nil {
		return Record{}, err
	}
	res, err := equity.RunTrials(g.rng, scenario, g.cfg.Trials)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:           uuid.New(),
		RunID:        g.runID,
		SimulationID: id,
		Scenario:     scenario,
		Result:       res,
	}, nil
}

// CloseAll closes every sink and joins their errors.
func CloseAll(sinks ...Sink) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
